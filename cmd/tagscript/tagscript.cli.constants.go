package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate       = "template"
	FlagSeed           = "seed"
	FlagOutput         = "output"
	FlagFormat         = "format"
	FlagDocument       = "document"
	FlagMaxChars       = "max-chars"
	FlagMaxDepth       = "max-depth"
	FlagMaxInvocations = "max-invocations"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagSeedShort     = "s"
	FlagOutputShort   = "o"
	FlagFormatShort   = "F"
	FlagDocumentShort = "D"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingTemplate   = "template source required"
	ErrMsgInvalidSeed       = "seed must be in key=value form"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgParseDocFailed    = "document parsing failed"
	ErrMsgInvalidFormat     = "invalid output format"
)

// Help text templates
const (
	HelpMainUsage = `TagScriptEngine - tag templating CLI

Usage:
    tagscript <command> [options]

Commands:
    render      Expand a template
    validate    Parse a template and report its declarations
    version     Show version information
    help        Show help for a command

Use "tagscript help <command>" for more information about a command.`

	HelpRenderUsage = `Expand a template

Usage:
    tagscript render [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -s, --seed <key=value>  Seed variable, repeatable
    -o, --output <file>     Output file (default: stdout)
    -F, --format <format>   Output format: text, json (default: text)
    -D, --document          Treat input as a tag document with frontmatter
    --max-chars <n>         Output character limit (0 = unlimited)
    --max-depth <n>         Recursion depth limit (0 = unlimited)
    --max-invocations <n>   Declaration budget (0 = unlimited)

Examples:
    tagscript render -t tag.txt -s user=Alice
    echo '{if({args}==hi):hello|bye}' | tagscript render -t - -s args=hi
    tagscript render -t tag.txt -F json`

	HelpValidateUsage = `Parse a template and report its declarations

Usage:
    tagscript validate [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -F, --format <format>   Output format: text, json (default: text)
    -D, --document          Treat input as a tag document with frontmatter

Examples:
    tagscript validate -t tag.txt
    cat tag.txt | tagscript validate -t -`

	HelpVersionUsage = `Show version information

Usage:
    tagscript version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    tagscript help [command]

Commands:
    render      Show help for render command
    validate    Show help for validate command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "TagScriptEngine version %s\nGo: %s"
	Version             = "1.0.0"
)

// Validation output format templates
const (
	ValidationTextHeader      = "%d node(s): %d text, %d declaration(s)"
	ValidationTextDeclaration = "  {%s} x%d"
)

// CLI metadata
const (
	CLIName = "tagscript"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
