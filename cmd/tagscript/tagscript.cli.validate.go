package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	tagscript "github.com/japandotorg/TagScriptEngine"
	"github.com/japandotorg/TagScriptEngine/internal"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	templatePath string
	format       string
	document     bool
}

// validationOutput represents JSON output for validate
type validationOutput struct {
	TextNodes    int                 `json:"text_nodes"`
	Declarations []declarationOutput `json:"declarations,omitempty"`
}

type declarationOutput struct {
	Identifier string `json:"identifier"`
	Count      int    `json:"count"`
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	body := string(source)
	if cfg.document {
		doc, err := tagscript.ParseDocument(source)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseDocFailed, err)
			return ExitCodeValidationError
		}
		body = doc.Body
	}

	inventory := inventoryDeclarations(body)
	if cfg.format == OutputFormatJSON {
		return outputValidationJSON(inventory, stdout)
	}
	return outputValidationText(inventory, stdout)
}

func parseValidateFlags(args []string) (*validateConfig, error) {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &validateConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	fs.BoolVar(&cfg.document, FlagDocument, false, "")
	fs.BoolVar(&cfg.document, FlagDocumentShort, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}
	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

// inventoryDeclarations parses the template once and counts the
// top-level declarations per identifier.
func inventoryDeclarations(source string) *validationOutput {
	nodes := internal.NewParser(source, internal.DefaultConfig(), zap.NewNop()).Parse()

	counts := make(map[string]int)
	inventory := &validationOutput{}
	for _, node := range nodes {
		if node.Kind == internal.NodeText {
			inventory.TextNodes++
			continue
		}
		counts[strings.ToLower(strings.TrimSpace(node.Identifier))]++
	}

	identifiers := make([]string, 0, len(counts))
	for identifier := range counts {
		identifiers = append(identifiers, identifier)
	}
	sort.Strings(identifiers)

	for _, identifier := range identifiers {
		inventory.Declarations = append(inventory.Declarations, declarationOutput{
			Identifier: identifier,
			Count:      counts[identifier],
		})
	}
	return inventory
}

func outputValidationText(inventory *validationOutput, stdout io.Writer) int {
	declarations := 0
	for _, d := range inventory.Declarations {
		declarations += d.Count
	}

	fmt.Fprintf(stdout, ValidationTextHeader+FmtNewline,
		inventory.TextNodes+declarations, inventory.TextNodes, declarations)
	for _, d := range inventory.Declarations {
		fmt.Fprintf(stdout, ValidationTextDeclaration+FmtNewline, d.Identifier, d.Count)
	}
	return ExitCodeSuccess
}

func outputValidationJSON(inventory *validationOutput, stdout io.Writer) int {
	jsonBytes, _ := json.MarshalIndent(inventory, "", "  ")
	fmt.Fprintln(stdout, string(jsonBytes))
	return ExitCodeSuccess
}
