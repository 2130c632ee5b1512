package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	tagscript "github.com/japandotorg/TagScriptEngine"
	"github.com/japandotorg/TagScriptEngine/adapter"
	"github.com/japandotorg/TagScriptEngine/block"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	templatePath   string
	seeds          seedList
	outputPath     string
	format         string
	document       bool
	maxChars       int
	maxDepth       int
	maxInvocations int
}

// seedList collects repeated -seed key=value flags
type seedList []string

func (s *seedList) String() string {
	return strings.Join(*s, ",")
}

func (s *seedList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// renderOutput represents JSON output for render
type renderOutput struct {
	Body      string         `json:"body"`
	Actions   map[string]any `json:"actions,omitempty"`
	Truncated bool           `json:"truncated"`
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	seeds, err := parseSeeds(cfg.seeds)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidSeed, err)
		return ExitCodeUsageError
	}

	engine := tagscript.MustNew(block.Defaults(), nil)
	opts := []tagscript.ProcessOption{tagscript.WithSeeds(seeds)}
	if limits, overridden := cfg.limits(engine.Limits()); overridden {
		opts = append(opts, tagscript.WithProcessLimits(limits))
	}

	var response *tagscript.Response
	if cfg.document {
		doc, err := tagscript.ParseDocument(source)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseDocFailed, err)
			return ExitCodeInputError
		}
		response = engine.ProcessDocument(context.Background(), doc, opts...)
	} else {
		response = engine.Process(context.Background(), string(source), opts...)
	}

	output, err := formatRenderOutput(response, cfg.format)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, output, stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.Var(&cfg.seeds, FlagSeed, "")
	fs.Var(&cfg.seeds, FlagSeedShort, "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	fs.BoolVar(&cfg.document, FlagDocument, false, "")
	fs.BoolVar(&cfg.document, FlagDocumentShort, false, "")
	fs.IntVar(&cfg.maxChars, FlagMaxChars, -1, "")
	fs.IntVar(&cfg.maxDepth, FlagMaxDepth, -1, "")
	fs.IntVar(&cfg.maxInvocations, FlagMaxInvocations, -1, "")

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

// limits overlays the limit flags onto base. The second return is false
// when no limit flag was given.
func (cfg *renderConfig) limits(base tagscript.Limits) (tagscript.Limits, bool) {
	overridden := false
	if cfg.maxChars >= 0 {
		base.MaxCharLimit = cfg.maxChars
		overridden = true
	}
	if cfg.maxDepth >= 0 {
		base.MaxDepth = cfg.maxDepth
		overridden = true
	}
	if cfg.maxInvocations >= 0 {
		base.MaxInvocations = cfg.maxInvocations
		overridden = true
	}
	return base, overridden
}

func parseSeeds(pairs []string) (map[string]tagscript.Adapter, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	seeds := make(map[string]tagscript.Adapter, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%s: %q", ErrMsgInvalidSeed, pair)
		}
		seeds[key] = adapter.NewString(value)
	}
	return seeds, nil
}

func formatRenderOutput(response *tagscript.Response, format string) ([]byte, error) {
	if format == OutputFormatJSON {
		output := renderOutput{
			Body:      response.Body,
			Actions:   response.Actions,
			Truncated: response.Truncated,
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return []byte(response.Body + FmtNewline), nil
}
