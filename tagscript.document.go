package tagscript

import (
	"context"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter constants
const (
	FrontmatterDelimiter  = "---"
	MaxFrontmatterSize    = 64 * 1024
	frontmatterBOM        = "\xef\xbb\xbf"
	frontmatterTrimCutset = frontmatterBOM + " \t"
)

// Document is a tag stored as a file: YAML frontmatter describing the
// tag, followed by the template body. A document without frontmatter is
// just a body.
//
//	---
//	name: greet
//	author: alice
//	max_char_limit: 500
//	---
//	Hello {user}!
type Document struct {
	// Name identifies the tag. Required when frontmatter is present.
	Name string `yaml:"name"`

	// Description is optional free-form help text.
	Description string `yaml:"description,omitempty"`

	// Author is the tag author, if tracked.
	Author string `yaml:"author,omitempty"`

	// Aliases are alternative names for lookup by the caller.
	Aliases []string `yaml:"aliases,omitempty"`

	// Per-document limit overrides. Zero values inherit the engine's
	// limits.
	MaxCharLimit   int `yaml:"max_char_limit,omitempty"`
	MaxDepth       int `yaml:"max_depth,omitempty"`
	MaxInvocations int `yaml:"max_invocations,omitempty"`

	// Body is the template text after the closing frontmatter fence.
	Body string `yaml:"-"`
}

// ParseDocument parses a tag document: optional `---` fenced YAML
// frontmatter followed by the template body. Content without a leading
// fence is treated entirely as body.
func ParseDocument(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, NewDocumentError(ErrMsgDocumentEmpty, nil)
	}

	content := strings.TrimLeft(string(data), frontmatterTrimCutset)

	if !strings.HasPrefix(content, FrontmatterDelimiter) {
		return &Document{Body: content}, nil
	}

	afterOpening := content[len(FrontmatterDelimiter):]
	if len(afterOpening) > 1 && afterOpening[0] == '\r' && afterOpening[1] == '\n' {
		afterOpening = afterOpening[2:]
	} else if len(afterOpening) > 0 && afterOpening[0] == '\n' {
		afterOpening = afterOpening[1:]
	}

	closeIdx := strings.Index(afterOpening, "\n"+FrontmatterDelimiter)
	if closeIdx == -1 {
		return nil, NewDocumentError(ErrMsgFrontmatterUnclosed, nil)
	}

	fmYAML := afterOpening[:closeIdx]
	if len(fmYAML) > MaxFrontmatterSize {
		return nil, NewDocumentError(ErrMsgFrontmatterTooLarge, nil)
	}

	bodyStart := closeIdx + len("\n"+FrontmatterDelimiter)
	body := ""
	if bodyStart < len(afterOpening) {
		body = afterOpening[bodyStart:]
		if len(body) > 1 && body[0] == '\r' && body[1] == '\n' {
			body = body[2:]
		} else if len(body) > 0 && body[0] == '\n' {
			body = body[1:]
		}
	}

	var doc Document
	if err := yaml.Unmarshal([]byte(fmYAML), &doc); err != nil {
		return nil, NewDocumentError(ErrMsgFrontmatterInvalid, err)
	}
	if doc.Name == "" {
		return nil, NewDocumentError(ErrMsgDocumentNameMissing, nil)
	}

	doc.Body = body
	return &doc, nil
}

// ParseDocumentFile reads and parses a tag document from disk.
func ParseDocumentFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError(ErrMsgDocumentReadFailed, err)
	}
	return ParseDocument(data)
}

// MustParseDocument parses a tag document and panics on error.
func MustParseDocument(data []byte) *Document {
	doc, err := ParseDocument(data)
	if err != nil {
		panic(err)
	}
	return doc
}

// Limits merges the document's overrides onto base: zero fields
// inherit.
func (d *Document) Limits(base Limits) Limits {
	merged := base
	if d.MaxCharLimit != 0 {
		merged.MaxCharLimit = d.MaxCharLimit
	}
	if d.MaxDepth != 0 {
		merged.MaxDepth = d.MaxDepth
	}
	if d.MaxInvocations != 0 {
		merged.MaxInvocations = d.MaxInvocations
	}
	return merged
}

// ProcessDocument interprets a document's body under its limit
// overrides. Caller-supplied ProcessOptions run after the document
// override and may replace it.
func (e *Engine) ProcessDocument(ctx context.Context, doc *Document, opts ...ProcessOption) *Response {
	merged := append([]ProcessOption{WithProcessLimits(doc.Limits(e.limits))}, opts...)
	return e.Process(ctx, doc.Body, merged...)
}
