package internal

import (
	"strings"

	"go.uber.org/zap"
)

// Node is a parsed template element: a literal text run or a single
// declaration. Parameter and Payload hold raw, unparsed substrings;
// nested declarations inside them are only discovered if the payload is
// fed back through the pipeline later. Raw always reproduces the exact
// source span of a declaration so it can stand in as literal fallback.
type Node struct {
	Kind NodeKind

	// Text content, unescaped. Valid for NodeText.
	Text string

	// Declaration fields. Valid for NodeDeclaration.
	Identifier   string
	Parameter    string
	HasParameter bool
	Payload      string
	HasPayload   bool

	Raw string
}

// Parser turns source text into a flat ordered node sequence. It only
// resolves the outermost structure; payload contents stay raw.
type Parser struct {
	source string
	config Config
	logger *zap.Logger
}

// NewParser creates a parser for the given source.
func NewParser(source string, config Config, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldSource, len(source)))
	return &Parser{
		source: source,
		config: config,
		logger: logger,
	}
}

// Parse lexes the source and materializes its top-level nodes.
func (p *Parser) Parse() []Node {
	spans := NewLexer(p.source, p.config, p.logger).Scan()
	nodes := make([]Node, 0, len(spans))

	for _, span := range spans {
		raw := p.source[span.Start:span.End]
		switch span.Kind {
		case SpanText:
			text := raw
			if span.Escaped {
				text = Unescape(text, p.config)
			}
			nodes = append(nodes, Node{Kind: NodeText, Text: text, Raw: raw})
		case SpanDeclaration:
			nodes = append(nodes, p.parseDeclaration(raw))
		}
	}

	p.logger.Debug(LogMsgParserDone, zap.Int(LogFieldNodes, len(nodes)))
	return nodes
}

// parseDeclaration splits a balanced declaration span into identifier,
// optional parameter, and optional payload. Anything that does not fit
// the grammar degrades to a literal text node holding the raw span.
func (p *Parser) parseDeclaration(raw string) Node {
	cfg := p.config
	interior := raw[1 : len(raw)-1]
	n := len(interior)

	identEnd := -1
	paramOpen := -1
	sepIdx := -1
	for i := 0; i < n; i++ {
		ch := interior[i]
		if ch == cfg.Escape && i+1 < n && cfg.escapable(interior[i+1]) {
			return literalNode(raw)
		}
		if ch == cfg.Open || ch == cfg.Close {
			return literalNode(raw)
		}
		if ch == cfg.ParamOpen {
			identEnd = i
			paramOpen = i
			break
		}
		if ch == cfg.Separator {
			identEnd = i
			sepIdx = i
			break
		}
	}
	if identEnd == -1 {
		identEnd = n
	}

	identifier := strings.TrimSpace(interior[:identEnd])
	if identifier == "" {
		return literalNode(raw)
	}

	node := Node{Kind: NodeDeclaration, Identifier: identifier, Raw: raw}

	if paramOpen != -1 {
		paramEnd, ok := matchParamClose(interior, paramOpen, cfg)
		if !ok {
			return literalNode(raw)
		}
		node.Parameter = interior[paramOpen+1 : paramEnd]
		node.HasParameter = true
		sepIdx = findSeparator(interior, paramEnd+1, cfg)
	}

	if sepIdx != -1 {
		node.Payload = interior[sepIdx+1:]
		node.HasPayload = true
	}

	return node
}

// literalNode wraps a declaration-shaped span that failed the grammar
// into a verbatim text node.
func literalNode(raw string) Node {
	return Node{Kind: NodeText, Text: raw, Raw: raw}
}

// matchParamClose finds the parameter closer matching the opener at
// openIdx, tracking parenthesis depth and skipping escape sequences.
func matchParamClose(s string, openIdx int, cfg Config) (int, bool) {
	n := len(s)
	depth := 0
	for i := openIdx; i < n; i++ {
		ch := s[i]
		if ch == cfg.Escape && i+1 < n && cfg.escapable(s[i+1]) {
			i++
			continue
		}
		switch ch {
		case cfg.ParamOpen:
			depth++
		case cfg.ParamClose:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// findSeparator locates the payload separator at nesting depth zero,
// starting at from. Text between a closed parameter and the separator
// is tolerated and dropped.
func findSeparator(s string, from int, cfg Config) int {
	n := len(s)
	depth := 0
	for i := from; i < n; i++ {
		ch := s[i]
		if ch == cfg.Escape && i+1 < n && cfg.escapable(s[i+1]) {
			i++
			continue
		}
		switch ch {
		case cfg.Open:
			depth++
		case cfg.Close:
			depth--
		case cfg.Separator:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// Unescape removes the escape character from escaped structural
// characters, leaving everything else untouched.
func Unescape(s string, cfg Config) string {
	if !strings.ContainsRune(s, rune(cfg.Escape)) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	n := len(s)
	for i := 0; i < n; i++ {
		if s[i] == cfg.Escape && i+1 < n && cfg.escapable(s[i+1]) {
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
