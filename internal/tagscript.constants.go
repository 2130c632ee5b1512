package internal

// SpanKind classifies a lexed span of source text.
type SpanKind int

// Span kind constants
const (
	SpanText SpanKind = iota
	SpanDeclaration
)

// Span kind string names for debugging
const (
	SpanKindNameText        = "TEXT"
	SpanKindNameDeclaration = "DECLARATION"
)

// String returns the string representation of the span kind.
func (k SpanKind) String() string {
	switch k {
	case SpanDeclaration:
		return SpanKindNameDeclaration
	default:
		return SpanKindNameText
	}
}

// NodeKind classifies a parsed node.
type NodeKind int

// Node kind constants
const (
	NodeText NodeKind = iota
	NodeDeclaration
)

// Node kind string names for debugging
const (
	NodeKindNameText        = "TEXT"
	NodeKindNameDeclaration = "DECLARATION"
)

// String returns the string representation of the node kind.
func (k NodeKind) String() string {
	switch k {
	case NodeDeclaration:
		return NodeKindNameDeclaration
	default:
		return NodeKindNameText
	}
}

// Default grammar characters
const (
	DefaultOpenDelim  = '{'
	DefaultCloseDelim = '}'
	DefaultParamOpen  = '('
	DefaultParamClose = ')'
	DefaultSeparator  = ':'
	DefaultEscape     = '\\'
)

// Log message constants
const (
	LogMsgLexerCreated  = "lexer created"
	LogMsgLexerScanned  = "lexer scan complete"
	LogMsgParserCreated = "parser created"
	LogMsgParserDone    = "parse complete"
	LogMsgFailOpen      = "unmatched opening delimiter, remainder treated as literal"
)

// Log field constants
const (
	LogFieldSource = "source_bytes"
	LogFieldSpans  = "spans"
	LogFieldNodes  = "nodes"
	LogFieldOffset = "offset"
)
