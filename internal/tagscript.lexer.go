package internal

import (
	"go.uber.org/zap"
)

// Config holds the grammar characters the lexer and parser operate on.
// All characters must be distinct single-byte (ASCII) values.
type Config struct {
	Open       byte // opening declaration delimiter (default '{')
	Close      byte // closing declaration delimiter (default '}')
	ParamOpen  byte // opening parameter delimiter (default '(')
	ParamClose byte // closing parameter delimiter (default ')')
	Separator  byte // payload separator (default ':')
	Escape     byte // escape character (default '\')
}

// DefaultConfig returns the default grammar configuration.
func DefaultConfig() Config {
	return Config{
		Open:       DefaultOpenDelim,
		Close:      DefaultCloseDelim,
		ParamOpen:  DefaultParamOpen,
		ParamClose: DefaultParamClose,
		Separator:  DefaultSeparator,
		Escape:     DefaultEscape,
	}
}

// escapable reports whether ch may follow the escape character to
// produce a literal. Only structural characters are escapable; a
// backslash before anything else is ordinary text.
func (c Config) escapable(ch byte) bool {
	return ch == c.Open || ch == c.Close || ch == c.Escape
}

// Span is a position range in the source. Start is inclusive, End is
// exclusive. The lexer never copies source text; callers slice.
type Span struct {
	Kind    SpanKind
	Start   int
	End     int
	Escaped bool // text span contains escape sequences that need unescaping
}

// Lexer scans source text once and yields spans of literal text and
// complete (brace-balanced) declarations. Malformed input is fail-open:
// an opening delimiter with no matching closer turns the remainder of
// the source into a literal text span.
type Lexer struct {
	source string
	config Config
	logger *zap.Logger
}

// NewLexer creates a lexer for the given source.
func NewLexer(source string, config Config, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgLexerCreated, zap.Int(LogFieldSource, len(source)))
	return &Lexer{
		source: source,
		config: config,
		logger: logger,
	}
}

// Scan walks the source and returns its spans in order.
func (l *Lexer) Scan() []Span {
	var spans []Span
	n := len(l.source)

	textStart := 0
	textEscaped := false
	flushText := func(end int) {
		if end > textStart {
			spans = append(spans, Span{Kind: SpanText, Start: textStart, End: end, Escaped: textEscaped})
		}
		textEscaped = false
	}

	i := 0
	for i < n {
		ch := l.source[i]

		if ch == l.config.Escape && i+1 < n && l.config.escapable(l.source[i+1]) {
			textEscaped = true
			i += 2
			continue
		}

		if ch != l.config.Open {
			i++
			continue
		}

		end, ok := l.matchClose(i)
		if !ok {
			// Fail-open: the unmatched delimiter and everything after
			// it is literal text, preserved verbatim.
			l.logger.Debug(LogMsgFailOpen, zap.Int(LogFieldOffset, i))
			flushText(i)
			spans = append(spans, Span{Kind: SpanText, Start: i, End: n})
			textStart = n
			i = n
			break
		}

		flushText(i)
		spans = append(spans, Span{Kind: SpanDeclaration, Start: i, End: end})
		textStart = end
		i = end
	}

	flushText(n)
	l.logger.Debug(LogMsgLexerScanned, zap.Int(LogFieldSpans, len(spans)))
	return spans
}

// matchClose finds the closing delimiter matching the opener at start,
// tracking nesting depth and skipping escape sequences. Returns the
// exclusive end offset of the declaration span.
func (l *Lexer) matchClose(start int) (int, bool) {
	n := len(l.source)
	depth := 0
	for i := start; i < n; i++ {
		ch := l.source[i]
		if ch == l.config.Escape && i+1 < n && l.config.escapable(l.source[i+1]) {
			i++
			continue
		}
		switch ch {
		case l.config.Open:
			depth++
		case l.config.Close:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}
