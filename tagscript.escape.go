package tagscript

import (
	"strings"

	"github.com/japandotorg/TagScriptEngine/internal"
)

// Escape prefixes the default structural characters in s with the
// escape character so the result survives interpretation verbatim.
// Useful for adapters that inject user content which must not be
// mistaken for declarations.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == internal.DefaultOpenDelim || ch == internal.DefaultCloseDelim || ch == internal.DefaultEscape {
			sb.WriteByte(internal.DefaultEscape)
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

// Unescape reverses Escape for the default grammar.
func Unescape(s string) string {
	return internal.Unescape(s, internal.DefaultConfig())
}
