package block

import (
	"context"
	"strings"

	tagscript "github.com/japandotorg/TagScriptEngine"
	"github.com/japandotorg/TagScriptEngine/adapter"
)

// AssignmentBlock stores a call-scoped variable. The parameter names
// the variable; the payload is expanded once at assignment time and the
// resulting string is resolvable as {name} for the rest of the call,
// shadowing engine adapters.
//
// Usage: {=(<name>):<value>}
type AssignmentBlock struct{}

// Names returns the identifiers this block claims.
func (b *AssignmentBlock) Names() []string {
	return []string{"=", "assign", "let", "var"}
}

// Process expands the payload and binds it as a variable.
func (b *AssignmentBlock) Process(ctx context.Context, ectx *tagscript.Context) (string, error) {
	name, ok := ectx.Verb().Parameter()
	if !ok {
		return "", tagscript.ErrDecline
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", tagscript.ErrDecline
	}

	value := ectx.SubInterpret(ctx, ectx.Verb().PayloadOr("")).Body
	ectx.SetVariable(name, adapter.NewString(value))
	return "", nil
}
