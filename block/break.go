package block

import (
	"context"

	tagscript "github.com/japandotorg/TagScriptEngine"
)

// BreakBlock forces the final response body to be this block's payload
// when its parameter condition holds. Interpretation continues, so
// action-emitting blocks after the break still run; only the assembled
// body is replaced.
//
// Usage: {break(<condition>):[message]}
type BreakBlock struct{}

// Names returns the identifiers this block claims.
func (b *BreakBlock) Names() []string {
	return []string{"break", "short", "shortcircuit"}
}

// Process overrides the response body when the condition holds.
func (b *BreakBlock) Process(ctx context.Context, ectx *tagscript.Context) (string, error) {
	condition, ok := ectx.Verb().Parameter()
	if !ok {
		return "", tagscript.ErrDecline
	}
	if evalCondition(ectx.SubInterpret(ctx, condition).Body) {
		ectx.OverrideBody(ectx.Verb().PayloadOr(""))
	}
	return "", nil
}

// StopBlock overrides the response body with its payload and halts the
// walk when its parameter condition holds. Unlike BreakBlock, nothing
// after a triggered stop runs.
//
// Usage: {stop(<condition>):[message]}
type StopBlock struct{}

// Names returns the identifiers this block claims.
func (b *StopBlock) Names() []string {
	return []string{"stop", "halt", "error"}
}

// Process halts interpretation when the condition holds.
func (b *StopBlock) Process(ctx context.Context, ectx *tagscript.Context) (string, error) {
	condition, ok := ectx.Verb().Parameter()
	if !ok {
		return "", tagscript.ErrDecline
	}
	if evalCondition(ectx.SubInterpret(ctx, condition).Body) {
		ectx.OverrideBody(ectx.Verb().PayloadOr(""))
		ectx.Halt()
	}
	return "", nil
}
