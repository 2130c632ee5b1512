package block

import (
	"context"

	tagscript "github.com/japandotorg/TagScriptEngine"
)

// IfBlock expands to one of two payload branches depending on its
// parameter condition.
//
// Usage: {if(<condition>):<true branch>|[false branch]}
//
// The condition is expanded before evaluation, so {if({args}==hi):...}
// compares the resolved value. The payload splits at the first
// top-level '|'. Only the selected branch is expanded, so declarations
// in the branch not taken never run.
type IfBlock struct{}

// Names returns the identifiers this block claims.
func (b *IfBlock) Names() []string {
	return []string{"if"}
}

// Process evaluates the condition and expands the matching branch.
func (b *IfBlock) Process(ctx context.Context, ectx *tagscript.Context) (string, error) {
	condition, ok := ectx.Verb().Parameter()
	if !ok {
		return "", tagscript.ErrDecline
	}
	payload, ok := ectx.Verb().Payload()
	if !ok {
		return "", tagscript.ErrDecline
	}

	onTrue, onFalse := splitBranches(payload)
	if evalCondition(ectx.SubInterpret(ctx, condition).Body) {
		return ectx.SubInterpret(ctx, onTrue).Body, nil
	}
	return ectx.SubInterpret(ctx, onFalse).Body, nil
}

// AnyBlock is the disjunction form of IfBlock: its parameter holds
// '|'-separated conditions and the true branch is taken when at least
// one holds.
//
// Usage: {any(<condition>|<condition>|...):<true branch>|[false branch]}
type AnyBlock struct{}

func (b *AnyBlock) Names() []string {
	return []string{"any", "or"}
}

func (b *AnyBlock) Process(ctx context.Context, ectx *tagscript.Context) (string, error) {
	parameter, ok := ectx.Verb().Parameter()
	if !ok {
		return "", tagscript.ErrDecline
	}
	payload, ok := ectx.Verb().Payload()
	if !ok {
		return "", tagscript.ErrDecline
	}

	result := false
	for _, condition := range splitTopLevel(parameter, '|') {
		if evalCondition(ectx.SubInterpret(ctx, condition).Body) {
			result = true
			break
		}
	}

	onTrue, onFalse := splitBranches(payload)
	if result {
		return ectx.SubInterpret(ctx, onTrue).Body, nil
	}
	return ectx.SubInterpret(ctx, onFalse).Body, nil
}

// AllBlock is the conjunction form of IfBlock: its parameter holds
// '&'-separated conditions and the true branch is taken only when all
// of them hold.
//
// Usage: {all(<condition>&<condition>&...):<true branch>|[false branch]}
type AllBlock struct{}

func (b *AllBlock) Names() []string {
	return []string{"all", "and"}
}

func (b *AllBlock) Process(ctx context.Context, ectx *tagscript.Context) (string, error) {
	parameter, ok := ectx.Verb().Parameter()
	if !ok {
		return "", tagscript.ErrDecline
	}
	payload, ok := ectx.Verb().Payload()
	if !ok {
		return "", tagscript.ErrDecline
	}

	result := true
	for _, condition := range splitTopLevel(parameter, '&') {
		if !evalCondition(ectx.SubInterpret(ctx, condition).Body) {
			result = false
			break
		}
	}

	onTrue, onFalse := splitBranches(payload)
	if result {
		return ectx.SubInterpret(ctx, onTrue).Body, nil
	}
	return ectx.SubInterpret(ctx, onFalse).Body, nil
}
