package block

import (
	"context"
	"strconv"

	"github.com/expr-lang/expr"

	tagscript "github.com/japandotorg/TagScriptEngine"
)

// MathBlock evaluates its payload as an arithmetic expression. The
// payload is expanded first, so nested declarations can feed numbers
// into the expression. A payload that fails to evaluate to a number
// leaves the declaration as literal text.
//
// Usage: {math:<expression>}
type MathBlock struct{}

// Names returns the identifiers this block claims.
func (b *MathBlock) Names() []string {
	return []string{"math", "m", "+", "calc"}
}

// Process expands the payload and evaluates the result.
func (b *MathBlock) Process(ctx context.Context, ectx *tagscript.Context) (string, error) {
	payload, ok := ectx.Verb().Payload()
	if !ok {
		return "", tagscript.ErrDecline
	}

	expression := ectx.SubInterpret(ctx, payload).Body
	result, err := expr.Eval(expression, nil)
	if err != nil {
		return "", tagscript.ErrDecline
	}
	return formatNumber(result)
}

// formatNumber renders a numeric evaluation result without trailing
// zeros. Non-numeric results decline.
func formatNumber(v any) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), nil
	}
	return "", tagscript.ErrDecline
}
