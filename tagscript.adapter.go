package tagscript

import "context"

// Adapter is a read-only leaf variable provider. Adapters are matched
// by a single identifier and are consulted before the block registry;
// they may inspect the declaration's parameter and payload but have no
// sub-interpretation capability of their own.
//
// Resolve returns the substitution text, ErrDecline to pass the
// declaration on to block dispatch, or any other error to fault (the
// node falls back to literal text).
type Adapter interface {
	Resolve(ctx context.Context, ectx *Context) (string, error)
}

// AdapterFunc adapts a plain function to the Adapter interface.
type AdapterFunc func(ctx context.Context, ectx *Context) (string, error)

// Resolve calls f.
func (f AdapterFunc) Resolve(ctx context.Context, ectx *Context) (string, error) {
	return f(ctx, ectx)
}
