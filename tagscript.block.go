package tagscript

import "context"

// Block is a pluggable declaration handler. The engine matches a
// declaration's identifier (lowercased, trimmed) against the aliases a
// Block declares and, on a hit, asks the Block to produce expansion
// text.
//
// Process returns the expansion string for the current declaration
// (available via ectx.Verb()). The string is inserted into the output
// verbatim and never re-scanned for further declarations. Returning
// ErrDecline means the Block does not claim this particular declaration
// (for example, a required parameter is missing) and the node falls
// back to its raw literal text. Any other error is treated as a fault:
// the engine logs it, substitutes literal fallback for this one node,
// and keeps going.
//
// A Block that needs to evaluate nested content calls
// ectx.SubInterpret with its raw payload, which re-enters the full
// pipeline under the current call's shared budget.
//
// Implementations must be safe for concurrent use, or stateless;
// registries are shared across concurrent Process calls.
type Block interface {
	// Names returns the identifier aliases this block answers to.
	Names() []string

	// Process expands the current declaration or declines it.
	Process(ctx context.Context, ectx *Context) (string, error)
}
