package tagscript

// Limits bounds the work one Process call may do on untrusted input.
// The three thresholds are deliberately independent: the character
// limit alone does not bound compute for a block that recurses without
// producing output, the depth limit alone does not bound total work for
// a block fanning out many shallow sub-interpretations, and the
// invocation limit closes that gap.
type Limits struct {
	// MaxCharLimit is the maximum body length in bytes. Output is cut
	// exactly at this boundary and the Response is flagged truncated.
	// Zero or negative means unlimited.
	MaxCharLimit int

	// MaxDepth is the maximum sub-interpretation nesting depth. A
	// SubInterpret call past the limit returns its input unexpanded.
	// Zero or negative means unlimited.
	MaxDepth int

	// MaxInvocations caps block Process calls across the whole call.
	// Past the limit, every remaining declaration resolves to literal
	// fallback. Zero or negative means unlimited.
	MaxInvocations int
}

// DefaultLimits returns the package default limits.
func DefaultLimits() Limits {
	return Limits{
		MaxCharLimit:   DefaultMaxCharLimit,
		MaxDepth:       DefaultMaxDepth,
		MaxInvocations: DefaultMaxInvocations,
	}
}
