// Package tagscript is a small templating/macro engine: it expands raw
// text containing embedded tag declarations into an output string plus a
// set of structured side-channel actions, under pluggable extension
// points and strict resource bounds. It is designed to run untrusted,
// user-authored templates at request time inside a shared process.
//
// # Syntax
//
// A declaration is a brace-fenced unit with an identifier, an optional
// parenthesized parameter, and an optional payload after a colon:
//
//	{identifier}
//	{identifier(parameter)}
//	{identifier(parameter):payload}
//	{identifier:payload}
//
// Payloads may contain complete nested declarations. Escaped delimiters
// (\{ and \}) are literal and never structural. Malformed input is
// never an error: unmatched delimiters, empty identifiers, and unknown
// identifiers all degrade to literal text.
//
// # Basic Usage
//
// Build an engine once and process templates against it:
//
//	engine := tagscript.MustNew(block.Defaults(), map[string]tagscript.Adapter{
//	    "user": adapter.NewString("Alice"),
//	})
//	resp := engine.Process(ctx, "Hello {user}! You rolled {range:1-6}.")
//	// resp.Body, resp.Actions, resp.Truncated
//
// # Extension Points
//
// A Block handles declarations matched by one or more identifier
// aliases and may request lazy sub-interpretation of its payload; an
// Adapter is a read-only leaf variable provider. Registries are built
// once at engine construction, are immutable afterwards, and may be
// shared by any number of concurrent Process calls.
//
// # Dispatch Order
//
// For each declaration, in order: call-scoped seed variables, the
// adapter registry, the block registry, literal fallback. An adapter or
// block declines a declaration by returning ErrDecline; any other error
// is a fault, caught per node, which also falls back to the raw text.
//
// # Limits
//
// Process is bounded by three independent thresholds (Limits): a
// character limit with exact-boundary truncation, a sub-interpretation
// depth limit, and a total block invocation limit. Limit hits are not
// errors; they are observable through Response.Truncated and through
// declarations left in literal form.
package tagscript
