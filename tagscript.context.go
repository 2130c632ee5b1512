package tagscript

import (
	"context"

	"go.uber.org/zap"
)

// Context carries the state a Block or Adapter sees while expanding one
// declaration. It lives for the duration of a single Process call and
// is never shared across calls.
type Context struct {
	verb   *Verb
	engine *Engine
	run    *runState
}

// Verb returns the declaration currently being expanded.
func (c *Context) Verb() *Verb {
	return c.verb
}

// Response returns the call's Response. Blocks write actions through
// it; the body is assembled by the engine.
func (c *Context) Response() *Response {
	return c.run.response
}

// SubInterpret re-enters the full pipeline on raw, sharing the current
// call's budget. Depth is incremented for the duration of the nested
// run; past the depth limit the input is returned unexpanded.
// The returned Response's Actions map is the shared one for the call.
func (c *Context) SubInterpret(ctx context.Context, raw string) *Response {
	run := c.run
	e := c.engine

	if run.limits.MaxDepth > 0 && run.depth >= run.limits.MaxDepth {
		e.logger.Debug(LogMsgDepthLimitReached, zap.Int(LogFieldDepth, run.depth))
		return &Response{Body: raw, Actions: run.response.Actions, Truncated: run.truncated}
	}

	run.depth++
	body := e.interpret(ctx, raw, run)
	run.depth--

	return &Response{Body: body, Actions: run.response.Actions, Truncated: run.truncated}
}

// SetVariable installs an adapter in the call-scoped variable layer,
// resolvable as {name} for the remainder of this call. Variables shadow
// engine adapters and are consulted before block dispatch.
func (c *Context) SetVariable(name string, a Adapter) {
	if a == nil {
		return
	}
	key := normalizeIdentifier(name)
	if key == "" {
		return
	}
	if c.run.variables == nil {
		c.run.variables = make(map[string]Adapter)
	}
	c.run.variables[key] = a
}

// Variable returns the call-scoped adapter for name, if any.
func (c *Context) Variable(name string) (Adapter, bool) {
	a, ok := c.run.variables[normalizeIdentifier(name)]
	return a, ok
}

// OverrideBody forces the final Response body to s, regardless of what
// the walk accumulates. Interpretation continues unless Halt is also
// called; declarations after the override still run and may still write
// actions.
func (c *Context) OverrideBody(s string) {
	c.run.bodyOverride = &s
}

// Halt stops the walk after the current declaration finishes.
func (c *Context) Halt() {
	c.run.halted = true
}

// runState is the mutable per-call budget and output state threaded
// through the whole interpretation, including sub-interpretations.
type runState struct {
	limits       Limits
	depth        int
	invocations  int
	truncated    bool
	halted       bool
	bodyOverride *string
	variables    map[string]Adapter
	response     *Response
}
