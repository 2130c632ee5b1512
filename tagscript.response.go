package tagscript

// Response is the result of one Process call: the expanded body text,
// the side-channel actions written by blocks during interpretation, and
// whether the output was cut at the character limit.
type Response struct {
	// Body is the final output text.
	Body string

	// Actions maps action keys to opaque values. Later writes to the
	// same key overwrite earlier ones.
	Actions map[string]any

	// Truncated is set when the body was cut exactly at the configured
	// character limit.
	Truncated bool
}

func newResponse() *Response {
	return &Response{Actions: make(map[string]any)}
}

// SetAction records an action value under key, overwriting any earlier
// write to the same key.
func (r *Response) SetAction(key string, value any) {
	if r.Actions == nil {
		r.Actions = make(map[string]any)
	}
	r.Actions[key] = value
}

// GetAction returns the action value for key and whether it exists.
func (r *Response) GetAction(key string) (any, bool) {
	if r.Actions == nil {
		return nil, false
	}
	val, ok := r.Actions[key]
	return val, ok
}

// GetActionString returns the action value for key as a string, or ""
// when absent or not a string.
func (r *Response) GetActionString(key string) string {
	val, ok := r.GetAction(key)
	if !ok {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

// HasAction reports whether an action was written under key.
func (r *Response) HasAction(key string) bool {
	_, ok := r.GetAction(key)
	return ok
}
