package tagscript

// Verb is a single parsed declaration: the `{identifier(parameter):payload}`
// unit a Block or Adapter is asked to expand. Parameter and payload are
// raw substrings; they are never re-parsed unless an extension asks for
// sub-interpretation of its payload via Context.SubInterpret.
type Verb struct {
	// Identifier is the declaration's name, exactly as written
	// (matching is case-insensitive and whitespace-trimmed, but the
	// original spelling is preserved here).
	Identifier string

	// Raw is the exact source span of the declaration, delimiters
	// included. It is what the node expands to when every extension
	// declines or a limit is hit.
	Raw string

	parameter    string
	hasParameter bool
	payload      string
	hasPayload   bool
}

// NewVerb creates a verb with the given identifier and raw span.
// Mostly useful for testing Block implementations in isolation.
func NewVerb(identifier, raw string) *Verb {
	return &Verb{Identifier: identifier, Raw: raw}
}

// WithParameter returns the verb with a parameter set.
func (v *Verb) WithParameter(parameter string) *Verb {
	v.parameter = parameter
	v.hasParameter = true
	return v
}

// WithPayload returns the verb with a payload set.
func (v *Verb) WithPayload(payload string) *Verb {
	v.payload = payload
	v.hasPayload = true
	return v
}

// Parameter returns the raw parameter text and whether one was present.
func (v *Verb) Parameter() (string, bool) {
	return v.parameter, v.hasParameter
}

// ParameterOr returns the raw parameter text, or def when absent.
func (v *Verb) ParameterOr(def string) string {
	if v.hasParameter {
		return v.parameter
	}
	return def
}

// Payload returns the raw payload text and whether one was present.
func (v *Verb) Payload() (string, bool) {
	return v.payload, v.hasPayload
}

// PayloadOr returns the raw payload text, or def when absent.
func (v *Verb) PayloadOr(def string) string {
	if v.hasPayload {
		return v.payload
	}
	return def
}

// String returns the raw declaration span.
func (v *Verb) String() string {
	return v.Raw
}
