// Package adapter provides the stock Adapter implementations for
// exposing caller data to templates: constant strings with split
// indexing, integers, and arbitrary functions.
package adapter

import (
	"context"
	"strconv"
	"strings"

	tagscript "github.com/japandotorg/TagScriptEngine"
)

// StringAdapter resolves to a fixed string. The declaration's parameter
// selects a 1-based index into the string split on the payload (space
// when the payload is absent); a '+' prefix joins everything up to the
// index and a '+' suffix joins everything from it. Any malformed
// parameter falls back to the whole string.
//
//	{args}        -> the whole string
//	{args(2)}     -> second space-separated word
//	{args(+2)}    -> first two words
//	{args(2+)}    -> everything from the second word on
//	{args(2):,}   -> second comma-separated field
type StringAdapter struct {
	value  string
	escape bool
}

// NewString creates a StringAdapter for value.
func NewString(value string) *StringAdapter {
	return &StringAdapter{value: value}
}

// NewEscapedString creates a StringAdapter whose resolved content has
// its declaration delimiters escaped, so adapter output is never
// re-interpreted as declarations.
func NewEscapedString(value string) *StringAdapter {
	return &StringAdapter{value: value, escape: true}
}

// Resolve returns the string, sliced per the declaration's parameter.
func (a *StringAdapter) Resolve(_ context.Context, ectx *tagscript.Context) (string, error) {
	return a.finish(a.slice(ectx.Verb())), nil
}

func (a *StringAdapter) slice(verb *tagscript.Verb) string {
	parameter, ok := verb.Parameter()
	if !ok {
		return a.value
	}
	splitter := verb.PayloadOr(" ")
	words := strings.Split(a.value, splitter)

	headJoin := strings.HasPrefix(parameter, "+")
	tailJoin := strings.HasSuffix(parameter, "+")
	index, err := strconv.Atoi(strings.ReplaceAll(parameter, "+", ""))
	if err != nil || index < 1 || index > len(words) {
		return a.value
	}

	switch {
	case headJoin:
		return strings.Join(words[:index], splitter)
	case tailJoin:
		return strings.Join(words[index-1:], splitter)
	default:
		return words[index-1]
	}
}

func (a *StringAdapter) finish(s string) string {
	if a.escape {
		return tagscript.Escape(s)
	}
	return s
}

// IntAdapter resolves to a fixed integer.
type IntAdapter struct {
	value int
}

// NewInt creates an IntAdapter for value.
func NewInt(value int) *IntAdapter {
	return &IntAdapter{value: value}
}

// Resolve returns the integer in decimal form.
func (a *IntAdapter) Resolve(context.Context, *tagscript.Context) (string, error) {
	return strconv.Itoa(a.value), nil
}

// FuncAdapter resolves by calling fn on every reference, so the value
// can change between declarations in the same call.
type FuncAdapter struct {
	fn func() string
}

// NewFunc creates a FuncAdapter around fn.
func NewFunc(fn func() string) *FuncAdapter {
	return &FuncAdapter{fn: fn}
}

// Resolve calls the wrapped function.
func (a *FuncAdapter) Resolve(context.Context, *tagscript.Context) (string, error) {
	if a.fn == nil {
		return "", tagscript.ErrDecline
	}
	return a.fn(), nil
}
