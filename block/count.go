package block

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	tagscript "github.com/japandotorg/TagScriptEngine"
)

// Length parameter values recognized by LengthBlock.
const (
	lengthModeInvalid = "-1"
)

// CountBlock counts case-sensitive occurrences of its parameter inside
// its payload; without a parameter it counts the payload's spaces.
//
// Usage: {count([text]):<message>}
type CountBlock struct{}

// Names returns the identifiers this block claims.
func (b *CountBlock) Names() []string {
	return []string{"count"}
}

// Process counts substring occurrences.
func (b *CountBlock) Process(_ context.Context, ectx *tagscript.Context) (string, error) {
	payload, ok := ectx.Verb().Payload()
	if !ok {
		return "", tagscript.ErrDecline
	}
	if parameter, ok := ectx.Verb().Parameter(); ok && parameter != "" {
		return strconv.Itoa(strings.Count(payload, parameter)), nil
	}
	return strconv.Itoa(strings.Count(payload, " ")), nil
}

// LengthBlock measures its payload: characters by default, words with a
// "w" parameter, spaces with an "s" parameter. An unrecognized
// parameter yields -1.
//
// Usage: {length([w|s]):<text>}
type LengthBlock struct{}

// Names returns the identifiers this block claims.
func (b *LengthBlock) Names() []string {
	return []string{"length", "len"}
}

// Process measures the payload.
func (b *LengthBlock) Process(_ context.Context, ectx *tagscript.Context) (string, error) {
	payload, ok := ectx.Verb().Payload()
	if !ok {
		return "", tagscript.ErrDecline
	}

	parameter, ok := ectx.Verb().Parameter()
	if !ok {
		return strconv.Itoa(utf8.RuneCountInString(payload)), nil
	}

	switch strings.ToLower(strings.TrimSpace(parameter)) {
	case "w", "word", "words":
		return strconv.Itoa(len(strings.Split(payload, " "))), nil
	case "s", "space", "spaces":
		return strconv.Itoa(len(strings.Split(payload, " ")) - 1), nil
	}
	return lengthModeInvalid, nil
}
