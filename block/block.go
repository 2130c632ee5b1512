// Package block provides the stock Block implementations: conditionals,
// short-circuits, assignment, randomization, math, time formatting,
// counting, and the action-emitting blocks (command, override,
// require/blacklist, embed).
//
// All blocks follow the same contract: they claim declarations by
// identifier, decline with tagscript.ErrDecline when a required
// parameter or payload is missing, and sub-interpret only the payload
// text they actually select, so branches not taken are never expanded.
package block

import (
	"strconv"
	"strings"

	tagscript "github.com/japandotorg/TagScriptEngine"
)

// Condition comparison operators, checked in this order. Two-byte
// operators come first so "a>=b" never matches ">".
var conditionOperators = []string{"!=", "==", ">=", "<=", ">", "<"}

// evalCondition evaluates a single TagScript condition string.
//
// A condition containing a comparison operator compares the two sides
// numerically when both parse as floats, otherwise as strings. A bare
// condition is true only for the literal "true" (case-insensitive);
// everything else, including the empty string, is false.
func evalCondition(condition string) bool {
	condition = strings.TrimSpace(condition)

	for _, op := range conditionOperators {
		idx := strings.Index(condition, op)
		if idx < 0 {
			continue
		}
		left := strings.TrimSpace(condition[:idx])
		right := strings.TrimSpace(condition[idx+len(op):])
		return compare(left, right, op)
	}

	if b, ok := implicitBool(condition); ok {
		return b
	}
	return false
}

// implicitBool recognizes the literal booleans "true" and "false".
func implicitBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// compare applies op to the two operands, numerically when possible.
func compare(left, right, op string) bool {
	lf, lerr := strconv.ParseFloat(left, 64)
	rf, rerr := strconv.ParseFloat(right, 64)
	numeric := lerr == nil && rerr == nil

	switch op {
	case "==":
		if numeric {
			return lf == rf
		}
		return left == right
	case "!=":
		if numeric {
			return lf != rf
		}
		return left != right
	case ">=":
		if numeric {
			return lf >= rf
		}
		return left >= right
	case "<=":
		if numeric {
			return lf <= rf
		}
		return left <= right
	case ">":
		if numeric {
			return lf > rf
		}
		return left > right
	case "<":
		if numeric {
			return lf < rf
		}
		return left < right
	}
	return false
}

// splitTopLevel splits s at occurrences of sep that sit outside any
// braced declaration, so branch separators inside nested declarations
// are left alone. Escaped characters never split or change depth.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// splitBranches splits a conditional payload into its true and false
// branches at the first top-level '|'. Without a separator the whole
// payload is the true branch and the false branch is empty.
func splitBranches(payload string) (onTrue, onFalse string) {
	parts := splitTopLevel(payload, '|')
	if len(parts) >= 2 {
		return parts[0], strings.Join(parts[1:], "|")
	}
	return payload, ""
}

// Defaults returns a fresh instance of every stock block, suitable for
// passing straight to tagscript.New.
func Defaults() []tagscript.Block {
	return []tagscript.Block{
		&IfBlock{},
		&AnyBlock{},
		&AllBlock{},
		&BreakBlock{},
		&StopBlock{},
		&AssignmentBlock{},
		&FiftyFiftyBlock{},
		&RandomBlock{},
		&RangeBlock{},
		&RangeFBlock{},
		&MathBlock{},
		&StrfBlock{},
		&CountBlock{},
		&LengthBlock{},
		NewCommandBlock(0),
		&OverrideBlock{},
		&RequireBlock{},
		&BlacklistBlock{},
		&EmbedBlock{},
	}
}
