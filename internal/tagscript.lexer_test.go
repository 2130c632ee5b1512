package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func scan(t *testing.T, source string) []Span {
	t.Helper()
	return NewLexer(source, DefaultConfig(), zap.NewNop()).Scan()
}

func TestLexer_Scan_PlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Span
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:  "simple text",
			input: "Hello, world!",
			expected: []Span{
				{Kind: SpanText, Start: 0, End: 13},
			},
		},
		{
			name:  "multiline text",
			input: "Line 1\nLine 2",
			expected: []Span{
				{Kind: SpanText, Start: 0, End: 13},
			},
		},
		{
			name:  "closing delimiter without opener is text",
			input: "a } b",
			expected: []Span{
				{Kind: SpanText, Start: 0, End: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scan(t, tt.input))
		})
	}
}

func TestLexer_Scan_Declarations(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Span
	}{
		{
			name:  "bare declaration",
			input: "{user}",
			expected: []Span{
				{Kind: SpanDeclaration, Start: 0, End: 6},
			},
		},
		{
			name:  "declaration between text",
			input: "Hi {user}!",
			expected: []Span{
				{Kind: SpanText, Start: 0, End: 3},
				{Kind: SpanDeclaration, Start: 3, End: 9},
				{Kind: SpanText, Start: 9, End: 10},
			},
		},
		{
			name:  "adjacent declarations",
			input: "{a}{b}",
			expected: []Span{
				{Kind: SpanDeclaration, Start: 0, End: 3},
				{Kind: SpanDeclaration, Start: 3, End: 6},
			},
		},
		{
			name:  "nested declaration spans to outer closer",
			input: "{if({args}==):x}",
			expected: []Span{
				{Kind: SpanDeclaration, Start: 0, End: 16},
			},
		},
		{
			name:  "deeply nested",
			input: "{a:{b:{c}}}",
			expected: []Span{
				{Kind: SpanDeclaration, Start: 0, End: 11},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scan(t, tt.input))
		})
	}
}

func TestLexer_Scan_FailOpen(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Span
	}{
		{
			name:  "unmatched opener swallows remainder as text",
			input: "before {user",
			expected: []Span{
				{Kind: SpanText, Start: 0, End: 7},
				{Kind: SpanText, Start: 7, End: 12},
			},
		},
		{
			name:  "unbalanced nesting",
			input: "{a:{b}",
			expected: []Span{
				{Kind: SpanText, Start: 0, End: 6},
			},
		},
		{
			name:  "valid declaration before unmatched opener",
			input: "{a} then {b",
			expected: []Span{
				{Kind: SpanDeclaration, Start: 0, End: 3},
				{Kind: SpanText, Start: 3, End: 9},
				{Kind: SpanText, Start: 9, End: 11},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scan(t, tt.input))
		})
	}
}

func TestLexer_Scan_Escapes(t *testing.T) {
	t.Run("escaped opener never starts a declaration", func(t *testing.T) {
		spans := scan(t, `a \{literal\} b`)
		require.Len(t, spans, 1)
		assert.Equal(t, SpanText, spans[0].Kind)
		assert.True(t, spans[0].Escaped)
	})

	t.Run("escaped closer does not end a declaration", func(t *testing.T) {
		spans := scan(t, `{a:x\}y}`)
		require.Len(t, spans, 1)
		assert.Equal(t, SpanDeclaration, spans[0].Kind)
		assert.Equal(t, 8, spans[0].End)
	})

	t.Run("escape before ordinary character is plain text", func(t *testing.T) {
		spans := scan(t, `a \n b`)
		require.Len(t, spans, 1)
		assert.Equal(t, SpanText, spans[0].Kind)
		assert.False(t, spans[0].Escaped)
	})

	t.Run("escaped escape", func(t *testing.T) {
		spans := scan(t, `a \\ b`)
		require.Len(t, spans, 1)
		assert.True(t, spans[0].Escaped)
	})
}

func TestLexer_Scan_CustomDelimiters(t *testing.T) {
	config := DefaultConfig()
	config.Open = '<'
	config.Close = '>'

	spans := NewLexer("hi <user> and {not}", config, zap.NewNop()).Scan()
	require.Len(t, spans, 3)
	assert.Equal(t, SpanText, spans[0].Kind)
	assert.Equal(t, SpanDeclaration, spans[1].Kind)
	assert.Equal(t, SpanText, spans[2].Kind)
}

func TestUnescape(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no escapes", "plain", "plain"},
		{"escaped delimiters", `\{user\}`, "{user}"},
		{"escaped escape", `a\\b`, `a\b`},
		{"escape before ordinary char kept", `a\nb`, `a\nb`},
		{"trailing escape kept", `a\`, `a\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Unescape(tt.input, cfg))
		})
	}
}
