package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func parse(t *testing.T, source string) []Node {
	t.Helper()
	return NewParser(source, DefaultConfig(), zap.NewNop()).Parse()
}

func TestParser_Parse_Declarations(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Node
	}{
		{
			name:  "identifier only",
			input: "{user}",
			expected: Node{
				Kind: NodeDeclaration, Identifier: "user", Raw: "{user}",
			},
		},
		{
			name:  "identifier and parameter",
			input: "{user(1)}",
			expected: Node{
				Kind: NodeDeclaration, Identifier: "user", Raw: "{user(1)}",
				Parameter: "1", HasParameter: true,
			},
		},
		{
			name:  "identifier and payload",
			input: "{math:1+1}",
			expected: Node{
				Kind: NodeDeclaration, Identifier: "math", Raw: "{math:1+1}",
				Payload: "1+1", HasPayload: true,
			},
		},
		{
			name:  "full form",
			input: "{if(x==y):a|b}",
			expected: Node{
				Kind: NodeDeclaration, Identifier: "if", Raw: "{if(x==y):a|b}",
				Parameter: "x==y", HasParameter: true,
				Payload: "a|b", HasPayload: true,
			},
		},
		{
			name:  "identifier whitespace trimmed",
			input: "{ user }",
			expected: Node{
				Kind: NodeDeclaration, Identifier: "user", Raw: "{ user }",
			},
		},
		{
			name:  "empty payload present",
			input: "{a:}",
			expected: Node{
				Kind: NodeDeclaration, Identifier: "a", Raw: "{a:}",
				Payload: "", HasPayload: true,
			},
		},
		{
			name:  "empty parameter present",
			input: "{a()}",
			expected: Node{
				Kind: NodeDeclaration, Identifier: "a", Raw: "{a()}",
				Parameter: "", HasParameter: true,
			},
		},
		{
			name:  "nested declaration in parameter stays raw",
			input: "{if({args}==hi):yes}",
			expected: Node{
				Kind: NodeDeclaration, Identifier: "if", Raw: "{if({args}==hi):yes}",
				Parameter: "{args}==hi", HasParameter: true,
				Payload: "yes", HasPayload: true,
			},
		},
		{
			name:  "nested declaration in payload stays raw",
			input: "{if(x):{inner:1}|no}",
			expected: Node{
				Kind: NodeDeclaration, Identifier: "if", Raw: "{if(x):{inner:1}|no}",
				Parameter: "x", HasParameter: true,
				Payload: "{inner:1}|no", HasPayload: true,
			},
		},
		{
			name:  "payload keeps later separators",
			input: "{strf:%H:%M}",
			expected: Node{
				Kind: NodeDeclaration, Identifier: "strf", Raw: "{strf:%H:%M}",
				Payload: "%H:%M", HasPayload: true,
			},
		},
		{
			name:  "nested parens in parameter",
			input: "{m((1+2)*3)}",
			expected: Node{
				Kind: NodeDeclaration, Identifier: "m", Raw: "{m((1+2)*3)}",
				Parameter: "(1+2)*3", HasParameter: true,
			},
		},
		{
			name:  "junk between parameter and separator dropped",
			input: "{a(p)junk:pay}",
			expected: Node{
				Kind: NodeDeclaration, Identifier: "a", Raw: "{a(p)junk:pay}",
				Parameter: "p", HasParameter: true,
				Payload: "pay", HasPayload: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := parse(t, tt.input)
			require.Len(t, nodes, 1)
			assert.Equal(t, tt.expected, nodes[0])
		})
	}
}

func TestParser_Parse_LiteralFallback(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty declaration", "{}"},
		{"whitespace identifier", "{   }"},
		{"nested brace before parameter", "{{inner}}"},
		{"escaped delimiter in identifier region", `{a\{b}`},
		{"unmatched parameter opener", "{a(b}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := parse(t, tt.input)
			require.Len(t, nodes, 1)
			assert.Equal(t, NodeText, nodes[0].Kind)
			assert.Equal(t, tt.input, nodes[0].Text)
			assert.Equal(t, tt.input, nodes[0].Raw)
		})
	}
}

func TestParser_Parse_MixedSequence(t *testing.T) {
	nodes := parse(t, "Hello {user}, you rolled {range:1-6}!")
	require.Len(t, nodes, 5)

	assert.Equal(t, NodeText, nodes[0].Kind)
	assert.Equal(t, "Hello ", nodes[0].Text)
	assert.Equal(t, NodeDeclaration, nodes[1].Kind)
	assert.Equal(t, "user", nodes[1].Identifier)
	assert.Equal(t, NodeText, nodes[2].Kind)
	assert.Equal(t, ", you rolled ", nodes[2].Text)
	assert.Equal(t, NodeDeclaration, nodes[3].Kind)
	assert.Equal(t, "range", nodes[3].Identifier)
	assert.Equal(t, "1-6", nodes[3].Payload)
	assert.Equal(t, NodeText, nodes[4].Kind)
	assert.Equal(t, "!", nodes[4].Text)
}

func TestParser_Parse_EscapedTextUnescaped(t *testing.T) {
	nodes := parse(t, `literal \{braces\} here`)
	require.Len(t, nodes, 1)
	assert.Equal(t, NodeText, nodes[0].Kind)
	assert.Equal(t, "literal {braces} here", nodes[0].Text)
	assert.Equal(t, `literal \{braces\} here`, nodes[0].Raw)
}

func TestParser_Parse_EscapeInsidePayloadKeptRaw(t *testing.T) {
	nodes := parse(t, `{a:x\}y}`)
	require.Len(t, nodes, 1)
	assert.Equal(t, NodeDeclaration, nodes[0].Kind)
	assert.Equal(t, `x\}y`, nodes[0].Payload)
}
