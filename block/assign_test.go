package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignmentBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		seeds map[string]string
		want  string
	}{
		{
			name:  "basic assignment and recall",
			input: "{=(name):Lior}Hello {name}!",
			want:  "Hello Lior!",
		},
		{
			name:  "assign alias",
			input: "{assign(x):42}{x}",
			want:  "42",
		},
		{
			name:  "let and var aliases",
			input: "{let(a):1}{var(b):2}{a}{b}",
			want:  "12",
		},
		{
			name:  "value is expanded at assignment time",
			input: "{=(total):{math:6*7}}answer: {total}",
			want:  "answer: 42",
		},
		{
			name:  "variable shadows engine adapter",
			input: "{=(user):Override}{user}",
			seeds: map[string]string{"user": "Original"},
			want:  "Override",
		},
		{
			name:  "reassignment takes the latest value",
			input: "{=(x):first}{=(x):second}{x}",
			want:  "second",
		},
		{
			name:  "name is whitespace trimmed",
			input: "{=( padded ):v}{padded}",
			want:  "v",
		},
		{
			name:  "empty payload binds empty string",
			input: "{=(x):}[{x}]",
			want:  "[]",
		},
		{
			name:  "missing parameter declines",
			input: "{=:value}",
			want:  "{=:value}",
		},
		{
			name:  "blank parameter declines",
			input: "{=( ):value}",
			want:  "{=( ):value}",
		},
		{
			name:  "variable feeds a later condition",
			input: "{=(n):5}{if({n}>3):big|small}",
			want:  "big",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := render(t, tt.input, tt.seeds)
			assert.Equal(t, tt.want, resp.Body)
		})
	}
}
