package tagscript_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	tagscript "github.com/japandotorg/TagScriptEngine"
	"github.com/japandotorg/TagScriptEngine/adapter"
)

// namedBlock claims a fixed alias list and expands to a fixed string.
type namedBlock struct {
	names []string
	out   string
}

func (b *namedBlock) Names() []string { return b.names }

func (b *namedBlock) Process(context.Context, *tagscript.Context) (string, error) {
	return b.out, nil
}

func TestNew_RegistrationValidation(t *testing.T) {
	tests := []struct {
		name     string
		blocks   []tagscript.Block
		adapters map[string]tagscript.Adapter
		errMsg   string
	}{
		{
			name:   "nil block",
			blocks: []tagscript.Block{nil},
			errMsg: tagscript.ErrMsgNilBlock,
		},
		{
			name:   "block without names",
			blocks: []tagscript.Block{&namedBlock{}},
			errMsg: tagscript.ErrMsgNoBlockNames,
		},
		{
			name:   "empty identifier after normalization",
			blocks: []tagscript.Block{&namedBlock{names: []string{"  "}}},
			errMsg: tagscript.ErrMsgEmptyIdentifier,
		},
		{
			name: "duplicate alias across two blocks",
			blocks: []tagscript.Block{
				&namedBlock{names: []string{"x"}},
				&namedBlock{names: []string{"X"}},
			},
			errMsg: tagscript.ErrMsgDuplicateBlock,
		},
		{
			name:     "nil adapter",
			adapters: map[string]tagscript.Adapter{"a": nil},
			errMsg:   tagscript.ErrMsgNilAdapter,
		},
		{
			name:     "empty adapter identifier",
			adapters: map[string]tagscript.Adapter{" ": adapter.NewString("v")},
			errMsg:   tagscript.ErrMsgEmptyIdentifier,
		},
		{
			name: "two adapter names normalize to the same identifier",
			adapters: map[string]tagscript.Adapter{
				"user": adapter.NewString("a"),
				"USER": adapter.NewString("b"),
			},
			errMsg: tagscript.ErrMsgDuplicateAdapter,
		},
		{
			name:   "identifier as both adapter and block",
			blocks: []tagscript.Block{&namedBlock{names: []string{"x"}}},
			adapters: map[string]tagscript.Adapter{
				"x": adapter.NewString("v"),
			},
			errMsg: tagscript.ErrMsgAdapterCollision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := tagscript.New(tt.blocks, tt.adapters)
			require.Error(t, err)
			assert.Nil(t, engine)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNew_SameBlockRegisteredTwiceIsFine(t *testing.T) {
	b := &namedBlock{names: []string{"x", "alias"}, out: "ok"}

	engine, err := tagscript.New([]tagscript.Block{b, b}, nil)

	require.NoError(t, err)
	resp := engine.Process(context.Background(), "{x}{alias}")
	assert.Equal(t, "okok", resp.Body)
}

// tableBlock is a value-typed block whose map field makes the interface
// value non-comparable.
type tableBlock struct {
	names   []string
	entries map[string]string
}

func (b tableBlock) Names() []string { return b.names }

func (b tableBlock) Process(_ context.Context, ectx *tagscript.Context) (string, error) {
	out, ok := b.entries[ectx.Verb().Identifier]
	if !ok {
		return "", tagscript.ErrDecline
	}
	return out, nil
}

func TestNew_NonComparableBlockValues(t *testing.T) {
	t.Run("repeated alias on one block registers without panicking", func(t *testing.T) {
		b := tableBlock{names: []string{"x", "X", "x"}, entries: map[string]string{"x": "ok"}}

		var engine *tagscript.Engine
		var err error
		assert.NotPanics(t, func() {
			engine, err = tagscript.New([]tagscript.Block{b}, nil)
		})

		require.NoError(t, err)
		resp := engine.Process(context.Background(), "{x}")
		assert.Equal(t, "ok", resp.Body)
	})

	t.Run("alias shared by two value blocks is a duplicate error", func(t *testing.T) {
		a := tableBlock{names: []string{"x"}, entries: map[string]string{"x": "a"}}
		b := tableBlock{names: []string{"x"}, entries: map[string]string{"x": "b"}}

		var err error
		assert.NotPanics(t, func() {
			_, err = tagscript.New([]tagscript.Block{a, b}, nil)
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), tagscript.ErrMsgDuplicateBlock)
	})
}

func TestNew_DelimiterValidation(t *testing.T) {
	tests := []struct {
		name        string
		open, close rune
		errMsg      string
	}{
		{"identical delimiters", '<', '<', tagscript.ErrMsgInvalidDelimiters},
		{"multi-byte delimiter", '«', '»', tagscript.ErrMsgInvalidDelimiters},
		{"separator reserved", ':', '>', tagscript.ErrMsgReservedDelimiter},
		{"escape reserved", '<', '\\', tagscript.ErrMsgReservedDelimiter},
		{"parameter delimiter reserved", '(', ')', tagscript.ErrMsgReservedDelimiter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tagscript.New(nil, nil, tagscript.WithDelimiters(tt.open, tt.close))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMustNew_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		tagscript.MustNew([]tagscript.Block{nil}, nil)
	})
}

func TestNew_OptionsApplied(t *testing.T) {
	limits := tagscript.Limits{MaxCharLimit: 42, MaxDepth: 2, MaxInvocations: 7}

	engine, err := tagscript.New(nil, nil,
		tagscript.WithLimits(limits),
		tagscript.WithLogger(zap.NewNop()))

	require.NoError(t, err)
	assert.Equal(t, limits, engine.Limits())
}

func TestDefaultLimits(t *testing.T) {
	limits := tagscript.DefaultLimits()

	assert.Equal(t, tagscript.DefaultMaxCharLimit, limits.MaxCharLimit)
	assert.Equal(t, tagscript.DefaultMaxDepth, limits.MaxDepth)
	assert.Equal(t, tagscript.DefaultMaxInvocations, limits.MaxInvocations)
}

func TestErrDecline_IsSentinel(t *testing.T) {
	err := tagscript.ErrDecline

	assert.True(t, errors.Is(err, tagscript.ErrDecline))
	assert.NotErrorIs(t, errors.New("other"), tagscript.ErrDecline)
}
