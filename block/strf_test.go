package block

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	tagscript "github.com/japandotorg/TagScriptEngine"
)

// renderAt interprets input with the clock pinned to instant.
func renderAt(t *testing.T, input string, instant time.Time) *tagscript.Response {
	t.Helper()
	engine := tagscript.MustNew([]tagscript.Block{
		&StrfBlock{Now: func() time.Time { return instant }},
	}, nil)
	return engine.Process(context.Background(), input)
}

func TestStrfBlock(t *testing.T) {
	// Wednesday, 15 March 2023, 14:07:09 UTC.
	fixed := time.Date(2023, time.March, 15, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "date codes",
			input: "{strf:%Y-%m-%d}",
			want:  "2023-03-15",
		},
		{
			name:  "time codes",
			input: "{strf:%H:%M:%S}",
			want:  "14:07:09",
		},
		{
			name:  "weekday and month names",
			input: "{strf:%A, %d %B %Y}",
			want:  "Wednesday, 15 March 2023",
		},
		{
			name:  "abbreviated names",
			input: "{strf:%a %b}",
			want:  "Wed Mar",
		},
		{
			name:  "twelve hour clock",
			input: "{strf:%I %p}",
			want:  "02 PM",
		},
		{
			name:  "two digit year",
			input: "{strf:%y}",
			want:  "23",
		},
		{
			name:  "literal percent",
			input: "{strf:100%%}",
			want:  "100%",
		},
		{
			name:  "unknown code copied verbatim",
			input: "{strf:%Q}",
			want:  "%Q",
		},
		{
			name:  "plain text passes through",
			input: "{strf:today is %A}",
			want:  "today is Wednesday",
		},
		{
			name:  "trailing percent kept",
			input: "{strf:50%}",
			want:  "50%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := renderAt(t, tt.input, fixed)
			assert.Equal(t, tt.want, resp.Body)
		})
	}
}

func TestStrfBlock_ExplicitInstant(t *testing.T) {
	fixed := time.Date(2023, time.March, 15, 14, 7, 9, 0, time.UTC)

	t.Run("epoch seconds parameter", func(t *testing.T) {
		resp := renderAt(t, "{strf(1678889229):%Y-%m-%d %H:%M}", fixed)
		assert.Equal(t, "2023-03-15 14:07", resp.Body)
	})

	t.Run("rfc3339 parameter", func(t *testing.T) {
		resp := renderAt(t, "{strf(2001-09-09T01:46:40Z):%Y %H}", fixed)
		assert.Equal(t, "2001 01", resp.Body)
	})

	t.Run("unparseable instant declines", func(t *testing.T) {
		resp := renderAt(t, "{strf(yesterday):%Y}", fixed)
		assert.Equal(t, "{strf(yesterday):%Y}", resp.Body)
	})
}

func TestStrfBlock_Unix(t *testing.T) {
	fixed := time.Unix(1678889229, 0).UTC()

	t.Run("current time epoch", func(t *testing.T) {
		resp := renderAt(t, "{unix}", fixed)
		assert.Equal(t, "1678889229", resp.Body)
	})

	t.Run("explicit instant epoch", func(t *testing.T) {
		resp := renderAt(t, "{unix(2001-09-09T01:46:40Z)}", fixed)
		assert.Equal(t, "1000000000", resp.Body)
	})
}
