package block

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiftyFiftyBlock(t *testing.T) {
	for i := 0; i < 20; i++ {
		resp := render(t, "{5050:heads}", nil)
		assert.Contains(t, []string{"", "heads"}, resp.Body)
	}

	resp := render(t, "{?:x}", nil)
	assert.Contains(t, []string{"", "x"}, resp.Body)

	resp = render(t, "{5050}", nil)
	assert.Equal(t, "{5050}", resp.Body)
}

func TestRandomBlock(t *testing.T) {
	t.Run("comma separated entries", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			resp := render(t, "{random:a,b,c}", nil)
			assert.Contains(t, []string{"a", "b", "c"}, resp.Body)
		}
	})

	t.Run("tilde wins over comma", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			resp := render(t, "{random:one, two~three, four}", nil)
			assert.Contains(t, []string{"one, two", "three, four"}, resp.Body)
		}
	})

	t.Run("seeded choice is deterministic", func(t *testing.T) {
		first := render(t, "{random(seed):a,b,c,d,e,f}", nil).Body
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, render(t, "{random(seed):a,b,c,d,e,f}", nil).Body)
		}
	})

	t.Run("chosen entry is expanded", func(t *testing.T) {
		resp := render(t, "{random:{math:1+1}}", nil)
		assert.Equal(t, "2", resp.Body)
	})

	t.Run("no payload declines", func(t *testing.T) {
		resp := render(t, "{random}", nil)
		assert.Equal(t, "{random}", resp.Body)
	})
}

func TestRangeBlock(t *testing.T) {
	t.Run("stays in bounds", func(t *testing.T) {
		for i := 0; i < 30; i++ {
			resp := render(t, "{range:1-6}", nil)
			n, err := strconv.Atoi(resp.Body)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, 6)
		}
	})

	t.Run("single value range", func(t *testing.T) {
		resp := render(t, "{range:3-3}", nil)
		assert.Equal(t, "3", resp.Body)
	})

	t.Run("reversed bounds are swapped", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			resp := render(t, "{range:6-1}", nil)
			n, err := strconv.Atoi(resp.Body)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, 6)
		}
	})

	t.Run("seeded draw is deterministic", func(t *testing.T) {
		first := render(t, "{range(dice):1-100}", nil).Body
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, render(t, "{range(dice):1-100}", nil).Body)
		}
	})

	t.Run("malformed range declines", func(t *testing.T) {
		resp := render(t, "{range:notarange}", nil)
		assert.Equal(t, "{range:notarange}", resp.Body)

		resp = render(t, "{range:1-abc}", nil)
		assert.Equal(t, "{range:1-abc}", resp.Body)
	})

	t.Run("overflowing bounds decline", func(t *testing.T) {
		for _, input := range []string{
			"{range:0-1e300}",
			"{range:0-9999999999999999}",
			"{range:0-NaN}",
		} {
			resp := render(t, input, nil)
			assert.Equal(t, input, resp.Body)
		}
	})
}

func TestRangeFBlock(t *testing.T) {
	t.Run("tenth step resolution in bounds", func(t *testing.T) {
		for i := 0; i < 30; i++ {
			resp := render(t, "{rangef:0.5-2.5}", nil)
			f, err := strconv.ParseFloat(resp.Body, 64)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, f, 0.5)
			assert.LessOrEqual(t, f, 2.5)

			// At most one decimal digit.
			if dot := strings.IndexByte(resp.Body, '.'); dot >= 0 {
				assert.Len(t, resp.Body[dot+1:], 1)
			}
		}
	})

	t.Run("seeded draw is deterministic", func(t *testing.T) {
		first := render(t, "{rangef(pi):0-10}", nil).Body
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, render(t, "{rangef(pi):0-10}", nil).Body)
		}
	})

	t.Run("overflowing bounds decline", func(t *testing.T) {
		resp := render(t, "{rangef:0-1e300}", nil)
		assert.Equal(t, "{rangef:0-1e300}", resp.Body)
	})
}
