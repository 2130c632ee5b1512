package block

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	tagscript "github.com/japandotorg/TagScriptEngine"
)

// newRand returns the random source for one expansion. A present
// parameter seeds it deterministically, so the same seed always picks
// the same entry; otherwise the source is freshly seeded.
func newRand(seed string, seeded bool) *rand.Rand {
	if !seeded {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	h := fnv.New64a()
	h.Write([]byte(seed))
	s := h.Sum64()
	return rand.New(rand.NewPCG(s, s))
}

// FiftyFiftyBlock expands to its payload or to nothing with equal
// probability.
//
// Usage: {5050:<text>}
type FiftyFiftyBlock struct{}

// Names returns the identifiers this block claims.
func (b *FiftyFiftyBlock) Names() []string {
	return []string{"5050", "50", "?"}
}

// Process flips a coin; only a winning payload is expanded.
func (b *FiftyFiftyBlock) Process(ctx context.Context, ectx *tagscript.Context) (string, error) {
	payload, ok := ectx.Verb().Payload()
	if !ok {
		return "", tagscript.ErrDecline
	}
	if rand.IntN(2) == 0 {
		return "", nil
	}
	return ectx.SubInterpret(ctx, payload).Body, nil
}

// RandomBlock picks one entry from its payload, split at top-level '~'
// when present and ',' otherwise. An optional parameter seeds the
// choice deterministically. Only the chosen entry is expanded.
//
// Usage: {random([seed]):<entry>,<entry>,...}
type RandomBlock struct{}

// Names returns the identifiers this block claims.
func (b *RandomBlock) Names() []string {
	return []string{"random", "#", "rand"}
}

// Process picks and expands one payload entry.
func (b *RandomBlock) Process(ctx context.Context, ectx *tagscript.Context) (string, error) {
	payload, ok := ectx.Verb().Payload()
	if !ok {
		return "", tagscript.ErrDecline
	}

	sep := byte(',')
	if len(splitTopLevel(payload, '~')) > 1 {
		sep = '~'
	}
	entries := splitTopLevel(payload, sep)

	seed, seeded := ectx.Verb().Parameter()
	chosen := entries[newRand(seed, seeded).IntN(len(entries))]
	return ectx.SubInterpret(ctx, chosen).Body, nil
}

// RangeBlock expands to a random integer drawn from the inclusive
// "lower-upper" range in its payload. An optional parameter seeds the
// draw.
//
// Usage: {range([seed]):<lower>-<upper>}
type RangeBlock struct{}

// Names returns the identifiers this block claims.
func (b *RangeBlock) Names() []string {
	return []string{"range"}
}

// Process draws an integer from the payload range.
func (b *RangeBlock) Process(ctx context.Context, ectx *tagscript.Context) (string, error) {
	lower, upper, err := parseRange(ectx.Verb())
	if err != nil {
		return "", tagscript.ErrDecline
	}

	lo, hi := int(lower), int(upper)
	if hi < lo {
		lo, hi = hi, lo
	}
	seed, seeded := ectx.Verb().Parameter()
	return strconv.Itoa(newRand(seed, seeded).IntN(hi-lo+1) + lo), nil
}

// RangeFBlock is RangeBlock with tenth-step resolution: it draws from
// the range in increments of 0.1.
//
// Usage: {rangef([seed]):<lower>-<upper>}
type RangeFBlock struct{}

// Names returns the identifiers this block claims.
func (b *RangeFBlock) Names() []string {
	return []string{"rangef"}
}

// Process draws a tenth-step float from the payload range.
func (b *RangeFBlock) Process(ctx context.Context, ectx *tagscript.Context) (string, error) {
	lower, upper, err := parseRange(ectx.Verb())
	if err != nil {
		return "", tagscript.ErrDecline
	}

	lo, hi := int(lower*10), int(upper*10)
	if hi < lo {
		lo, hi = hi, lo
	}
	seed, seeded := ectx.Verb().Parameter()
	drawn := float64(newRand(seed, seeded).IntN(hi-lo+1)+lo) / 10
	return strconv.FormatFloat(drawn, 'f', -1, 64), nil
}

// maxRangeBound caps the magnitude of range bounds. Bounds beyond it
// would overflow the int conversions in the range blocks, so such
// payloads decline instead of drawing.
const maxRangeBound = 1e12

// parseRange extracts the lower and upper bounds from a "lower-upper"
// payload. Both sides must parse as floats within maxRangeBound.
func parseRange(verb *tagscript.Verb) (lower, upper float64, err error) {
	payload, ok := verb.Payload()
	if !ok {
		return 0, 0, tagscript.ErrDecline
	}
	parts := strings.SplitN(payload, "-", 2)
	if len(parts) != 2 {
		return 0, 0, tagscript.ErrDecline
	}
	lower, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	upper, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	if !(math.Abs(lower) <= maxRangeBound) || !(math.Abs(upper) <= maxRangeBound) {
		return 0, 0, tagscript.ErrDecline
	}
	return lower, upper, nil
}
