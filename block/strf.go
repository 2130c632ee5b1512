package block

import (
	"context"
	"strconv"
	"strings"
	"time"

	tagscript "github.com/japandotorg/TagScriptEngine"
)

// strftime '%' codes mapped onto Go reference-time layouts.
var strfLayouts = map[byte]string{
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'd': "02",
	'H': "15",
	'I': "03",
	'j': "002",
	'm': "01",
	'M': "04",
	'p': "PM",
	'S': "05",
	'y': "06",
	'Y': "2006",
	'z': "-0700",
	'Z': "MST",
}

// StrfBlock formats an instant with strftime-style '%' codes in its
// payload. The optional parameter selects the instant: unix epoch
// seconds or an RFC 3339 timestamp; without it the block formats the
// current time in UTC. The "unix" alias returns epoch seconds instead
// of a formatted string.
//
// Usage: {strf([instant]):<format>} or {unix}
type StrfBlock struct {
	// Now supplies the current time; defaults to time.Now. Tests
	// inject a fixed clock here.
	Now func() time.Time
}

// Names returns the identifiers this block claims.
func (b *StrfBlock) Names() []string {
	return []string{"strf", "unix"}
}

// Process resolves the instant and renders it.
func (b *StrfBlock) Process(_ context.Context, ectx *tagscript.Context) (string, error) {
	instant, err := b.instant(ectx.Verb())
	if err != nil {
		return "", tagscript.ErrDecline
	}

	if strings.EqualFold(strings.TrimSpace(ectx.Verb().Identifier), "unix") {
		return strconv.FormatInt(instant.Unix(), 10), nil
	}

	payload, ok := ectx.Verb().Payload()
	if !ok {
		return "", tagscript.ErrDecline
	}
	return strftime(payload, instant), nil
}

// instant resolves the declaration's parameter to a point in time.
func (b *StrfBlock) instant(verb *tagscript.Verb) (time.Time, error) {
	parameter, ok := verb.Parameter()
	if !ok {
		now := time.Now
		if b.Now != nil {
			now = b.Now
		}
		return now().UTC(), nil
	}

	parameter = strings.TrimSpace(parameter)
	if epoch, err := strconv.ParseInt(parameter, 10, 64); err == nil {
		return time.Unix(epoch, 0).UTC(), nil
	}
	return time.Parse(time.RFC3339, parameter)
}

// strftime renders t according to format, expanding the supported '%'
// codes and copying everything else through verbatim.
func strftime(format string, t time.Time) string {
	var out strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			out.WriteByte(format[i])
			continue
		}
		i++
		code := format[i]
		if code == '%' {
			out.WriteByte('%')
			continue
		}
		layout, ok := strfLayouts[code]
		if !ok {
			out.WriteByte('%')
			out.WriteByte(code)
			continue
		}
		out.WriteString(t.Format(layout))
	}
	return out.String()
}
