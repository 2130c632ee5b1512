package block

import (
	"context"
	"strings"

	tagscript "github.com/japandotorg/TagScriptEngine"
)

// Action keys written by the gating blocks.
const (
	ActionRequires  = "requires"
	ActionBlacklist = "blacklist"
)

// Restriction is a gating record written by RequireBlock and
// BlacklistBlock: the items the caller must check the invoker against,
// and the response to show when the check fails.
type Restriction struct {
	Items    []string
	Response string
}

// RequireBlock restricts a template to invokers matching its
// comma-separated parameter items (roles, channels, whatever the
// caller checks against) by writing actions["requires"]. The first
// require declaration wins; later ones stay literal.
//
// Usage: {require(<item,item,...>):[response]}
type RequireBlock struct{}

// Names returns the identifiers this block claims.
func (b *RequireBlock) Names() []string {
	return []string{"require", "whitelist"}
}

// Process records the restriction unless one is already set.
func (b *RequireBlock) Process(_ context.Context, ectx *tagscript.Context) (string, error) {
	return recordRestriction(ectx, ActionRequires)
}

// BlacklistBlock is the inverse of RequireBlock: invokers matching its
// parameter items are barred, via actions["blacklist"]. First write
// wins.
//
// Usage: {blacklist(<item,item,...>):[response]}
type BlacklistBlock struct{}

// Names returns the identifiers this block claims.
func (b *BlacklistBlock) Names() []string {
	return []string{"blacklist"}
}

// Process records the restriction unless one is already set.
func (b *BlacklistBlock) Process(_ context.Context, ectx *tagscript.Context) (string, error) {
	return recordRestriction(ectx, ActionBlacklist)
}

func recordRestriction(ectx *tagscript.Context, action string) (string, error) {
	parameter, ok := ectx.Verb().Parameter()
	if !ok {
		return "", tagscript.ErrDecline
	}
	if ectx.Response().HasAction(action) {
		return "", tagscript.ErrDecline
	}

	parts := strings.Split(parameter, ",")
	items := make([]string, 0, len(parts))
	for _, item := range parts {
		items = append(items, strings.TrimSpace(item))
	}

	ectx.Response().SetAction(action, Restriction{
		Items:    items,
		Response: ectx.Verb().PayloadOr(""),
	})
	return "", nil
}
