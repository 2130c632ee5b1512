package block

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	tagscript "github.com/japandotorg/TagScriptEngine"
)

// ActionEmbed is the action key holding the assembled embed map.
const ActionEmbed = "embed"

// MaxEmbedLength caps the combined text length of an embed.
const MaxEmbedLength = 6000

const (
	embedLengthNotice = "`MAX EMBED LENGTH REACHED (%d/%d)`"
	embedErrorFormat  = "Embed Parse Error: %v"
)

// Embed attribute names accepted in manual form.
const (
	embedAttrTitle       = "title"
	embedAttrDescription = "description"
	embedAttrColor       = "color"
	embedAttrColour      = "colour"
	embedAttrURL         = "url"
	embedAttrThumbnail   = "thumbnail"
	embedAttrImage       = "image"
	embedAttrFooter      = "footer"
	embedAttrField       = "field"
)

// EmbedBlock assembles a rich-embed map under actions["embed"]. Two
// forms are accepted: a JSON object as the whole parameter, or an
// attribute name as the parameter with the value in the payload. Both
// forms merge into the same embed across declarations in one call.
//
// Usage: {embed(<json>)} or {embed(<attribute>):<value>}
type EmbedBlock struct{}

// Names returns the identifiers this block claims.
func (b *EmbedBlock) Names() []string {
	return []string{"embed"}
}

// Process merges the declaration into the call's embed.
func (b *EmbedBlock) Process(_ context.Context, ectx *tagscript.Context) (string, error) {
	parameter, ok := ectx.Verb().Parameter()
	if !ok {
		return storeEmbed(ectx, currentEmbed(ectx))
	}

	trimmed := strings.TrimSpace(parameter)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		embed, err := embedFromJSON(trimmed)
		if err != nil {
			return fmt.Sprintf(embedErrorFormat, err), nil
		}
		return storeEmbed(ectx, embed)
	}

	attribute := strings.ToLower(trimmed)
	payload, hasPayload := ectx.Verb().Payload()
	if !hasPayload || !isEmbedAttribute(attribute) {
		return "", tagscript.ErrDecline
	}

	embed := currentEmbed(ectx)
	if err := applyEmbedAttribute(embed, attribute, payload); err != nil {
		return fmt.Sprintf(embedErrorFormat, err), nil
	}
	return storeEmbed(ectx, embed)
}

func isEmbedAttribute(name string) bool {
	switch name {
	case embedAttrTitle, embedAttrDescription, embedAttrColor, embedAttrColour,
		embedAttrURL, embedAttrThumbnail, embedAttrImage, embedAttrFooter,
		embedAttrField:
		return true
	}
	return false
}

// currentEmbed returns the call's embed so far, or a fresh one.
func currentEmbed(ectx *tagscript.Context) map[string]any {
	if existing, ok := ectx.Response().GetAction(ActionEmbed); ok {
		if m, ok := existing.(map[string]any); ok {
			return m
		}
	}
	return make(map[string]any)
}

// storeEmbed writes the embed back, enforcing the length cap.
func storeEmbed(ectx *tagscript.Context, embed map[string]any) (string, error) {
	if length := embedLength(embed); length > MaxEmbedLength {
		return fmt.Sprintf(embedLengthNotice, length, MaxEmbedLength), nil
	}
	ectx.Response().SetAction(ActionEmbed, embed)
	return "", nil
}

// embedFromJSON parses the JSON parameter form. A top-level "embed"
// wrapper object is unwrapped, "colour" is folded into "color", and
// string colors are resolved to integers.
func embedFromJSON(text string) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, err
	}
	if inner, ok := data[ActionEmbed].(map[string]any); ok {
		data = inner
	}
	if ts, ok := data["timestamp"].(string); ok {
		data["timestamp"] = strings.TrimSuffix(ts, "Z")
	}

	color, hasColor := data[embedAttrColor]
	if !hasColor {
		color, hasColor = data[embedAttrColour]
	}
	delete(data, embedAttrColour)
	if hasColor {
		if s, ok := color.(string); ok {
			value, err := parseColor(s)
			if err != nil {
				return nil, err
			}
			data[embedAttrColor] = value
		} else {
			data[embedAttrColor] = color
		}
	}
	return data, nil
}

// applyEmbedAttribute merges one manual-form attribute into the embed.
func applyEmbedAttribute(embed map[string]any, attribute, value string) error {
	switch attribute {
	case embedAttrTitle, embedAttrDescription, embedAttrURL:
		embed[attribute] = value
	case embedAttrColor, embedAttrColour:
		parsed, err := parseColor(value)
		if err != nil {
			return err
		}
		embed[embedAttrColor] = parsed
	case embedAttrThumbnail, embedAttrImage:
		embed[attribute] = map[string]any{"url": value}
	case embedAttrFooter:
		parts := splitTopLevel(value, '|')
		footer := map[string]any{"text": parts[0]}
		if len(parts) >= 2 {
			footer["icon_url"] = parts[1]
		}
		embed[embedAttrFooter] = footer
	case embedAttrField:
		return addEmbedField(embed, value)
	}
	return nil
}

// addEmbedField appends a field from a "name|value[|inline]" payload.
func addEmbedField(embed map[string]any, payload string) error {
	parts := splitTopLevel(payload, '|')
	if len(parts) < 2 || len(parts) > 3 {
		return fmt.Errorf("field payload must split into 2 or 3 parts, got %d", len(parts))
	}

	inline := false
	if len(parts) == 3 {
		value, ok := implicitBool(parts[2])
		if !ok {
			return fmt.Errorf("field inline argument %q is not a boolean", parts[2])
		}
		inline = value
	}

	fields, _ := embed["fields"].([]any)
	embed["fields"] = append(fields, map[string]any{
		"name":   parts[0],
		"value":  parts[1],
		"inline": inline,
	})
	return nil
}

// parseColor resolves "#rrggbb", "0xrrggbb", or bare hex to an integer.
func parseColor(s string) (int, error) {
	arg := strings.ToLower(strings.TrimSpace(s))
	arg = strings.TrimPrefix(arg, "0x")
	arg = strings.TrimPrefix(arg, "#")

	value, err := strconv.ParseInt(arg, 16, 64)
	if err != nil || value < 0 || value > 0xFFFFFF {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	return int(value), nil
}

// embedLength sums the text lengths the embed cap counts: title,
// description, footer text, and field names and values.
func embedLength(embed map[string]any) int {
	length := textLen(embed[embedAttrTitle]) + textLen(embed[embedAttrDescription])
	if footer, ok := embed[embedAttrFooter].(map[string]any); ok {
		length += textLen(footer["text"])
	}
	if fields, ok := embed["fields"].([]any); ok {
		for _, f := range fields {
			if field, ok := f.(map[string]any); ok {
				length += textLen(field["name"]) + textLen(field["value"])
			}
		}
	}
	return length
}

func textLen(v any) int {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s)
	}
	return 0
}
