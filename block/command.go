package block

import (
	"context"
	"fmt"
	"strings"

	tagscript "github.com/japandotorg/TagScriptEngine"
)

// Action keys written by the command and override blocks.
const (
	ActionCommands  = "commands"
	ActionOverrides = "overrides"
)

// DefaultCommandLimit caps how many commands one call may queue.
const DefaultCommandLimit = 3

// commandLimitNotice is returned in place of a command past the cap.
const commandLimitNotice = "`COMMAND LIMIT REACHED (%d)`"

// Override parameter values recognized by OverrideBlock.
const (
	overrideAdmin       = "admin"
	overrideMod         = "mod"
	overridePermissions = "permissions"
)

// CommandBlock queues its payload as a command for the caller to run,
// under actions["commands"]. A call may queue at most Limit commands;
// past the cap the block expands to a notice instead.
//
// Usage: {command:<command>}
type CommandBlock struct {
	// Limit caps queued commands per call.
	Limit int
}

// NewCommandBlock creates a CommandBlock. A non-positive limit uses
// DefaultCommandLimit.
func NewCommandBlock(limit int) *CommandBlock {
	if limit <= 0 {
		limit = DefaultCommandLimit
	}
	return &CommandBlock{Limit: limit}
}

// Names returns the identifiers this block claims.
func (b *CommandBlock) Names() []string {
	return []string{"c", "com", "command"}
}

// Process appends the payload to the queued command list.
func (b *CommandBlock) Process(_ context.Context, ectx *tagscript.Context) (string, error) {
	payload, ok := ectx.Verb().Payload()
	if !ok {
		return "", tagscript.ErrDecline
	}
	command := strings.TrimSpace(payload)

	var commands []string
	if existing, ok := ectx.Response().GetAction(ActionCommands); ok {
		commands, _ = existing.([]string)
	}
	if len(commands) >= b.Limit {
		return fmt.Sprintf(commandLimitNotice, b.Limit), nil
	}

	ectx.Response().SetAction(ActionCommands, append(commands, command))
	return "", nil
}

// OverrideBlock records permission overrides for queued commands under
// actions["overrides"]. Without a parameter every class is overridden;
// with one of "admin", "mod", or "permissions" only that class is. Any
// other parameter leaves the declaration as literal text.
//
// Usage: {override([admin|mod|permissions])}
type OverrideBlock struct{}

// Names returns the identifiers this block claims.
func (b *OverrideBlock) Names() []string {
	return []string{"override"}
}

// Process merges the requested override into the override map.
func (b *OverrideBlock) Process(_ context.Context, ectx *tagscript.Context) (string, error) {
	parameter, ok := ectx.Verb().Parameter()
	if !ok || strings.TrimSpace(parameter) == "" {
		ectx.Response().SetAction(ActionOverrides, map[string]bool{
			overrideAdmin:       true,
			overrideMod:         true,
			overridePermissions: true,
		})
		return "", nil
	}

	class := strings.ToLower(strings.TrimSpace(parameter))
	switch class {
	case overrideAdmin, overrideMod, overridePermissions:
	default:
		return "", tagscript.ErrDecline
	}

	overrides := map[string]bool{
		overrideAdmin:       false,
		overrideMod:         false,
		overridePermissions: false,
	}
	if existing, ok := ectx.Response().GetAction(ActionOverrides); ok {
		if m, ok := existing.(map[string]bool); ok {
			overrides = m
		}
	}
	overrides[class] = true
	ectx.Response().SetAction(ActionOverrides, overrides)
	return "", nil
}
