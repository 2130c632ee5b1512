package tagscript

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"go.uber.org/zap"
)

// TagID is a unique identifier for a stored tag.
// Uses a prefixed random format (e.g., "tag_6ByTSYmGzT2c").
type TagID string

// StoredTag is a named template persisted in a storage backend. Tags
// are scoped by guild: the same name may exist independently in
// different guilds, and the empty guild holds global tags.
type StoredTag struct {
	// ID is the unique identifier for this tag.
	ID TagID `json:"id"`

	// Name is the tag name used for lookups, unique per guild.
	Name string `json:"name"`

	// GuildID scopes the tag. Empty means global.
	GuildID string `json:"guild_id,omitempty"`

	// Source is the raw template text.
	Source string `json:"source"`

	// Author identifies who created the tag (optional).
	Author string `json:"author,omitempty"`

	// Uses counts how many times the tag has been processed.
	Uses int `json:"uses"`

	// CreatedAt is when the tag was first saved.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the tag was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// TagQuery defines filters for listing tags.
type TagQuery struct {
	// GuildID filters by guild; empty matches all guilds.
	GuildID string

	// NamePrefix filters to names starting with this prefix.
	NamePrefix string

	// Author filters by creator.
	Author string

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip (for pagination).
	Offset int
}

// TagStorage is the interface for pluggable tag storage backends.
// Implementations must be safe for concurrent use.
type TagStorage interface {
	// Get retrieves a tag by guild and name.
	// The error matches ErrTagNotFound when the tag doesn't exist.
	Get(ctx context.Context, guildID, name string) (*StoredTag, error)

	// Save upserts a tag keyed by (guild, name). The tag's ID and
	// timestamps are set by the storage implementation; Uses is
	// preserved across updates.
	Save(ctx context.Context, tag *StoredTag) error

	// Delete removes a tag by guild and name.
	// The error matches ErrTagNotFound when the tag doesn't exist.
	Delete(ctx context.Context, guildID, name string) error

	// List returns tags matching the query, ordered by name.
	List(ctx context.Context, query TagQuery) ([]*StoredTag, error)

	// IncrementUses bumps a tag's use counter and returns the new
	// value.
	IncrementUses(ctx context.Context, guildID, name string) (int, error)

	// Close releases backend resources. Operations after Close fail.
	Close() error
}

// ProcessStored fetches a tag from storage, bumps its use counter, and
// interprets its source.
func (e *Engine) ProcessStored(ctx context.Context, storage TagStorage, guildID, name string, opts ...ProcessOption) (*Response, error) {
	if storage == nil {
		return nil, NewStorageError(ErrMsgNilStorage, nil)
	}
	tag, err := storage.Get(ctx, guildID, name)
	if err != nil {
		return nil, err
	}
	uses, err := storage.IncrementUses(ctx, guildID, name)
	if err != nil {
		return nil, err
	}
	e.logger.Debug(LogMsgStoredTagFetched,
		zap.String(LogFieldName, name),
		zap.String(LogFieldGuild, guildID),
		zap.Int(LogFieldUses, uses))
	return e.Process(ctx, tag.Source, opts...), nil
}

// Tag ID generation constants
const (
	tagIDPrefix = "tag_"
	tagIDBytes  = 9
)

// generateTagID creates a random prefixed tag ID.
func generateTagID() TagID {
	buf := make([]byte, tagIDBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to
		// a time-derived suffix if it somehow does.
		return TagID(tagIDPrefix + time.Now().Format("20060102150405.000000000"))
	}
	return TagID(tagIDPrefix + base64.RawURLEncoding.EncodeToString(buf))
}

// copyStoredTag returns a defensive copy so callers cannot mutate
// storage internals.
func copyStoredTag(tag *StoredTag) *StoredTag {
	if tag == nil {
		return nil
	}
	cp := *tag
	return &cp
}
