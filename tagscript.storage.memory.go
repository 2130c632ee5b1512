package tagscript

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of TagStorage. It is
// primarily intended for testing and development; all data is lost when
// the process terminates.
type MemoryStorage struct {
	mu     sync.RWMutex
	tags   map[string]*StoredTag // composite (guild, name) key
	closed bool
}

// NewMemoryStorage creates a new in-memory tag storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		tags: make(map[string]*StoredTag),
	}
}

// tagKey builds the composite lookup key for a guild-scoped tag name.
func tagKey(guildID, name string) string {
	return guildID + "\x00" + name
}

// Get retrieves a tag by guild and name.
func (s *MemoryStorage) Get(ctx context.Context, guildID, name string) (*StoredTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	tag, ok := s.tags[tagKey(guildID, name)]
	if !ok {
		return nil, NewTagNotFoundError(guildID, name)
	}
	return copyStoredTag(tag), nil
}

// Save upserts a tag keyed by (guild, name).
func (s *MemoryStorage) Save(ctx context.Context, tag *StoredTag) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tag == nil || tag.Name == "" {
		return NewStorageError(ErrMsgTagNameEmpty, nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	now := time.Now()
	key := tagKey(tag.GuildID, tag.Name)

	stored := &StoredTag{
		Name:      tag.Name,
		GuildID:   tag.GuildID,
		Source:    tag.Source,
		Author:    tag.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, ok := s.tags[key]; ok {
		stored.ID = existing.ID
		stored.Uses = existing.Uses
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.ID = generateTagID()
	}

	s.tags[key] = stored

	tag.ID = stored.ID
	tag.Uses = stored.Uses
	tag.CreatedAt = stored.CreatedAt
	tag.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes a tag by guild and name.
func (s *MemoryStorage) Delete(ctx context.Context, guildID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	key := tagKey(guildID, name)
	if _, ok := s.tags[key]; !ok {
		return NewTagNotFoundError(guildID, name)
	}
	delete(s.tags, key)
	return nil
}

// List returns tags matching the query, ordered by name.
func (s *MemoryStorage) List(ctx context.Context, query TagQuery) ([]*StoredTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	var matched []*StoredTag
	for _, tag := range s.tags {
		if query.GuildID != "" && tag.GuildID != query.GuildID {
			continue
		}
		if query.NamePrefix != "" && !strings.HasPrefix(tag.Name, query.NamePrefix) {
			continue
		}
		if query.Author != "" && tag.Author != query.Author {
			continue
		}
		matched = append(matched, copyStoredTag(tag))
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name == matched[j].Name {
			return matched[i].GuildID < matched[j].GuildID
		}
		return matched[i].Name < matched[j].Name
	})

	if query.Offset > 0 {
		if query.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[query.Offset:]
	}
	if query.Limit > 0 && len(matched) > query.Limit {
		matched = matched[:query.Limit]
	}
	return matched, nil
}

// IncrementUses bumps a tag's use counter and returns the new value.
func (s *MemoryStorage) IncrementUses(ctx context.Context, guildID, name string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, NewStorageClosedError()
	}

	tag, ok := s.tags[tagKey(guildID, name)]
	if !ok {
		return 0, NewTagNotFoundError(guildID, name)
	}
	tag.Uses++
	tag.UpdatedAt = time.Now()
	return tag.Uses, nil
}

// Close marks the storage closed. Further operations fail.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
