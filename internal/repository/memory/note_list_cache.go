package memory

import (
	"time"

	"notelite-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// NoteListCache holds each user's note list between mutations. The list
// is read-mostly: every successful create/update/delete invalidates the
// owner's entry so the next list reflects store truth.
type NoteListCache struct {
	cache *cache.Cache
}

func NewNoteListCache() *NoteListCache {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &NoteListCache{
		cache: c,
	}
}

func (r *NoteListCache) Get(userId uuid.UUID) ([]*entity.Note, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.([]*entity.Note), true
	}
	return nil, false
}

func (r *NoteListCache) Set(userId uuid.UUID, notes []*entity.Note) {
	r.cache.Set(userId.String(), notes, cache.DefaultExpiration)
}

func (r *NoteListCache) Invalidate(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
