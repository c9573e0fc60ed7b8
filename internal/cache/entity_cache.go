package cache

import (
	"errors"
	"sync"

	"github.com/ferdian3456/communityclient/internal/model"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("entity not found in cache")

// EntityCache is the session-scoped store of one entity type, keyed by id.
// It has no TTL or eviction; entries live until removed or Clear.
type EntityCache[T model.Entity] struct {
	Log  *zap.Logger
	Kind string

	mu    sync.RWMutex
	items map[int64]T
}

func NewEntityCache[T model.Entity](kind string, zap *zap.Logger) *EntityCache[T] {
	return &EntityCache[T]{
		Log:   zap,
		Kind:  kind,
		items: make(map[int64]T),
	}
}

func (cache *EntityCache[T]) Get(id int64) (T, bool) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	item, ok := cache.items[id]
	return item, ok
}

func (cache *EntityCache[T]) MustGet(id int64) (T, error) {
	item, ok := cache.Get(id)
	if !ok {
		return item, ErrNotFound
	}

	return item, nil
}

// Upsert replaces every attribute of the entity with the same id.
func (cache *EntityCache[T]) Upsert(item T) {
	cache.mu.Lock()
	cache.items[item.EntityID()] = item
	cache.mu.Unlock()
}

func (cache *EntityCache[T]) UpsertMany(items []T) {
	cache.mu.Lock()
	for _, item := range items {
		cache.items[item.EntityID()] = item
	}
	cache.mu.Unlock()
}

// Patch applies fn to the cached entity in place and returns the copy from
// before fn ran. ok is false when id is not cached; fn is not called then.
func (cache *EntityCache[T]) Patch(id int64, fn func(item *T)) (before T, ok bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	item, ok := cache.items[id]
	if !ok {
		return before, false
	}

	before = item
	fn(&item)

	// id is the key; a patch that changes it is a caller bug
	if item.EntityID() != id {
		cache.Log.Warn("patch changed entity id, ignoring",
			zap.String("kind", cache.Kind),
			zap.Int64("id", id),
			zap.Int64("patched_id", item.EntityID()),
		)
		return before, true
	}

	cache.items[id] = item
	return before, true
}

// Remove hard-deletes the entity and returns what was stored.
func (cache *EntityCache[T]) Remove(id int64) (T, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	item, ok := cache.items[id]
	if ok {
		delete(cache.items, id)
	}

	return item, ok
}

func (cache *EntityCache[T]) Clear() {
	cache.mu.Lock()
	cache.items = make(map[int64]T)
	cache.mu.Unlock()
}

func (cache *EntityCache[T]) Len() int {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	return len(cache.items)
}
