package usecase

import (
	"sync/atomic"

	"github.com/ferdian3456/communityclient/internal/cache"
	"github.com/ferdian3456/communityclient/internal/model"
)

// PositionalList is an ordered list of entity ids a screen renders.
// Paginator implements it.
type PositionalList interface {
	Remove(id int64) (int, bool)
	InsertAt(index int, id int64)
}

var placeholderSeq atomic.Int64

// nextPlaceholderId returns a negative id that no server entity uses.
func nextPlaceholderId() int64 {
	return -placeholderSeq.Add(1)
}

// detach removes id from the cache and from every list. undo puts the
// entity back into each list at the index it had.
func detach[T model.Entity](entities *cache.EntityCache[T], id int64, lists []PositionalList) (undo func(), ok bool) {
	before, ok := entities.Remove(id)
	if !ok {
		return nil, false
	}

	type position struct {
		list  PositionalList
		index int
	}

	positions := make([]position, 0, len(lists))
	for _, list := range lists {
		if index, found := list.Remove(id); found {
			positions = append(positions, position{list: list, index: index})
		}
	}

	return func() {
		entities.Upsert(before)
		for _, position := range positions {
			position.list.InsertAt(position.index, id)
		}
	}, true
}
