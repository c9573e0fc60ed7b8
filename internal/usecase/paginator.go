package usecase

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/ferdian3456/communityclient/internal/cache"
	"github.com/ferdian3456/communityclient/internal/constant"
	"github.com/ferdian3456/communityclient/internal/model"
	"github.com/ferdian3456/communityclient/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// PageFetcher fetches one 1-based page of a query.
type PageFetcher[T model.Entity] func(ctx context.Context, pageNumber int, pageSize int) (model.PageResult[T], error)

// ListFetcher fetches a query that has no paging.
type ListFetcher[T model.Entity] func(ctx context.Context) ([]T, error)

type PaginatorOption[T model.Entity] func(paginator *Paginator[T])

// WithMerge combines a fetched entity with the cached one before upsert.
func WithMerge[T model.Entity](merge func(cached T, fetched T) T) PaginatorOption[T] {
	return func(paginator *Paginator[T]) {
		paginator.merge = merge
	}
}

// WithTransform rewrites every fetched entity after merging.
func WithTransform[T model.Entity](transform func(item T) T) PaginatorOption[T] {
	return func(paginator *Paginator[T]) {
		paginator.transform = transform
	}
}

func WithPageSize[T model.Entity](pageSize int) PaginatorOption[T] {
	return func(paginator *Paginator[T]) {
		if pageSize > 0 {
			paginator.pageSize = pageSize
		}
	}
}

// Paginator drives one paged query. Entities go to the cache; the paginator
// keeps only their ids, in server order and without duplicates.
type Paginator[T model.Entity] struct {
	Log   *zap.Logger
	Query string
	Cache *cache.EntityCache[T]

	fetch     PageFetcher[T]
	pageSize  int
	single    bool
	merge     func(cached T, fetched T) T
	transform func(item T) T

	mu           sync.Mutex
	ids          []int64
	pageCursor   int
	totalCount   int
	loaded       bool
	lastNonEmpty bool
	loading      bool
	generation   uint64
	closed       bool
	err          error
}

func NewPaginator[T model.Entity](query string, entities *cache.EntityCache[T], fetch PageFetcher[T], zap *zap.Logger, options ...PaginatorOption[T]) *Paginator[T] {
	paginator := &Paginator[T]{
		Log:          zap,
		Query:        query,
		Cache:        entities,
		fetch:        fetch,
		pageSize:     constant.DEFAULT_PAGE_SIZE,
		pageCursor:   1,
		lastNonEmpty: true,
	}

	for _, option := range options {
		option(paginator)
	}

	return paginator
}

// NewSinglePagePaginator wraps a query without paging. Its first page is the
// whole result and HasMore is always false.
func NewSinglePagePaginator[T model.Entity](query string, entities *cache.EntityCache[T], fetch ListFetcher[T], zap *zap.Logger, options ...PaginatorOption[T]) *Paginator[T] {
	paginator := NewPaginator(query, entities, func(ctx context.Context, _ int, _ int) (model.PageResult[T], error) {
		items, err := fetch(ctx)
		if err != nil {
			return model.PageResult[T]{}, err
		}

		return model.PageResult[T]{Items: items, TotalCount: len(items)}, nil
	}, zap, options...)
	paginator.single = true

	return paginator
}

// LoadPage fetches pageNumber. With replace the previous ids and cursor are
// dropped before the page is merged. A call made while another load is in
// flight, or after Close, does nothing.
func (paginator *Paginator[T]) LoadPage(ctx context.Context, pageNumber int, replace bool) error {
	paginator.mu.Lock()
	if paginator.closed || paginator.loading {
		paginator.mu.Unlock()
		observability.PageLoadDuration.WithLabelValues(paginator.Query, observability.OutcomeSkipped).Observe(0)
		return nil
	}
	paginator.loading = true
	generation := paginator.generation
	paginator.mu.Unlock()

	ctx, span := observability.Tracer().Start(ctx, "paginator.load_page", trace.WithAttributes(
		attribute.String("paginator.query", paginator.Query),
		attribute.Int("paginator.page", pageNumber),
		attribute.Bool("paginator.replace", replace),
	))
	defer span.End()

	start := time.Now()
	page, err := paginator.fetch(ctx, pageNumber, paginator.pageSize)
	elapsed := time.Since(start).Seconds()

	paginator.mu.Lock()
	defer paginator.mu.Unlock()

	// a Reset or Close happened while the request was out
	if paginator.closed || generation != paginator.generation {
		span.SetAttributes(attribute.Bool("paginator.discarded", true))
		observability.PageLoadDuration.WithLabelValues(paginator.Query, observability.OutcomeStale).Observe(elapsed)
		return nil
	}

	paginator.loading = false

	if err != nil {
		paginator.err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observability.PageLoadDuration.WithLabelValues(paginator.Query, observability.OutcomeError).Observe(elapsed)
		observability.WithContext(ctx, paginator.Log).Warn("failed to load page",
			zap.String("query", paginator.Query),
			zap.Int("page", pageNumber),
			zap.Error(err),
		)
		return err
	}

	paginator.err = nil
	observability.PageLoadDuration.WithLabelValues(paginator.Query, observability.OutcomeSuccess).Observe(elapsed)

	if replace {
		paginator.ids = nil
		paginator.pageCursor = 1
	}

	paginator.store(page.Items)
	paginator.totalCount = page.TotalCount
	paginator.loaded = true
	paginator.lastNonEmpty = len(page.Items) > 0
	if paginator.lastNonEmpty {
		paginator.pageCursor = pageNumber + 1
	}

	return nil
}

// store upserts the page into the cache and appends ids not already listed.
// Caller holds mu.
func (paginator *Paginator[T]) store(items []T) {
	seen := make(map[int64]struct{}, len(paginator.ids)+len(items))
	for _, id := range paginator.ids {
		seen[id] = struct{}{}
	}

	for _, item := range items {
		if paginator.merge != nil {
			if cached, ok := paginator.Cache.Get(item.EntityID()); ok {
				item = paginator.merge(cached, item)
			}
		}
		if paginator.transform != nil {
			item = paginator.transform(item)
		}
		paginator.Cache.Upsert(item)

		if _, ok := seen[item.EntityID()]; ok {
			continue
		}
		seen[item.EntityID()] = struct{}{}
		paginator.ids = append(paginator.ids, item.EntityID())
	}
}

// LoadMore loads the page at the cursor when there is more to load.
func (paginator *Paginator[T]) LoadMore(ctx context.Context) error {
	paginator.mu.Lock()
	hasMore := paginator.hasMore()
	cursor := paginator.pageCursor
	paginator.mu.Unlock()

	if !hasMore {
		return nil
	}

	return paginator.LoadPage(ctx, cursor, false)
}

// Reset clears the list. A load still in flight is discarded when it lands.
func (paginator *Paginator[T]) Reset() {
	paginator.mu.Lock()
	defer paginator.mu.Unlock()

	paginator.generation++
	paginator.ids = nil
	paginator.pageCursor = 1
	paginator.totalCount = 0
	paginator.loaded = false
	paginator.lastNonEmpty = true
	paginator.loading = false
	paginator.err = nil
}

// Close detaches the paginator from its screen. Later loads and list edits
// are no-ops.
func (paginator *Paginator[T]) Close() {
	paginator.mu.Lock()
	defer paginator.mu.Unlock()

	paginator.closed = true
	paginator.loading = false
}

// Items resolves the listed ids through the cache. Ids removed from the
// cache are skipped.
func (paginator *Paginator[T]) Items() []T {
	ids := paginator.IDs()

	items := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := paginator.Cache.Get(id); ok {
			items = append(items, item)
		}
	}

	return items
}

func (paginator *Paginator[T]) IDs() []int64 {
	paginator.mu.Lock()
	defer paginator.mu.Unlock()

	ids := make([]int64, len(paginator.ids))
	copy(ids, paginator.ids)
	return ids
}

// hasMore is loadedCount < totalCount and the last page was not empty.
// Caller holds mu.
func (paginator *Paginator[T]) hasMore() bool {
	if paginator.single {
		return false
	}

	if !paginator.lastNonEmpty {
		return false
	}

	return !paginator.loaded || len(paginator.ids) < paginator.totalCount
}

func (paginator *Paginator[T]) HasMore() bool {
	paginator.mu.Lock()
	defer paginator.mu.Unlock()

	return paginator.hasMore()
}

func (paginator *Paginator[T]) PageCursor() int {
	paginator.mu.Lock()
	defer paginator.mu.Unlock()

	return paginator.pageCursor
}

func (paginator *Paginator[T]) TotalCount() int {
	paginator.mu.Lock()
	defer paginator.mu.Unlock()

	return paginator.totalCount
}

func (paginator *Paginator[T]) Loading() bool {
	paginator.mu.Lock()
	defer paginator.mu.Unlock()

	return paginator.loading
}

// Err is the error of the last load, nil after a success.
func (paginator *Paginator[T]) Err() error {
	paginator.mu.Lock()
	defer paginator.mu.Unlock()

	return paginator.err
}

func (paginator *Paginator[T]) Len() int {
	paginator.mu.Lock()
	defer paginator.mu.Unlock()

	return len(paginator.ids)
}

// Remove drops id from the list and reports where it was.
func (paginator *Paginator[T]) Remove(id int64) (int, bool) {
	paginator.mu.Lock()
	defer paginator.mu.Unlock()

	if paginator.closed {
		return -1, false
	}

	for i, listed := range paginator.ids {
		if listed != id {
			continue
		}

		paginator.ids = append(paginator.ids[:i], paginator.ids[i+1:]...)
		if paginator.totalCount > 0 {
			paginator.totalCount--
		}
		return i, true
	}

	return -1, false
}

// InsertAt puts id back at index, clamped to the list bounds. Ids already
// listed are left where they are.
func (paginator *Paginator[T]) InsertAt(index int, id int64) {
	paginator.mu.Lock()
	defer paginator.mu.Unlock()

	if paginator.closed {
		return
	}

	for _, listed := range paginator.ids {
		if listed == id {
			return
		}
	}

	index = max(0, min(index, len(paginator.ids)))
	paginator.ids = append(paginator.ids, 0)
	copy(paginator.ids[index+1:], paginator.ids[index:])
	paginator.ids[index] = id
	paginator.totalCount++
}

func (paginator *Paginator[T]) Append(id int64) {
	paginator.InsertAt(math.MaxInt, id)
}

func (paginator *Paginator[T]) Prepend(id int64) {
	paginator.InsertAt(0, id)
}
