package feed

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"Lark/internal/core/posts"
)

// Synchronizer maintains live, ordered views over the post collection.
// Each call to Open establishes an independent subscription; concurrent
// feeds (home and profile) share nothing.
type Synchronizer struct {
	store posts.Store
}

// NewSynchronizer creates a feed synchronizer over the given store.
func NewSynchronizer(store posts.Store) *Synchronizer {
	return &Synchronizer{store: store}
}

// Feed is an open live subscription. It owns its view state exclusively:
// onUpdate receives each snapshot from a single goroutine, and after
// Close returns no further snapshot is delivered.
type Feed struct {
	sub      posts.Subscription
	once     sync.Once
	closeErr error
}

// Open establishes a live query for the most recent posts and invokes
// onUpdate with the full, ordered snapshot on the initial result set and
// after every subsequent change. The snapshot replaces all prior state;
// an empty match yields an empty snapshot, not an error.
//
// The caller must Close the returned feed exactly once when the view is
// torn down; a leaked subscription keeps consuming backend reads
// indefinitely.
func (s *Synchronizer) Open(ctx context.Context, opts Options, onUpdate func(Snapshot)) (*Feed, error) {
	if onUpdate == nil {
		return nil, fmt.Errorf("onUpdate callback is required")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := posts.Query{Limit: limit, AuthorID: opts.AuthorID}
	sub, err := s.store.Subscribe(ctx, q, func(recs []posts.Record) {
		onUpdate(buildSnapshot(recs, limit))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open feed subscription: %w", err)
	}

	return &Feed{sub: sub}, nil
}

// Close releases the live query. Closing twice is a safe no-op; the first
// call's result is returned on every subsequent call. Close must not be
// called from inside the feed's own onUpdate callback.
func (f *Feed) Close() error {
	f.once.Do(func() {
		f.closeErr = f.sub.Close()
	})
	return f.closeErr
}

// Snapshot runs the feed query once without subscribing. Used for the
// initial server-side render; live consumers use Open.
func (s *Synchronizer) Snapshot(ctx context.Context, opts Options) (Snapshot, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	recs, err := s.store.QueryRecent(ctx, posts.Query{Limit: limit, AuthorID: opts.AuthorID})
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to query feed: %w", err)
	}
	return buildSnapshot(recs, limit), nil
}

// buildSnapshot maps wire records into the ordered view model.
// The store already orders its deliveries, but the snapshot re-sorts
// (newest first) and truncates so the view model is authoritative
// regardless of the store implementation.
func buildSnapshot(recs []posts.Record, limit int) Snapshot {
	view := make([]posts.Post, 0, len(recs))
	for _, rec := range recs {
		view = append(view, posts.FromRecord(rec))
	}

	sort.SliceStable(view, func(i, j int) bool {
		return view[i].CreatedAt.After(view[j].CreatedAt)
	})

	if len(view) > limit {
		view = view[:limit]
	}
	return Snapshot{Posts: view}
}
