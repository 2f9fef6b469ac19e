package postgres

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lib/pq"

	"Lark/internal/core/posts"
)

// contentsChannel is the NOTIFY channel fired by the contents table
// trigger on every insert, update, or delete.
const contentsChannel = "contents_changed"

// liveQuery is a standing query over the contents table. A dedicated
// LISTEN connection wakes it on every table change; it then re-runs the
// ordered/limited/filtered query and delivers the whole result set.
// Consumers treat each delivery as authoritative replacement state.
type liveQuery struct {
	store    *postgresPostStore
	query    posts.Query
	onChange func([]posts.Record)
	listener *pq.Listener
	ctx      context.Context

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// Subscribe establishes a live query. The callback receives the current
// result set immediately and again after every change to the collection.
// The subscription holds one LISTEN connection until Close.
func (s *postgresPostStore) Subscribe(ctx context.Context, q posts.Query, onChange func([]posts.Record)) (posts.Subscription, error) {
	listener := pq.NewListener(s.dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("[LIVE-QUERY] Listener event %d: %v", ev, err)
		}
	})

	if err := listener.Listen(contentsChannel); err != nil {
		if closeErr := listener.Close(); closeErr != nil {
			log.Printf("[LIVE-QUERY] Failed to close listener: %v", closeErr)
		}
		return nil, err
	}

	lq := &liveQuery{
		store:    s,
		query:    q,
		onChange: onChange,
		listener: listener,
		ctx:      ctx,
		done:     make(chan struct{}),
	}

	lq.wg.Add(1)
	go lq.run()

	return lq, nil
}

// run delivers the initial snapshot, then one delivery per notification.
// It is the only goroutine that invokes onChange, so Close can guarantee
// no delivery happens after it returns by waiting for run to exit.
func (l *liveQuery) run() {
	defer l.wg.Done()

	l.deliver()

	for {
		select {
		case <-l.done:
			return
		case _, ok := <-l.listener.Notify:
			if !ok {
				return
			}
			// A nil notification means the listener reconnected; changes may
			// have been missed while disconnected, so re-query either way.
			l.deliver()
		case <-time.After(90 * time.Second):
			// Keep the LISTEN connection honest during quiet periods.
			if err := l.listener.Ping(); err != nil {
				log.Printf("[LIVE-QUERY] Ping failed: %v", err)
			}
		}
	}
}

// deliver re-runs the query and pushes the full result set, unless the
// subscription closed in the meantime.
func (l *liveQuery) deliver() {
	recs, err := l.store.QueryRecent(l.ctx, l.query)
	if err != nil {
		log.Printf("[LIVE-QUERY] Query failed: %v", err)
		return
	}

	select {
	case <-l.done:
		return
	default:
	}

	l.onChange(recs)
}

// Close releases the LISTEN connection and waits for the delivery
// goroutine to stop, so once Close returns the callback is never invoked
// again. Closing twice is a no-op. Close must not be called from inside
// the callback.
func (l *liveQuery) Close() error {
	var err error
	l.once.Do(func() {
		close(l.done)
		err = l.listener.Close()
		l.wg.Wait()
	})
	return err
}
