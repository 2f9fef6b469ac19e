package feed_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	feedhandlers "Lark/internal/api/handlers/feed"
	"Lark/internal/core/feed"
	"Lark/internal/core/posts"
)

// streamStore is a posts.Store whose live deliveries are driven by the
// test. All state is mutex-guarded because the handler subscribes from
// its own goroutine.
type streamStore struct {
	mu         sync.Mutex
	recs       []posts.Record
	onChange   func([]posts.Record)
	closeCalls int
}

func (s *streamStore) Insert(ctx context.Context, rec posts.Record) (string, error) {
	return "", errors.New("not supported in this test")
}

func (s *streamStore) Get(ctx context.Context, id string) (*posts.Record, error) {
	return nil, posts.ErrNotFound
}

func (s *streamStore) Update(ctx context.Context, id string, patch posts.RecordPatch) error {
	return errors.New("not supported in this test")
}

func (s *streamStore) Remove(ctx context.Context, id string) error {
	return errors.New("not supported in this test")
}

func (s *streamStore) QueryRecent(ctx context.Context, q posts.Query) ([]posts.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recs, nil
}

func (s *streamStore) Subscribe(ctx context.Context, q posts.Query, onChange func([]posts.Record)) (posts.Subscription, error) {
	s.mu.Lock()
	s.onChange = onChange
	recs := s.recs
	s.mu.Unlock()
	onChange(recs)
	return &streamSub{store: s}, nil
}

func (s *streamStore) emit(recs []posts.Record) {
	s.mu.Lock()
	s.recs = recs
	onChange := s.onChange
	s.mu.Unlock()
	if onChange != nil {
		onChange(recs)
	}
}

func (s *streamStore) closed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeCalls
}

type streamSub struct {
	store *streamStore
}

func (s *streamSub) Close() error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.closeCalls++
	return nil
}

func dialStream(t *testing.T, store *streamStore) (*websocket.Conn, func()) {
	t.Helper()

	handler := feedhandlers.NewStreamHandler(feed.NewSynchronizer(store))
	srv := httptest.NewServer(http.HandlerFunc(handler.HandleStream))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		require.NoError(t, resp.Body.Close())
	}

	return conn, srv.Close
}

func TestHandleStream_PushesSnapshots(t *testing.T) {
	store := &streamStore{recs: []posts.Record{
		{ID: "post-1", Body: "first", CreatedDate: 1000, Username: "alice", UserID: "user-1"},
	}}

	conn, shutdown := dialStream(t, store)
	defer shutdown()
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var snap feed.Snapshot
	require.NoError(t, conn.ReadJSON(&snap), "the initial result set arrives without a change")
	require.Len(t, snap.Posts, 1)
	assert.Equal(t, "post-1", snap.Posts[0].ID)

	store.emit([]posts.Record{
		{ID: "post-2", Body: "second", CreatedDate: 2000, Username: "alice", UserID: "user-1"},
		{ID: "post-1", Body: "first", CreatedDate: 1000, Username: "alice", UserID: "user-1"},
	})

	require.NoError(t, conn.ReadJSON(&snap))
	require.Len(t, snap.Posts, 2)
	assert.Equal(t, "post-2", snap.Posts[0].ID, "each delivery replaces the whole view, newest first")
}

func TestHandleStream_ClientCloseReleasesSubscription(t *testing.T) {
	store := &streamStore{}

	conn, shutdown := dialStream(t, store)
	defer shutdown()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var snap feed.Snapshot
	require.NoError(t, conn.ReadJSON(&snap))

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool {
		return store.closed() == 1
	}, 2*time.Second, 10*time.Millisecond, "tearing down the socket must close the subscription")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, store.closed(), "the subscription is closed exactly once")
}
