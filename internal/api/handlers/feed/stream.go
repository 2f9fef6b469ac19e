// Package feed exposes the live feed over a websocket. Each connection
// owns one subscription; tearing down the socket closes the subscription
// so it stops consuming backend reads.
package feed

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"Lark/internal/api/middleware"
	"Lark/internal/core/feed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
}

// writeTimeout bounds every write to the socket. Without it a snapshot
// write to a silently dead peer blocks until the kernel gives up on
// retransmission, which also stalls the subscription teardown waiting
// on the delivery goroutine.
const writeTimeout = 10 * time.Second

// StreamHandler upgrades feed requests to websockets and pushes the full
// snapshot JSON on every change delivery.
type StreamHandler struct {
	sync *feed.Synchronizer
}

// NewStreamHandler creates a new live feed stream handler.
func NewStreamHandler(synchronizer *feed.Synchronizer) *StreamHandler {
	return &StreamHandler{sync: synchronizer}
}

// HandleStream handles GET /ws/feed. The optional "author" query
// parameter restricts the stream to one author's posts (profile view);
// "me" resolves to the signed-in user.
func (h *StreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	authorID := r.URL.Query().Get("author")
	if authorID == "me" {
		authorID = middleware.GetUserID(r)
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[FEED-WS] Upgrade failed: %v", err)
		return
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			log.Printf("[FEED-WS] Failed to close connection: %v", closeErr)
		}
	}()

	// Snapshots and pings share the connection; gorilla permits only one
	// concurrent writer.
	var writeMu sync.Mutex

	f, err := h.sync.Open(r.Context(), feed.Options{AuthorID: authorID}, func(snap feed.Snapshot) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			log.Printf("[FEED-WS] Failed to set write deadline: %v", err)
		}
		if err := conn.WriteJSON(snap); err != nil {
			log.Printf("[FEED-WS] Write failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("[FEED-WS] Failed to open feed: %v", err)
		return
	}
	// Exactly one close per subscription, regardless of which path below
	// ends the connection first.
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[FEED-WS] Failed to close feed: %v", err)
		}
	}()

	done := make(chan struct{})
	var closeOnce sync.Once

	// Ping loop keeps intermediaries from reaping idle connections.
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				writeMu.Lock()
				err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeTimeout))
				writeMu.Unlock()
				if err != nil {
					closeOnce.Do(func() { close(done) })
					return
				}
			case <-done:
				return
			}
		}
	}()

	// Read loop: the client never sends data frames, but reading is how
	// we learn the socket closed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				closeOnce.Do(func() { close(done) })
				return
			}
		}
	}()

	select {
	case <-done:
	case <-r.Context().Done():
	}
}
