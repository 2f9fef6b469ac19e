package routes

import (
	"github.com/go-chi/chi/v5"

	feedHandlers "Lark/internal/api/handlers/feed"
	"Lark/internal/api/middleware"
	"Lark/internal/core/feed"
)

// RegisterFeedRoutes registers the live feed websocket endpoint.
func RegisterFeedRoutes(r chi.Router, synchronizer *feed.Synchronizer, sessions *middleware.SessionManager) {
	streamHandler := feedHandlers.NewStreamHandler(synchronizer)
	r.With(sessions.RequireSession).Get("/ws/feed", streamHandler.HandleStream)
}
