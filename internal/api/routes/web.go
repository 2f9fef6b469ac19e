package routes

import (
	"github.com/go-chi/chi/v5"

	"Lark/internal/api/middleware"
	"Lark/internal/web"
)

// RegisterWebRoutes registers the page routes. The feed and profile
// require a session; the auth pages redirect signed-in users home.
func RegisterWebRoutes(r chi.Router, handlers *web.Handlers, sessions *middleware.SessionManager) {
	r.With(sessions.RequireSession).Get("/", handlers.HomeHandler)
	r.With(sessions.RequireSession).Get("/profile", handlers.ProfileHandler)
	r.With(sessions.RedirectIfAuthenticated).Get("/login", handlers.LoginHandler)
	r.With(sessions.RedirectIfAuthenticated).Get("/create-account", handlers.CreateAccountHandler)
}
