package routes

import (
	"github.com/go-chi/chi/v5"

	"Lark/internal/api/handlers/account"
	"Lark/internal/api/middleware"
	"Lark/internal/core/identity"
)

// RegisterAccountRoutes registers authentication and profile endpoints.
func RegisterAccountRoutes(r chi.Router, identityService identity.Service, sessions *middleware.SessionManager) {
	authHandler := account.NewAuthHandler(identityService, sessions)
	profileHandler := account.NewProfileHandler(identityService)

	r.With(sessions.RedirectIfAuthenticated).Post("/login", authHandler.HandleLogin)
	r.With(sessions.RedirectIfAuthenticated).Post("/create-account", authHandler.HandleCreateAccount)
	r.Post("/logout", authHandler.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireSession)
		r.Post("/profile/name", profileHandler.HandleRename)
		r.Post("/profile/avatar", profileHandler.HandleAvatar)
	})
}
