package routes

import (
	"github.com/go-chi/chi/v5"

	"Lark/internal/api/handlers/post"
	"Lark/internal/api/middleware"
	"Lark/internal/core/identity"
	"Lark/internal/core/posts"
)

// RegisterPostRoutes registers the post lifecycle form endpoints.
// All of them require a session; the service layer additionally treats
// edits and deletes by non-authors as silent no-ops.
func RegisterPostRoutes(r chi.Router, service posts.Service, identityService identity.Service, sessions *middleware.SessionManager) {
	createHandler := post.NewCreateHandler(service, identityService)
	getHandler := post.NewGetHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)

	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireSession)
		r.Post("/posts", createHandler.HandleCreate)
		r.Get("/posts/{postID}", getHandler.HandleGet)
		r.Post("/posts/{postID}/update", updateHandler.HandleUpdate)
		r.Post("/posts/{postID}/delete", deleteHandler.HandleDelete)
	})
}
