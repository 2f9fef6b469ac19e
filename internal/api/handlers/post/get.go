package post

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Lark/internal/api/handlers"
	"Lark/internal/core/posts"
)

// GetHandler serves single posts as JSON. The edit form on the feed pages
// fetches the current body through it before opening.
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new get handler.
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet handles GET /posts/{postID}.
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if postID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "post ID is required")
		return
	}

	p, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
			return
		}
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to load post")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, p)
}
