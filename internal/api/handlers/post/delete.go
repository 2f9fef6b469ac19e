package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Lark/internal/api/middleware"
	"Lark/internal/core/posts"
)

// DeleteHandler handles post deletion.
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new delete handler.
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{service: service}
}

// HandleDelete handles POST /posts/{postID}/delete.
// Deletes by non-authors are silent no-ops in the service.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	actorID := middleware.GetUserID(r)
	target := returnTarget(r)

	if err := h.service.DeletePost(r.Context(), postID, actorID); err != nil {
		redirectWithError(w, r, target, err)
		return
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}
