package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Lark/internal/api/middleware"
	"Lark/internal/core/posts"
)

// UpdateHandler handles the inline edit form on a post.
type UpdateHandler struct {
	service posts.Service
}

// NewUpdateHandler creates a new update handler.
func NewUpdateHandler(service posts.Service) *UpdateHandler {
	return &UpdateHandler{service: service}
}

// HandleUpdate handles POST /posts/{postID}/update.
// The service treats edits by non-authors as silent no-ops, so no
// authorization branching happens here.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseMultipartForm(maxFormBytes); err != nil {
		redirectWithError(w, r, "/", posts.NewValidationError("file", "upload too large or malformed"))
		return
	}
	target := returnTarget(r)

	file, err := readOptionalFile(r, "file")
	if err != nil {
		redirectWithError(w, r, target, err)
		return
	}

	req := posts.UpdatePostRequest{
		PostID:  chi.URLParam(r, "postID"),
		ActorID: middleware.GetUserID(r),
		Body:    r.FormValue("post"),
		File:    file,
	}

	if _, err := h.service.UpdatePost(r.Context(), req); err != nil {
		redirectWithError(w, r, target, err)
		return
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}
