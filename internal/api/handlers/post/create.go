package post

import (
	"log"
	"net/http"

	"Lark/internal/api/middleware"
	"Lark/internal/core/identity"
	"Lark/internal/core/posts"
)

// CreateHandler handles the composer form on the home page.
type CreateHandler struct {
	service  posts.Service
	identity identity.Service
}

// NewCreateHandler creates a new create handler.
func NewCreateHandler(service posts.Service, identityService identity.Service) *CreateHandler {
	return &CreateHandler{
		service:  service,
		identity: identityService,
	}
}

// HandleCreate handles POST /posts.
// The author and display-name snapshot come from the authenticated
// session, never from the form.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseMultipartForm(maxFormBytes); err != nil {
		redirectWithError(w, r, "/", posts.NewValidationError("file", "upload too large or malformed"))
		return
	}

	userID := middleware.GetUserID(r)
	user, err := h.identity.GetUser(r.Context(), userID)
	if err != nil {
		log.Printf("[POST-CREATE] Failed to load author %s: %v", userID, err)
		redirectWithError(w, r, "/", err)
		return
	}

	file, err := readOptionalFile(r, "file")
	if err != nil {
		redirectWithError(w, r, "/", err)
		return
	}

	req := posts.CreatePostRequest{
		AuthorID:   user.ID,
		AuthorName: user.DisplayName,
		Body:       r.FormValue("post"),
		File:       file,
	}

	if _, err := h.service.CreatePost(r.Context(), req); err != nil {
		redirectWithError(w, r, "/", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
