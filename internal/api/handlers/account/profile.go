package account

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"Lark/internal/api/middleware"
	"Lark/internal/core/blobs"
	"Lark/internal/core/identity"
)

// ProfileHandler processes profile edits: display-name changes and
// avatar uploads.
type ProfileHandler struct {
	identity identity.Service
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(identityService identity.Service) *ProfileHandler {
	return &ProfileHandler{identity: identityService}
}

// HandleRename handles POST /profile/name.
// Existing posts keep their display-name snapshots.
func (h *ProfileHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, err)
		return
	}

	userID := middleware.GetUserID(r)
	if _, err := h.identity.UpdateDisplayName(r.Context(), userID, r.FormValue("name")); err != nil {
		h.redirectWithError(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// HandleAvatar handles POST /profile/avatar.
func (h *ProfileHandler) HandleAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, blobs.MaxFileSize+1<<20)
	if err := r.ParseMultipartForm(blobs.MaxFileSize + 1<<20); err != nil {
		h.redirectWithError(w, r, errors.New("upload too large or malformed"))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		h.redirectWithError(w, r, errors.New("choose an image to upload"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.redirectWithError(w, r, err)
		return
	}

	userID := middleware.GetUserID(r)
	upload := blobs.FileUpload{Data: data, ContentType: header.Header.Get("Content-Type")}
	if _, err := h.identity.UpdateAvatar(r.Context(), userID, upload); err != nil {
		h.redirectWithError(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *ProfileHandler) redirectWithError(w http.ResponseWriter, r *http.Request, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, blobs.ErrFileTooLarge):
		msg = "The maximum file size (10 MiB) has been exceeded."
	case errors.Is(err, blobs.ErrAvatarNotImage), errors.Is(err, blobs.ErrUnsupportedFileType):
		msg = "Avatars must be image files."
	}
	q := url.Values{"error": {msg}}
	http.Redirect(w, r, "/profile?"+q.Encode(), http.StatusSeeOther)
}
