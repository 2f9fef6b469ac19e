package post

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"Lark/internal/core/blobs"
	"Lark/internal/core/posts"
)

// Accept a bit more than the attachment limit so oversized files reach
// the service layer and get rejected there with a real error message
// instead of a connection reset.
const maxFormBytes = blobs.MaxFileSize + 1<<20

// readOptionalFile extracts the named multipart file, if the user picked
// one. Returns nil when the field is absent or empty.
func readOptionalFile(r *http.Request, field string) (*blobs.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file field %s: %w", field, err)
	}
	defer file.Close()

	if header.Size == 0 {
		return nil, nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	return &blobs.FileUpload{Data: data, ContentType: contentType}, nil
}

// returnTarget reads the page the form was submitted from, so edits and
// deletes on the profile page land back there. Only the two feed pages
// are accepted; anything else falls back to the home feed.
func returnTarget(r *http.Request) string {
	if r.FormValue("return") == "/profile" {
		return "/profile"
	}
	return "/"
}

// redirectWithError sends the browser back to target with an inline
// error message the page template renders next to the form.
func redirectWithError(w http.ResponseWriter, r *http.Request, target string, err error) {
	q := url.Values{"error": {userMessage(err)}}
	http.Redirect(w, r, target+"?"+q.Encode(), http.StatusSeeOther)
}

// userMessage maps service errors to the text shown inline on the page.
// Validation errors carry their own wording; anything else is masked.
func userMessage(err error) string {
	var valErr *posts.ValidationError
	switch {
	case errors.As(err, &valErr):
		return valErr.Message
	case errors.Is(err, blobs.ErrFileTooLarge):
		return "The maximum file size (10 MiB) has been exceeded."
	case errors.Is(err, blobs.ErrUnsupportedFileType):
		return "Only image and video files can be attached."
	case errors.Is(err, posts.ErrAttachmentKindMismatch):
		return "You can only upload the same type of file as before."
	case errors.Is(err, posts.ErrNotFound):
		return "That post no longer exists."
	default:
		return "Something went wrong. Please try again."
	}
}
