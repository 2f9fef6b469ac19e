package blobs

import (
	"fmt"
	"strings"
)

// MaxFileSize is the hard limit for any uploaded file (10 MiB).
// Files strictly larger than this are rejected before any upload call.
const MaxFileSize = 10 * 1024 * 1024

// Kind classifies an attachment by its media type.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// FileUpload carries the raw bytes and declared content type of a file
// submitted by the user. Size is len(Data); there is no streaming path.
type FileUpload struct {
	Data        []byte
	ContentType string
}

// Classify maps a MIME content type to an attachment kind.
// Only image/* and video/* are accepted; anything else is rejected
// before an upload is attempted.
func Classify(contentType string) (Kind, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return KindImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return KindVideo, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}
}

// PostMediaPath returns the deterministic object path for a post's
// attachment. The same path is reused for replacements and deletes.
func PostMediaPath(userID, postID string) string {
	return fmt.Sprintf("contents/%s/%s", userID, postID)
}

// AvatarPath returns the object path for a user's avatar.
func AvatarPath(userID string) string {
	return fmt.Sprintf("avatars/%s", userID)
}
