package blobs

import "context"

// Store is the path-keyed binary object store the service delegates to.
// Implemented by internal/storage/minio; tests substitute an in-memory fake.
type Store interface {
	// Upload writes data under path, overwriting any existing object.
	Upload(ctx context.Context, path string, data []byte, contentType string) error

	// ResolveURL returns a URL from which the object at path can be downloaded.
	ResolveURL(ctx context.Context, path string) (string, error)

	// Remove deletes the object at path. Removing a missing object is not an error.
	Remove(ctx context.Context, path string) error
}

// Service validates and uploads user media, returning download URLs.
type Service interface {
	// UploadPostMedia validates file size and type, uploads the file to the
	// post's deterministic path, and returns the download URL and the
	// classified kind. Validation failures happen before any remote call.
	UploadPostMedia(ctx context.Context, userID, postID string, file FileUpload) (string, Kind, error)

	// UploadAvatar uploads a user's avatar image and returns its URL.
	// Only images are accepted; the size limit is the same as for post media.
	UploadAvatar(ctx context.Context, userID string, file FileUpload) (string, error)

	// RemovePostMedia deletes the attachment blob for a post, if any.
	RemovePostMedia(ctx context.Context, userID, postID string) error
}
