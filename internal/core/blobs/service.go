package blobs

import (
	"context"
	"fmt"
)

type blobService struct {
	store Store
}

// NewBlobService creates a blob service backed by the given object store.
func NewBlobService(store Store) Service {
	return &blobService{store: store}
}

// UploadPostMedia validates and uploads a post attachment.
// Flow: validate size -> classify MIME -> upload -> resolve download URL.
// Both validation steps run before the first remote call so an invalid
// file never consumes upload bandwidth or quota.
func (s *blobService) UploadPostMedia(ctx context.Context, userID, postID string, file FileUpload) (string, Kind, error) {
	if err := ValidateSize(file); err != nil {
		return "", "", err
	}

	kind, err := Classify(file.ContentType)
	if err != nil {
		return "", "", err
	}

	path := PostMediaPath(userID, postID)
	if err := s.store.Upload(ctx, path, file.Data, file.ContentType); err != nil {
		return "", "", fmt.Errorf("failed to upload post media: %w", err)
	}

	url, err := s.store.ResolveURL(ctx, path)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve media URL: %w", err)
	}

	return url, kind, nil
}

// UploadAvatar validates and uploads a profile avatar.
// Avatars share the post-media size limit but must be images.
func (s *blobService) UploadAvatar(ctx context.Context, userID string, file FileUpload) (string, error) {
	if err := ValidateSize(file); err != nil {
		return "", err
	}

	kind, err := Classify(file.ContentType)
	if err != nil {
		return "", err
	}
	if kind != KindImage {
		return "", ErrAvatarNotImage
	}

	path := AvatarPath(userID)
	if err := s.store.Upload(ctx, path, file.Data, file.ContentType); err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	url, err := s.store.ResolveURL(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve avatar URL: %w", err)
	}

	return url, nil
}

// RemovePostMedia deletes a post's attachment blob.
func (s *blobService) RemovePostMedia(ctx context.Context, userID, postID string) error {
	if err := s.store.Remove(ctx, PostMediaPath(userID, postID)); err != nil {
		return fmt.Errorf("failed to remove post media: %w", err)
	}
	return nil
}

// ValidateSize rejects files strictly larger than MaxFileSize.
// The comparison is ">" so a file of exactly 10 MiB is accepted; the same
// check is applied on create and edit.
func ValidateSize(file FileUpload) error {
	if len(file.Data) > MaxFileSize {
		return fmt.Errorf("%w (got %d bytes)", ErrFileTooLarge, len(file.Data))
	}
	return nil
}
