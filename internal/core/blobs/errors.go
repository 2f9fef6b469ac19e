package blobs

import "errors"

var (
	// ErrFileTooLarge is returned when an upload exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("file exceeds maximum size of 10 MiB")

	// ErrUnsupportedFileType is returned for content types outside image/* and video/*.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrAvatarNotImage is returned when an avatar upload is not an image.
	ErrAvatarNotImage = errors.New("avatar must be an image")
)
