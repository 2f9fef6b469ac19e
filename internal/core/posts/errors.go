package posts

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a post lookup finds no matching record.
	ErrNotFound = errors.New("post not found")

	// ErrAttachmentKindMismatch is returned when an edit supplies a
	// replacement file whose kind differs from the existing attachment.
	// The edit is rejected before any upload; no partial write occurs.
	ErrAttachmentKindMismatch = errors.New("replacement file must match the existing attachment type")
)

// ValidationError is a validation failure with field context, raised
// before any remote call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if err is a validation error.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
