package identity

import (
	"context"

	"Lark/internal/core/blobs"
)

// Repository is the persistence interface for user profiles.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error)
}

// Service is the identity provider client surface: account creation,
// sign-in, and profile mutation. Session state itself lives in the web
// layer; the service only verifies credentials and owns profile data.
type Service interface {
	// SignUp creates a new account. Email, password strength, and
	// display name are validated before any write.
	SignUp(ctx context.Context, req SignUpRequest) (*User, error)

	// SignIn verifies credentials and returns the matching user, or
	// ErrInvalidCredentials.
	SignIn(ctx context.Context, email, password string) (*User, error)

	// GetUser retrieves a profile by ID.
	GetUser(ctx context.Context, id string) (*User, error)

	// UpdateDisplayName renames the user. Existing posts keep the
	// display-name snapshot taken when they were created.
	UpdateDisplayName(ctx context.Context, id, displayName string) (*User, error)

	// UpdateAvatar uploads a new avatar image to avatars/{userID} and
	// patches the profile with its URL.
	UpdateAvatar(ctx context.Context, id string, file blobs.FileUpload) (*User, error)
}
