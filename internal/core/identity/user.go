package identity

import "time"

// User is a profile held by the identity provider. Lifecycle: created at
// account creation, mutated by profile edit or avatar upload, never
// deleted by this system.
type User struct {
	ID           string    `json:"userId"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"displayName"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SignUpRequest is the input for creating a new account.
type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// ProfilePatch is a partial profile update. Nil fields are untouched.
type ProfilePatch struct {
	DisplayName *string
	AvatarURL   *string
}
