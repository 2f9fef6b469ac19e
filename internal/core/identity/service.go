package identity

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"Lark/internal/core/blobs"
)

// Minimal email shape check; the mail provider is the real validator.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 8

type identityService struct {
	repo  Repository
	blobs blobs.Service
}

// NewIdentityService creates a new identity service.
// blobService may be nil when avatar uploads are not needed (tests).
func NewIdentityService(repo Repository, blobService blobs.Service) Service {
	return &identityService{
		repo:  repo,
		blobs: blobService,
	}
}

// SignUp creates a new account with a bcrypt-hashed password.
func (s *identityService) SignUp(ctx context.Context, req SignUpRequest) (*User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !emailRegex.MatchString(email) {
		return nil, &InvalidEmailError{Email: req.Email}
	}
	if len(req.Password) < minPasswordLength {
		return nil, &WeakPasswordError{Reason: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = "Anonymous"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}

	// Repository maps unique-constraint violations to ErrEmailTaken.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("[SIGNUP] Created account %s", created.ID)
	return created, nil
}

// SignIn verifies the email/password pair against the stored hash.
func (s *identityService) SignIn(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a profile by ID.
func (s *identityService) GetUser(ctx context.Context, id string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateDisplayName renames the user. Display-name snapshots on existing
// posts are intentionally not re-synced.
func (s *identityService) UpdateDisplayName(ctx context.Context, id, displayName string) (*User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}

	user, err := s.repo.UpdateProfile(ctx, id, ProfilePatch{DisplayName: &displayName})
	if err != nil {
		return nil, fmt.Errorf("failed to update display name: %w", err)
	}

	log.Printf("[PROFILE] Renamed user %s", id)
	return user, nil
}

// UpdateAvatar uploads the avatar image and patches the profile with its
// URL. Upload and patch are sequential; a patch failure leaves an
// unreferenced avatar object, overwritten by the next upload.
func (s *identityService) UpdateAvatar(ctx context.Context, id string, file blobs.FileUpload) (*User, error) {
	if s.blobs == nil {
		return nil, fmt.Errorf("avatar uploads are not configured")
	}

	url, err := s.blobs.UploadAvatar(ctx, id, file)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.UpdateProfile(ctx, id, ProfilePatch{AvatarURL: &url})
	if err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	log.Printf("[PROFILE] Updated avatar for user %s", id)
	return user, nil
}
