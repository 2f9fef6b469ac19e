package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"Lark/internal/core/blobs"
	"Lark/internal/core/identity"
)

// MockRepository is a mock implementation of identity.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, user *identity.User) (*identity.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, id string, patch identity.ProfilePatch) (*identity.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

// avatarBlobStore is a minimal blobs.Store for avatar upload tests.
type avatarBlobStore struct {
	uploads int
}

func (s *avatarBlobStore) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	s.uploads++
	return nil
}

func (s *avatarBlobStore) ResolveURL(ctx context.Context, path string) (string, error) {
	return "https://blobs.test/" + path, nil
}

func (s *avatarBlobStore) Remove(ctx context.Context, path string) error {
	return nil
}

func TestSignUp_Success(t *testing.T) {
	repo := new(MockRepository)
	svc := identity.NewIdentityService(repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
		return u.Email == "alice@example.com" &&
			u.DisplayName == "Alice" &&
			u.PasswordHash != "hunter2secret" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2secret")) == nil
	})).Return(&identity.User{ID: "user-1", Email: "alice@example.com", DisplayName: "Alice"}, nil)

	user, err := svc.SignUp(context.Background(), identity.SignUpRequest{
		Email:       "  Alice@Example.COM ",
		Password:    "hunter2secret",
		DisplayName: "Alice",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	repo.AssertExpectations(t)
}

func TestSignUp_DefaultsDisplayName(t *testing.T) {
	repo := new(MockRepository)
	svc := identity.NewIdentityService(repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
		return u.DisplayName == "Anonymous"
	})).Return(&identity.User{ID: "user-1", DisplayName: "Anonymous"}, nil)

	_, err := svc.SignUp(context.Background(), identity.SignUpRequest{
		Email:    "bob@example.com",
		Password: "longenough",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSignUp_ValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing at sign", "not-an-email", "longenough"},
		{"missing domain dot", "a@b", "longenough"},
		{"empty email", "", "longenough"},
		{"short password", "carol@example.com", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			svc := identity.NewIdentityService(repo, nil)

			_, err := svc.SignUp(context.Background(), identity.SignUpRequest{
				Email:    tt.email,
				Password: tt.password,
			})

			require.Error(t, err)
			var invalidEmail *identity.InvalidEmailError
			var weakPassword *identity.WeakPasswordError
			assert.True(t, errors.As(err, &invalidEmail) || errors.As(err, &weakPassword))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSignUp_EmailTaken(t *testing.T) {
	repo := new(MockRepository)
	svc := identity.NewIdentityService(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, identity.ErrEmailTaken)

	_, err := svc.SignUp(context.Background(), identity.SignUpRequest{
		Email:    "taken@example.com",
		Password: "longenough",
	})

	assert.ErrorIs(t, err, identity.ErrEmailTaken)
}

func TestSignIn_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(MockRepository)
	svc := identity.NewIdentityService(repo, nil)
	repo.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&identity.User{ID: "user-1", Email: "alice@example.com", PasswordHash: string(hash)}, nil)

	user, err := svc.SignIn(context.Background(), "Alice@Example.com", "correct-horse")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestSignIn_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(MockRepository)
	svc := identity.NewIdentityService(repo, nil)
	repo.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&identity.User{ID: "user-1", PasswordHash: string(hash)}, nil)

	_, err = svc.SignIn(context.Background(), "alice@example.com", "wrong-horse")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	repo := new(MockRepository)
	svc := identity.NewIdentityService(repo, nil)
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, identity.ErrUserNotFound)

	// Unknown accounts and wrong passwords are indistinguishable to the caller.
	_, err := svc.SignIn(context.Background(), "ghost@example.com", "whatever-password")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
}

func TestSignIn_EmptyCredentials(t *testing.T) {
	repo := new(MockRepository)
	svc := identity.NewIdentityService(repo, nil)

	_, err := svc.SignIn(context.Background(), "", "")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestUpdateDisplayName(t *testing.T) {
	repo := new(MockRepository)
	svc := identity.NewIdentityService(repo, nil)

	newName := "Alice B"
	repo.On("UpdateProfile", mock.Anything, "user-1", identity.ProfilePatch{DisplayName: &newName}).
		Return(&identity.User{ID: "user-1", DisplayName: "Alice B"}, nil)

	user, err := svc.UpdateDisplayName(context.Background(), "user-1", "  Alice B  ")

	require.NoError(t, err)
	assert.Equal(t, "Alice B", user.DisplayName)
	repo.AssertExpectations(t)
}

func TestUpdateDisplayName_RejectsBlank(t *testing.T) {
	repo := new(MockRepository)
	svc := identity.NewIdentityService(repo, nil)

	_, err := svc.UpdateDisplayName(context.Background(), "user-1", "   ")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateAvatar(t *testing.T) {
	repo := new(MockRepository)
	blobStore := &avatarBlobStore{}
	svc := identity.NewIdentityService(repo, blobs.NewBlobService(blobStore))

	wantURL := "https://blobs.test/avatars/user-1"
	repo.On("UpdateProfile", mock.Anything, "user-1", identity.ProfilePatch{AvatarURL: &wantURL}).
		Return(&identity.User{ID: "user-1", AvatarURL: wantURL}, nil)

	user, err := svc.UpdateAvatar(context.Background(), "user-1",
		blobs.FileUpload{Data: []byte("pic"), ContentType: "image/png"})

	require.NoError(t, err)
	assert.Equal(t, wantURL, user.AvatarURL)
	assert.Equal(t, 1, blobStore.uploads)
	repo.AssertExpectations(t)
}

func TestUpdateAvatar_RejectsNonImage(t *testing.T) {
	repo := new(MockRepository)
	blobStore := &avatarBlobStore{}
	svc := identity.NewIdentityService(repo, blobs.NewBlobService(blobStore))

	_, err := svc.UpdateAvatar(context.Background(), "user-1",
		blobs.FileUpload{Data: []byte("clip"), ContentType: "video/mp4"})

	assert.ErrorIs(t, err, blobs.ErrAvatarNotImage)
	assert.Zero(t, blobStore.uploads)
	repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}
