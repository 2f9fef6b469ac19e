package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"Lark/internal/core/identity"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB) identity.Repository {
	return &postgresUserRepo{db: db}
}

// Create inserts a new user into the users table.
func (r *postgresUserRepo) Create(ctx context.Context, user *identity.User) (*identity.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `
		INSERT INTO users (id, email, password_hash, display_name, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password_hash, display_name, avatar_url, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.DisplayName, user.AvatarURL).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.AvatarURL,
			&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "users_email_key") {
			return nil, identity.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*identity.User, error) {
	return r.getBy(ctx, "id", id)
}

// GetByEmail retrieves a user by email.
func (r *postgresUserRepo) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *postgresUserRepo) getBy(ctx context.Context, column, value string) (*identity.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, password_hash, display_name, avatar_url, created_at, updated_at
		FROM users WHERE %s = $1`, column)

	user := &identity.User{}
	err := r.db.QueryRowContext(ctx, query, value).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.AvatarURL,
			&user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, identity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	return user, nil
}

// UpdateProfile applies a partial profile update.
func (r *postgresUserRepo) UpdateProfile(ctx context.Context, id string, patch identity.ProfilePatch) (*identity.User, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}

	if patch.DisplayName != nil {
		args = append(args, *patch.DisplayName)
		sets = append(sets, fmt.Sprintf("display_name = $%d", len(args)))
	}
	if patch.AvatarURL != nil {
		args = append(args, *patch.AvatarURL)
		sets = append(sets, fmt.Sprintf("avatar_url = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE users SET %s WHERE id = $%d
		RETURNING id, email, password_hash, display_name, avatar_url, created_at, updated_at`,
		strings.Join(sets, ", "), len(args))

	user := &identity.User{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.AvatarURL,
			&user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, identity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}
