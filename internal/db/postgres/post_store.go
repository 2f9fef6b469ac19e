package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"Lark/internal/core/posts"
)

type postgresPostStore struct {
	db  *sql.DB
	dsn string // reused by live-query listeners
}

// NewPostStore creates a PostgreSQL-backed document store for post records.
// The DSN is kept because each live subscription opens its own LISTEN
// connection separate from the pooled one.
func NewPostStore(db *sql.DB, dsn string) posts.Store {
	return &postgresPostStore{db: db, dsn: dsn}
}

// Insert persists a new record and returns the assigned ID.
func (s *postgresPostStore) Insert(ctx context.Context, rec posts.Record) (string, error) {
	id := uuid.NewString()

	query := `
		INSERT INTO contents (id, post, created_date, username, user_id, photo, video)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		id, rec.Body, rec.CreatedDate, rec.Username, rec.UserID, rec.Photo, rec.Video)
	if err != nil {
		return "", fmt.Errorf("failed to insert record: %w", err)
	}

	return id, nil
}

// Get retrieves a record by ID.
func (s *postgresPostStore) Get(ctx context.Context, id string) (*posts.Record, error) {
	query := `
		SELECT id, post, created_date, username, user_id, photo, video
		FROM contents WHERE id = $1`

	rec := &posts.Record{}
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&rec.ID, &rec.Body, &rec.CreatedDate, &rec.Username, &rec.UserID, &rec.Photo, &rec.Video)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return rec, nil
}

// Update applies a partial update. Nil patch fields are left untouched.
func (s *postgresPostStore) Update(ctx context.Context, id string, patch posts.RecordPatch) error {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)

	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("post", patch.Body)
	add("photo", patch.Photo)
	add("video", patch.Video)

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE contents SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return posts.ErrNotFound
	}

	return nil
}

// Remove deletes a record. Removing a missing record is not an error.
func (s *postgresPostStore) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM contents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to remove record: %w", err)
	}
	return nil
}

// QueryRecent returns the most recent records, newest first.
func (s *postgresPostStore) QueryRecent(ctx context.Context, q posts.Query) ([]posts.Record, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 25
	}

	query := `
		SELECT id, post, created_date, username, user_id, photo, video
		FROM contents`
	args := []interface{}{}
	if q.AuthorID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, q.AuthorID)
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY created_date DESC LIMIT $%d`, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	recs := []posts.Record{}
	for rows.Next() {
		var rec posts.Record
		if err := rows.Scan(&rec.ID, &rec.Body, &rec.CreatedDate, &rec.Username, &rec.UserID, &rec.Photo, &rec.Video); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading records: %w", err)
	}

	return recs, nil
}
