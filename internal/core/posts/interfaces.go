package posts

import "context"

// Store is the document-store client for post records.
// Implemented by internal/db/postgres; tests substitute mocks.
type Store interface {
	// Insert persists a new record and returns the store-assigned ID.
	Insert(ctx context.Context, rec Record) (string, error)

	// Get retrieves a record by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// Update applies a partial update to an existing record.
	Update(ctx context.Context, id string, patch RecordPatch) error

	// Remove deletes a record. Removing a missing record is not an error.
	Remove(ctx context.Context, id string) error

	// QueryRecent returns the most recent records ordered by createdDate
	// descending, limited and optionally filtered by the query.
	QueryRecent(ctx context.Context, q Query) ([]Record, error)

	// Subscribe establishes a live query. onChange receives the full
	// current result set immediately and again after every change to the
	// matched set; each delivery is authoritative replacement state.
	// The returned subscription must be closed exactly once; a defensive
	// double-close is a no-op.
	Subscribe(ctx context.Context, q Query, onChange func([]Record)) (Subscription, error)
}

// Subscription is a live query handle. After Close returns, the
// subscription's callback is never invoked again. Close must not be
// called from inside the callback.
type Subscription interface {
	Close() error
}

// Service is the post lifecycle manager: the complete set of operations
// for one post from creation through edit to deletion. It holds no state
// of its own; every operation is parameterized by the acting user.
type Service interface {
	// CreatePost validates and persists a new post, uploading and linking
	// the optional attachment afterwards. A failure to link an uploaded
	// attachment leaves the post published without one.
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// UpdatePost edits a post's body and optionally replaces its
	// attachment. Edits by non-authors are silent no-ops. A replacement
	// file of a different kind than the existing attachment rejects the
	// whole edit with no partial write.
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*Post, error)

	// DeletePost removes a post and best-effort removes its attachment
	// blob. Deletes by non-authors are silent no-ops.
	DeletePost(ctx context.Context, postID, actorID string) error

	// GetPost retrieves a single post by ID.
	GetPost(ctx context.Context, postID string) (*Post, error)
}
