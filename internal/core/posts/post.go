package posts

import (
	"time"
	"unicode/utf8"

	"Lark/internal/core/blobs"
)

// MaxBodyLength is the inclusive upper bound on post body length, in runes.
const MaxBodyLength = 200

// Attachment is a post's optional media. A post has zero or one attachment;
// the kind is fixed once set and can only be replaced by media of the same kind.
type Attachment struct {
	Kind blobs.Kind `json:"kind"`
	URL  string     `json:"url"`
}

// Post is the domain view of a single content entry.
type Post struct {
	ID         string      `json:"postId"`
	AuthorID   string      `json:"userId"`
	AuthorName string      `json:"username"`
	Body       string      `json:"post"`
	CreatedAt  time.Time   `json:"createdAt"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// Record is the flat wire shape persisted in the document store.
// Field names are the stored contract and must not change: post,
// createdDate (ms since epoch), username, userId, and photo XOR video
// (empty string means absent).
type Record struct {
	ID          string `json:"postId"`
	Body        string `json:"post"`
	CreatedDate int64  `json:"createdDate"`
	Username    string `json:"username"`
	UserID      string `json:"userId"`
	Photo       string `json:"photo,omitempty"`
	Video       string `json:"video,omitempty"`
}

// RecordPatch is a partial update applied to a stored record.
// Nil fields are left untouched.
type RecordPatch struct {
	Body  *string
	Photo *string
	Video *string
}

// Query selects the most recent records, optionally filtered to one author.
type Query struct {
	Limit    int
	AuthorID string // empty matches all authors
}

// CreatePostRequest is the input for creating a post.
type CreatePostRequest struct {
	AuthorID   string
	AuthorName string
	Body       string
	File       *blobs.FileUpload
}

// UpdatePostRequest is the input for editing a post.
type UpdatePostRequest struct {
	PostID  string
	ActorID string
	Body    string
	File    *blobs.FileUpload
}

// FromRecord maps a stored record to its domain form.
// When both photo and video are somehow set the photo wins; the store
// never writes both, so this only guards against hand-edited data.
func FromRecord(rec Record) Post {
	p := Post{
		ID:         rec.ID,
		AuthorID:   rec.UserID,
		AuthorName: rec.Username,
		Body:       rec.Body,
		CreatedAt:  time.UnixMilli(rec.CreatedDate),
	}
	switch {
	case rec.Photo != "":
		p.Attachment = &Attachment{Kind: blobs.KindImage, URL: rec.Photo}
	case rec.Video != "":
		p.Attachment = &Attachment{Kind: blobs.KindVideo, URL: rec.Video}
	}
	return p
}

// AttachmentKind returns the record's attachment kind, or "" when it has none.
func (r Record) AttachmentKind() blobs.Kind {
	switch {
	case r.Photo != "":
		return blobs.KindImage
	case r.Video != "":
		return blobs.KindVideo
	default:
		return ""
	}
}

// ValidateBody enforces the 1-200 character body constraint.
func ValidateBody(body string) error {
	if body == "" {
		return NewValidationError("post", "body is required")
	}
	if utf8.RuneCountInString(body) > MaxBodyLength {
		return NewValidationError("post", "body exceeds 200 characters")
	}
	return nil
}
