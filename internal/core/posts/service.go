package posts

import (
	"context"
	"fmt"
	"log"
	"time"

	"Lark/internal/core/blobs"
)

type postService struct {
	store Store
	blobs blobs.Service
}

// NewPostService creates a new post lifecycle service.
func NewPostService(store Store, blobService blobs.Service) Service {
	return &postService{
		store: store,
		blobs: blobService,
	}
}

// CreatePost creates a new post with an optional attachment.
// Flow:
// 1. Validate body (1-200 chars) and, when present, the file (size, MIME)
// 2. Insert the record with createdDate = now
// 3. Upload the file to contents/{authorID}/{postID} and resolve its URL
// 4. Patch the record with the photo or video URL
// Steps 3-4 are sequential remote operations; a failure after the insert
// leaves the post published without an attachment link. That degraded
// state is accepted and not rolled back or retried.
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if err := ValidateBody(req.Body); err != nil {
		return nil, err
	}
	if req.AuthorID == "" {
		return nil, NewValidationError("userId", "authorID must be set from the authenticated session")
	}

	// Validate the file before any remote call so an oversized or
	// unsupported file never writes a record or consumes upload quota.
	if req.File != nil {
		if err := blobs.ValidateSize(*req.File); err != nil {
			return nil, err
		}
		if _, err := blobs.Classify(req.File.ContentType); err != nil {
			return nil, err
		}
	}

	rec := Record{
		Body:        req.Body,
		CreatedDate: time.Now().UnixMilli(),
		Username:    req.AuthorName,
		UserID:      req.AuthorID,
	}

	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	rec.ID = id

	post := FromRecord(rec)

	if req.File != nil {
		url, kind, err := s.blobs.UploadPostMedia(ctx, req.AuthorID, id, *req.File)
		if err != nil {
			// Post is already published; surface the body-only post.
			log.Printf("[POST-CREATE] Warning: attachment upload failed for post %s: %v", id, err)
			return &post, nil
		}

		if err := s.store.Update(ctx, id, attachmentPatch(kind, url)); err != nil {
			// Blob uploaded but never linked; the post stays text-only.
			log.Printf("[POST-CREATE] Warning: failed to link attachment for post %s: %v", id, err)
			return &post, nil
		}

		post.Attachment = &Attachment{Kind: kind, URL: url}
	}

	log.Printf("[POST-CREATE] Author: %s, Post: %s, Attachment: %v", req.AuthorID, id, post.Attachment != nil)
	return &post, nil
}

// UpdatePost edits a post's body and optionally replaces its attachment.
// Authorization is an identity equality check: a non-author edit is a
// silent no-op (the backend's own access rules are the real boundary).
// A replacement file must classify to the existing attachment's kind;
// a mismatch rejects the whole edit before any upload.
func (s *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	if err := ValidateBody(req.Body); err != nil {
		return nil, err
	}

	rec, err := s.store.Get(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if rec.UserID != req.ActorID {
		existing := FromRecord(*rec)
		return &existing, nil
	}

	patch := RecordPatch{Body: &req.Body}
	var replacement *Attachment

	if req.File != nil {
		if err := blobs.ValidateSize(*req.File); err != nil {
			return nil, err
		}
		kind, err := blobs.Classify(req.File.ContentType)
		if err != nil {
			return nil, err
		}
		if existing := rec.AttachmentKind(); existing != "" && existing != kind {
			return nil, ErrAttachmentKindMismatch
		}

		url, kind, err := s.blobs.UploadPostMedia(ctx, rec.UserID, rec.ID, *req.File)
		if err != nil {
			return nil, fmt.Errorf("failed to replace attachment: %w", err)
		}

		patch = attachmentPatch(kind, url)
		patch.Body = &req.Body
		replacement = &Attachment{Kind: kind, URL: url}
	}

	if err := s.store.Update(ctx, req.PostID, patch); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	updated := FromRecord(*rec)
	updated.Body = req.Body
	if replacement != nil {
		updated.Attachment = replacement
	}

	log.Printf("[POST-UPDATE] Author: %s, Post: %s, Replaced: %v", req.ActorID, req.PostID, replacement != nil)
	return &updated, nil
}

// DeletePost removes a post record and then its attachment blob.
// Both removals are independent best-effort operations: a blob-removal
// failure after the record is gone leaves an orphaned blob, accepted as
// an out-of-band cleanup concern.
func (s *postService) DeletePost(ctx context.Context, postID, actorID string) error {
	rec, err := s.store.Get(ctx, postID)
	if err != nil {
		return err
	}

	if rec.UserID != actorID {
		return nil
	}

	if err := s.store.Remove(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if rec.AttachmentKind() != "" {
		if err := s.blobs.RemovePostMedia(ctx, rec.UserID, rec.ID); err != nil {
			log.Printf("[POST-DELETE] Warning: orphaned blob for post %s: %v", postID, err)
		}
	}

	log.Printf("[POST-DELETE] Author: %s, Post: %s", actorID, postID)
	return nil
}

// GetPost retrieves a single post by ID.
func (s *postService) GetPost(ctx context.Context, postID string) (*Post, error) {
	rec, err := s.store.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	post := FromRecord(*rec)
	return &post, nil
}

// attachmentPatch builds the partial update that links an attachment URL
// under the field matching its kind, clearing the other field.
func attachmentPatch(kind blobs.Kind, url string) RecordPatch {
	empty := ""
	if kind == blobs.KindImage {
		return RecordPatch{Photo: &url, Video: &empty}
	}
	return RecordPatch{Photo: &empty, Video: &url}
}
