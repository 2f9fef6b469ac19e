package feed

import "Lark/internal/core/posts"

// DefaultLimit is the size of the most-recent window a feed observes.
const DefaultLimit = 25

// Options selects what a feed subscription observes.
type Options struct {
	// AuthorID restricts the feed to a single author (profile view).
	// Empty observes all authors (home view).
	AuthorID string

	// Limit caps the number of posts in each snapshot. Zero means DefaultLimit.
	Limit int
}

// Snapshot is the feed view model: an ordered window of the most recent
// posts, newest first. Every delivery fully replaces the previous one;
// there is no diffing or merging, the latest snapshot is authoritative.
type Snapshot struct {
	Posts []posts.Post `json:"posts"`
}
