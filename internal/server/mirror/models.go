// Package mirror keeps a durable copy of pool activity in PostgreSQL:
// content rows, one reaction per viewer and content, and comment bodies.
// The pool stays authoritative for serving; the mirror is written after
// the fact and may lag or miss writes while the database is unavailable.
package mirror

import "time"

// Comment is one comment left on a content entry.
type Comment struct {
	ID        string    `json:"id"`
	ContentID string    `json:"content_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// LikedContent is a content row a viewer reacted to.
type LikedContent struct {
	ContentID string    `json:"content_id"`
	MediaURL  string    `json:"media_url"`
	MediaKind string    `json:"media_kind"`
	Caption   string    `json:"caption,omitempty"`
	LikedAt   time.Time `json:"liked_at"`
	Removed   bool      `json:"removed"`
}

// OwnerStats aggregates the lifetime numbers of one uploader, including
// content that has already left the pool.
type OwnerStats struct {
	Uploads   int64 `json:"uploads"`
	Views     int64 `json:"views"`
	Reactions int64 `json:"reactions"`
	Comments  int64 `json:"comments"`
}
