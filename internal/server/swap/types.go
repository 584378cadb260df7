package swap

import (
	"context"

	"github.com/dmitrijs2005/swappool/internal/pool"
	"github.com/dmitrijs2005/swappool/internal/server/media"
	"github.com/dmitrijs2005/swappool/internal/server/mirror"
)

// Media is implemented by *media.Storage.
type Media interface {
	PresignUpload(ctx context.Context, kind pool.MediaKind) (media.Upload, error)
	CheckRef(ref string) error
	Resolve(ctx context.Context, ref string) (string, error)
}

// Ledger remembers which viewer reacted to which content.
type Ledger interface {
	RecordReaction(ctx context.Context, contentID, viewerID string) (bool, error)
	ListLiked(ctx context.Context, viewerID string) ([]mirror.LikedContent, error)
}

// CommentStore keeps comment bodies. The pool only counts them.
type CommentStore interface {
	AddComment(ctx context.Context, contentID, authorID, body string) (mirror.Comment, error)
	ListComments(ctx context.Context, contentID string) ([]mirror.Comment, error)
}

// StatsStore reports lifetime owner numbers. Optional.
type StatsStore interface {
	OwnerStats(ctx context.Context, ownerID string) (mirror.OwnerStats, error)
}

// Observer records selection outcomes. Optional.
type Observer interface {
	ObserveSelection(tier pool.Tier, fallback bool)
}

// Upload is what a client submits after its bytes are stored.
type Upload struct {
	OwnerDisplayName string         `json:"owner_display_name,omitempty"`
	MediaRef         string         `json:"media_ref"`
	MediaKind        pool.MediaKind `json:"media_kind"`
	Caption          string         `json:"caption,omitempty"`
	IsNSFW           bool           `json:"is_nsfw"`
}

// View is one piece of content handed to a viewer, with a fetchable URL.
// An exhausted view carries no entry and a message to show instead.
type View struct {
	Entry        pool.Entry `json:"entry"`
	Tier         string     `json:"tier"`
	FallbackUsed bool       `json:"fallback_used"`
	Exhausted    bool       `json:"exhausted"`
	Message      string     `json:"message,omitempty"`
}

// SwapResult pairs the viewer's own stored upload with what they got back.
type SwapResult struct {
	Submitted pool.Entry `json:"submitted"`
	Received  View       `json:"received"`
}

// Reaction is the outcome of React. Counted is false when the viewer had
// already reacted and the counter was left alone.
type Reaction struct {
	Entry   pool.Entry `json:"entry"`
	Counted bool       `json:"counted"`
}

// Uploads is the owner's page: live entries plus lifetime numbers.
type Uploads struct {
	Entries []pool.Entry      `json:"entries"`
	Stats   mirror.OwnerStats `json:"stats"`
}
