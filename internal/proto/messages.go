// Package proto defines the wire messages and the gRPC service
// description of swappool.v1.SwapService, shared by server and client.
// Messages travel as JSON through Codec.
package proto

import "time"

type Empty struct{}

type StartSessionRequest struct {
	// DeviceSecret identifies a returning device. Empty starts a one-shot
	// anonymous session.
	DeviceSecret string `json:"device_secret,omitempty"`
}

type Session struct {
	UserID      string    `json:"user_id"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

type RequestUploadRequest struct {
	MediaKind string `json:"media_kind" validate:"required,oneof=image video"`
}

// UploadSlot is a presigned PUT. The request must send ContentType.
type UploadSlot struct {
	Ref         string    `json:"ref"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type SubmitRequest struct {
	OwnerDisplayName string `json:"owner_display_name,omitempty" validate:"max=64"`
	MediaRef         string `json:"media_ref" validate:"required"`
	MediaKind        string `json:"media_kind" validate:"required,oneof=image video"`
	Caption          string `json:"caption,omitempty"`
	IsNSFW           bool   `json:"is_nsfw"`
}

// Selection carries the viewer's filter. Filter wins over the legacy
// ShowNSFW switch; with neither set the filter is "sfw".
type Selection struct {
	Filter   string `json:"filter,omitempty"`
	ShowNSFW *bool  `json:"show_nsfw,omitempty"`
}

type SwapRequest struct {
	SubmitRequest
	Selection
}

type NextRequest struct {
	Selection
}

type Content struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	OwnerDisplayName string    `json:"owner_display_name,omitempty"`
	MediaURL         string    `json:"media_url"`
	MediaKind        string    `json:"media_kind"`
	Caption          string    `json:"caption,omitempty"`
	IsNSFW           bool      `json:"is_nsfw"`
	CreatedAt        time.Time `json:"created_at"`
	ViewCount        int64     `json:"view_count"`
	ReactionCount    int64     `json:"reaction_count"`
	CommentCount     int64     `json:"comment_count"`
	SaveForever      bool      `json:"save_forever"`
}

type View struct {
	Content      *Content `json:"content,omitempty"`
	Tier         string   `json:"tier"`
	FallbackUsed bool     `json:"fallback_used"`
	Exhausted    bool     `json:"exhausted"`
	Message      string   `json:"message,omitempty"`
}

type SwapResponse struct {
	Submitted *Content `json:"submitted"`
	Received  *View    `json:"received"`
}

type ContentRequest struct {
	ContentID string `json:"content_id" validate:"required"`
}

type ContentResponse struct {
	Content *Content `json:"content"`
}

type ReactResponse struct {
	Content *Content `json:"content"`
	Counted bool     `json:"counted"`
}

type CommentRequest struct {
	ContentID string `json:"content_id" validate:"required"`
	Body      string `json:"body" validate:"required"`
}

type Comment struct {
	ID        string    `json:"id"`
	ContentID string    `json:"content_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentResponse struct {
	Comment *Comment `json:"comment"`
}

type ListCommentsResponse struct {
	Comments []*Comment `json:"comments"`
}

type SetFlagRequest struct {
	ContentID string `json:"content_id" validate:"required"`
	Value     bool   `json:"value"`
}

type UpdateCaptionRequest struct {
	ContentID string `json:"content_id" validate:"required"`
	Caption   string `json:"caption"`
}

type OwnerStats struct {
	Uploads   int64 `json:"uploads"`
	Views     int64 `json:"views"`
	Reactions int64 `json:"reactions"`
	Comments  int64 `json:"comments"`
}

type MyUploadsResponse struct {
	Contents []*Content  `json:"contents"`
	Stats    *OwnerStats `json:"stats"`
}

type LikedItem struct {
	ContentID string    `json:"content_id"`
	MediaURL  string    `json:"media_url"`
	MediaKind string    `json:"media_kind"`
	Caption   string    `json:"caption,omitempty"`
	LikedAt   time.Time `json:"liked_at"`
	Removed   bool      `json:"removed"`
}

type LikedResponse struct {
	Items []*LikedItem `json:"items"`
}
