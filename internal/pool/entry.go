// Package pool implements the content distribution pool: the in-memory
// registry of ephemeral uploads that are handed out to other viewers in
// exchange for their own submissions.
//
// A Pool owns two pieces of shared state, the entry map and the view
// history index, and guards both with a single mutex. Every read-modify-write
// sequence (selection, counters, owner mutations, expiry sweeps) runs as one
// critical section over both. Nothing inside the pool blocks on I/O;
// side effects such as the durable mirror or media cleanup are delivered to
// listeners after the lock has been released.
package pool

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/swappool/internal/common"
	"github.com/go-playground/validator/v10"
)

// MediaKind says how the referenced bytes should be rendered.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Entry is one ephemeral submission. Values returned by the pool are
// copies; changing them has no effect on the stored entry.
type Entry struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	OwnerDisplayName string    `json:"owner_display_name,omitempty"`
	MediaURL         string    `json:"media_url"`
	MediaKind        MediaKind `json:"media_kind"`
	Caption          string    `json:"caption,omitempty"`
	IsNSFW           bool      `json:"is_nsfw"`
	CreatedAt        time.Time `json:"created_at"`
	ViewCount        int64     `json:"view_count"`
	ReactionCount    int64     `json:"reaction_count"`
	CommentCount     int64     `json:"comment_count"`
	SaveForever      bool      `json:"save_forever"`
}

// expired reports whether e is older than ttl at now. An entry aged exactly
// ttl is still alive. Save-forever entries never expire.
func (e *Entry) expired(now time.Time, ttl time.Duration) bool {
	return !e.SaveForever && now.Sub(e.CreatedAt) > ttl
}

// NewEntry is the input of Pool.Add.
type NewEntry struct {
	OwnerID          string    `validate:"required,max=128"`
	OwnerDisplayName string    `validate:"max=64"`
	MediaURL         string    `validate:"required,url,max=2048"`
	MediaKind        MediaKind `validate:"required,oneof=image video"`
	Caption          string
	IsNSFW           bool
}

var validate = validator.New()

func (p *Pool) validateNewEntry(in NewEntry) error {
	if err := validate.Struct(in); err != nil {
		return validationError(err)
	}
	return p.validateCaption(in.Caption)
}

func (p *Pool) validateCaption(caption string) error {
	if n := utf8.RuneCountInString(caption); n > p.maxCaption {
		return fmt.Errorf("%w: caption is %d characters, at most %d allowed", common.ErrorValidation, n, p.maxCaption)
	}
	return nil
}

// validationError flattens validator field errors into one readable
// message wrapped around common.ErrorValidation.
func validationError(err error) error {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "url":
			msgs = append(msgs, field+" must be a URL")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(msgs, "; "))
}

func requireID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: content id is required", common.ErrorValidation)
	}
	return nil
}
