// Package media connects pool entries to object storage: it hands out
// presigned upload URLs, turns stored references into viewable URLs and
// removes objects once their entry has left the pool.
package media

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/swappool/internal/common"
	"github.com/dmitrijs2005/swappool/internal/pool"
	"github.com/google/uuid"
)

const (
	refScheme = "s3"

	DefaultUploadTTL = 15 * time.Minute
	DefaultViewTTL   = 15 * time.Minute
)

// ObjectStore is the subset of S3 used by Storage.
type ObjectStore interface {
	PresignPut(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error)
	PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

// Upload tells a client where to PUT its bytes and what to submit afterwards.
// The PUT must carry ContentType, it is part of the signature.
type Upload struct {
	Ref         string    `json:"ref"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Storage maps media references of the form s3://bucket/key onto one
// bucket. A Storage without a store is disabled: uploads are refused and
// references are returned unchanged.
type Storage struct {
	store     ObjectStore
	bucket    string
	uploadTTL time.Duration
	viewTTL   time.Duration
	now       func() time.Time
	newKey    func(kind pool.MediaKind, now time.Time) string
}

func NewStorage(store ObjectStore, bucket string) *Storage {
	return &Storage{
		store:     store,
		bucket:    bucket,
		uploadTTL: DefaultUploadTTL,
		viewTTL:   DefaultViewTTL,
		now:       time.Now,
		newKey:    randomKey,
	}
}

// Disabled returns a Storage for deployments without object storage.
func Disabled() *Storage {
	return &Storage{now: time.Now, newKey: randomKey}
}

func (s *Storage) Enabled() bool { return s.store != nil }

func randomKey(kind pool.MediaKind, d time.Time) string {
	return fmt.Sprintf("uploads/%s/%d/%02d/%02d/%v", kind, d.Year(), d.Month(), d.Day(), uuid.New())
}

func contentTypeFor(kind pool.MediaKind) string {
	switch kind {
	case pool.MediaImage:
		return "image/*"
	case pool.MediaVideo:
		return "video/*"
	default:
		return ""
	}
}

// PresignUpload reserves a fresh object key and returns a URL the client
// may PUT to until ExpiresAt.
func (s *Storage) PresignUpload(ctx context.Context, kind pool.MediaKind) (Upload, error) {
	if !s.Enabled() {
		return Upload{}, fmt.Errorf("%w: %w", common.ErrorValidation, common.ErrorMediaDisabled)
	}
	if kind != pool.MediaImage && kind != pool.MediaVideo {
		return Upload{}, fmt.Errorf("%w: unknown media kind %q", common.ErrorValidation, kind)
	}

	now := s.now()
	key := s.newKey(kind, now)

	contentType := contentTypeFor(kind)
	u, err := s.store.PresignPut(ctx, s.bucket, key, contentType, s.uploadTTL)
	if err != nil {
		return Upload{}, fmt.Errorf("presign upload: %w", err)
	}

	return Upload{Ref: s.ref(key), URL: u, ContentType: contentType, ExpiresAt: now.Add(s.uploadTTL)}, nil
}

func (s *Storage) ref(key string) string {
	return refScheme + "://" + s.bucket + "/" + key
}

// key extracts the object key from a reference into this bucket.
func (s *Storage) key(ref string) (string, bool) {
	rest, ok := strings.CutPrefix(ref, refScheme+"://"+s.bucket+"/")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

// CheckRef accepts http(s) URLs and, when enabled, references into this
// bucket. Anything else cannot be shown to a viewer.
func (s *Storage) CheckRef(ref string) error {
	u, err := url.Parse(ref)
	if err != nil {
		return fmt.Errorf("%w: bad media reference: %v", common.ErrorValidation, err)
	}
	switch u.Scheme {
	case "http", "https":
		return nil
	case refScheme:
		if s.Enabled() {
			if _, ok := s.key(ref); ok {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: media reference %q is not served here", common.ErrorValidation, ref)
}

// Resolve turns a stored reference into a URL a viewer can fetch.
// References into this bucket are presigned; anything else passes through.
func (s *Storage) Resolve(ctx context.Context, ref string) (string, error) {
	if !s.Enabled() {
		return ref, nil
	}
	key, ok := s.key(ref)
	if !ok {
		return ref, nil
	}
	u, err := s.store.PresignGet(ctx, s.bucket, key, s.viewTTL)
	if err != nil {
		return "", fmt.Errorf("presign view: %w", err)
	}
	return u, nil
}

// Remove deletes the object behind ref. References outside this bucket are
// ignored.
func (s *Storage) Remove(ctx context.Context, ref string) error {
	if !s.Enabled() {
		return nil
	}
	key, ok := s.key(ref)
	if !ok {
		return nil
	}
	return s.store.Delete(ctx, s.bucket, key)
}
