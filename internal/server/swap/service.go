// Package swap implements the user-facing flows on top of the pool:
// requesting an upload slot, submitting, swapping, browsing, reacting,
// commenting and the owner's tools.
package swap

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/swappool/internal/common"
	"github.com/dmitrijs2005/swappool/internal/logging"
	"github.com/dmitrijs2005/swappool/internal/pool"
	"github.com/dmitrijs2005/swappool/internal/server/media"
	"github.com/dmitrijs2005/swappool/internal/server/mirror"
)

const MaxCommentLength = 500

// Options wire the optional collaborators. Nil Ledger and Comments fall
// back to in-memory stores subscribed to the pool.
type Options struct {
	Media               Media
	Ledger              Ledger
	Comments            CommentStore
	Stats               StatsStore
	Observer            Observer
	AllowFilterFallback bool
	Logger              logging.Logger
}

type Service struct {
	pool          *pool.Pool
	media         Media
	ledger        Ledger
	comments      CommentStore
	stats         StatsStore
	observer      Observer
	allowFallback bool
	logger        logging.Logger
}

func NewService(p *pool.Pool, opts Options) *Service {
	s := &Service{
		pool:          p,
		media:         opts.Media,
		ledger:        opts.Ledger,
		comments:      opts.Comments,
		stats:         opts.Stats,
		observer:      opts.Observer,
		allowFallback: opts.AllowFilterFallback,
		logger:        logging.Nop(),
	}
	if opts.Logger != nil {
		s.logger = opts.Logger.With("module", "swap")
	}
	if s.media == nil {
		s.media = media.Disabled()
	}
	if s.ledger == nil {
		l := NewMemoryLedger()
		p.Subscribe(l)
		s.ledger = l
	}
	if s.comments == nil {
		c := NewMemoryComments()
		p.Subscribe(c)
		s.comments = c
	}
	return s
}

func requireCaller(id string) error {
	if id == "" {
		return common.ErrorUnauthorized
	}
	return nil
}

// RequestUpload reserves object storage for ownerID's next upload.
func (s *Service) RequestUpload(ctx context.Context, ownerID string, kind pool.MediaKind) (media.Upload, error) {
	if err := requireCaller(ownerID); err != nil {
		return media.Upload{}, err
	}
	up, err := s.media.PresignUpload(ctx, kind)
	if err != nil {
		return media.Upload{}, err
	}
	s.logger.Debug(ctx, "upload slot issued", "owner_id", ownerID, "ref", up.Ref)
	return up, nil
}

// Submit adds ownerID's upload to the pool.
func (s *Service) Submit(ctx context.Context, ownerID string, up Upload) (pool.Entry, error) {
	if err := requireCaller(ownerID); err != nil {
		return pool.Entry{}, err
	}
	if err := s.media.CheckRef(up.MediaRef); err != nil {
		return pool.Entry{}, err
	}

	e, err := s.pool.Add(pool.NewEntry{
		OwnerID:          ownerID,
		OwnerDisplayName: up.OwnerDisplayName,
		MediaURL:         up.MediaRef,
		MediaKind:        up.MediaKind,
		Caption:          up.Caption,
		IsNSFW:           up.IsNSFW,
	})
	if err != nil {
		return pool.Entry{}, err
	}

	s.logger.Info(ctx, "content submitted", "content_id", e.ID, "kind", string(e.MediaKind), "nsfw", e.IsNSFW)
	return s.resolve(ctx, e)
}

// Swap submits up and hands back something from somebody else.
func (s *Service) Swap(ctx context.Context, ownerID string, up Upload, mode pool.FilterMode) (SwapResult, error) {
	mode, err := pool.ParseFilterMode(string(mode))
	if err != nil {
		return SwapResult{}, err
	}
	submitted, err := s.Submit(ctx, ownerID, up)
	if err != nil {
		return SwapResult{}, err
	}
	received, err := s.Next(ctx, ownerID, mode)
	if err != nil {
		return SwapResult{}, err
	}
	return SwapResult{Submitted: submitted, Received: received}, nil
}

// Next picks content for viewerID. An empty viewerID browses anonymously.
// When the requested filter is exhausted and fallback is enabled, it tries
// once more with FilterAll.
func (s *Service) Next(ctx context.Context, viewerID string, mode pool.FilterMode) (View, error) {
	pick, err := s.pool.GetRandom(viewerID, mode)
	if err != nil {
		return View{}, err
	}

	fallback := false
	if pick.Exhausted() && s.allowFallback && mode != pool.FilterAll {
		pick, err = s.pool.GetRandom(viewerID, pool.FilterAll)
		if err != nil {
			return View{}, err
		}
		fallback = !pick.Exhausted()
	}

	if s.observer != nil {
		s.observer.ObserveSelection(pick.Tier, fallback)
	}

	if pick.Exhausted() {
		s.logger.Debug(ctx, "pool exhausted for viewer", "mode", string(mode))
		return View{Tier: pick.Tier.String(), Exhausted: true, Message: common.ExhaustedMessage}, nil
	}

	e, err := s.resolve(ctx, pick.Entry)
	if err != nil {
		return View{}, err
	}
	return View{Entry: e, Tier: pick.Tier.String(), FallbackUsed: fallback}, nil
}

// React counts viewerID's reaction once per content.
func (s *Service) React(ctx context.Context, id, viewerID string) (Reaction, error) {
	if err := requireCaller(viewerID); err != nil {
		return Reaction{}, err
	}
	current, err := s.pool.GetByID(id)
	if err != nil {
		return Reaction{}, err
	}

	first, err := s.ledger.RecordReaction(ctx, id, viewerID)
	if err != nil {
		return Reaction{}, fmt.Errorf("record reaction: %w", err)
	}
	if !first {
		return Reaction{Entry: current, Counted: false}, nil
	}

	e, err := s.pool.AddReaction(id, viewerID)
	if err != nil {
		return Reaction{}, err
	}
	return Reaction{Entry: e, Counted: true}, nil
}

func validateCommentBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	n := utf8.RuneCountInString(body)
	switch {
	case n == 0:
		return "", fmt.Errorf("%w: comment is empty", common.ErrorValidation)
	case n > MaxCommentLength:
		return "", fmt.Errorf("%w: comment is %d characters, at most %d allowed", common.ErrorValidation, n, MaxCommentLength)
	}
	return body, nil
}

// Comment stores body and bumps the entry's comment counter.
func (s *Service) Comment(ctx context.Context, id, authorID, body string) (mirror.Comment, error) {
	if err := requireCaller(authorID); err != nil {
		return mirror.Comment{}, err
	}
	body, err := validateCommentBody(body)
	if err != nil {
		return mirror.Comment{}, err
	}
	if _, err := s.pool.GetByID(id); err != nil {
		return mirror.Comment{}, err
	}

	c, err := s.comments.AddComment(ctx, id, authorID, body)
	if err != nil {
		return mirror.Comment{}, fmt.Errorf("store comment: %w", err)
	}
	if _, err := s.pool.AddComment(id, authorID); err != nil {
		return mirror.Comment{}, err
	}
	return c, nil
}

// Comments lists the comments of a live entry.
func (s *Service) Comments(ctx context.Context, id string) ([]mirror.Comment, error) {
	if _, err := s.pool.GetByID(id); err != nil {
		return nil, err
	}
	return s.comments.ListComments(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id, callerID string) error {
	if err := s.pool.DeleteContent(id, callerID); err != nil {
		return err
	}
	s.logger.Info(ctx, "content deleted by owner", "content_id", id)
	return nil
}

func (s *Service) SetSaveForever(ctx context.Context, id, callerID string, value bool) (pool.Entry, error) {
	e, err := s.pool.SetSaveForever(id, callerID, value)
	if err != nil {
		return pool.Entry{}, err
	}
	return s.resolve(ctx, e)
}

func (s *Service) UpdateCaption(ctx context.Context, id, callerID, caption string) (pool.Entry, error) {
	e, err := s.pool.UpdateCaption(id, callerID, caption)
	if err != nil {
		return pool.Entry{}, err
	}
	return s.resolve(ctx, e)
}

func (s *Service) UpdateNSFW(ctx context.Context, id, callerID string, value bool) (pool.Entry, error) {
	e, err := s.pool.UpdateNSFW(id, callerID, value)
	if err != nil {
		return pool.Entry{}, err
	}
	return s.resolve(ctx, e)
}

// MyUploads lists ownerID's live entries. Lifetime stats come from the
// mirror when there is one, otherwise they cover live entries only.
func (s *Service) MyUploads(ctx context.Context, ownerID string) (Uploads, error) {
	if err := requireCaller(ownerID); err != nil {
		return Uploads{}, err
	}

	entries := s.pool.ListByOwner(ownerID)
	var stats mirror.OwnerStats
	for i := range entries {
		e, err := s.resolve(ctx, entries[i])
		if err != nil {
			return Uploads{}, err
		}
		entries[i] = e
		stats.Uploads++
		stats.Views += e.ViewCount
		stats.Reactions += e.ReactionCount
		stats.Comments += e.CommentCount
	}

	if s.stats != nil {
		lifetime, err := s.stats.OwnerStats(ctx, ownerID)
		if err != nil {
			s.logger.Warn(ctx, "owner stats unavailable, using live entries", "error", err)
		} else {
			stats = lifetime
		}
	}

	return Uploads{Entries: entries, Stats: stats}, nil
}

// Liked lists what viewerID reacted to. Entries still in the pool are
// filled from it; the rest are flagged removed.
func (s *Service) Liked(ctx context.Context, viewerID string) ([]mirror.LikedContent, error) {
	if err := requireCaller(viewerID); err != nil {
		return nil, err
	}
	liked, err := s.ledger.ListLiked(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list liked: %w", err)
	}

	for i := range liked {
		e, err := s.pool.GetByID(liked[i].ContentID)
		if err != nil {
			liked[i].Removed = true
			continue
		}
		e, err = s.resolve(ctx, e)
		if err != nil {
			return nil, err
		}
		liked[i].MediaURL = e.MediaURL
		liked[i].MediaKind = string(e.MediaKind)
		liked[i].Caption = e.Caption
		liked[i].Removed = false
	}
	return liked, nil
}

// resolve swaps the stored media reference for a URL the client can fetch.
func (s *Service) resolve(ctx context.Context, e pool.Entry) (pool.Entry, error) {
	u, err := s.media.Resolve(ctx, e.MediaURL)
	if err != nil {
		return pool.Entry{}, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	e.MediaURL = u
	return e, nil
}
