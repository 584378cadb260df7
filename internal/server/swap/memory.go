package swap

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/swappool/internal/pool"
	"github.com/dmitrijs2005/swappool/internal/server/mirror"
	"github.com/google/uuid"
)

// MemoryLedger is the Ledger used when no database is configured. It
// forgets a content's reactions when the content leaves the pool.
type MemoryLedger struct {
	mu       sync.Mutex
	byViewer map[string][]mirror.LikedContent
	now      func() time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{byViewer: make(map[string][]mirror.LikedContent), now: time.Now}
}

func (l *MemoryLedger) RecordReaction(_ context.Context, contentID, viewerID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	liked := l.byViewer[viewerID]
	if slices.ContainsFunc(liked, func(c mirror.LikedContent) bool { return c.ContentID == contentID }) {
		return false, nil
	}
	l.byViewer[viewerID] = append(liked, mirror.LikedContent{ContentID: contentID, LikedAt: l.now()})
	return true, nil
}

// ListLiked returns ids only, most recent first; the service fills in the
// content details.
func (l *MemoryLedger) ListLiked(_ context.Context, viewerID string) ([]mirror.LikedContent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := slices.Clone(l.byViewer[viewerID])
	slices.Reverse(out)
	if out == nil {
		out = make([]mirror.LikedContent, 0)
	}
	return out, nil
}

func (l *MemoryLedger) HandleEvent(ev pool.Event) {
	if ev.Kind != pool.EventRemoved {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for viewer, liked := range l.byViewer {
		liked = slices.DeleteFunc(liked, func(c mirror.LikedContent) bool { return c.ContentID == ev.Entry.ID })
		if len(liked) == 0 {
			delete(l.byViewer, viewer)
			continue
		}
		l.byViewer[viewer] = liked
	}
}

// MemoryComments is the CommentStore used when no database is configured.
type MemoryComments struct {
	mu        sync.Mutex
	byContent map[string][]mirror.Comment
	now       func() time.Time
	newID     func() string
}

func NewMemoryComments() *MemoryComments {
	return &MemoryComments{byContent: make(map[string][]mirror.Comment), now: time.Now, newID: uuid.NewString}
}

func (m *MemoryComments) AddComment(_ context.Context, contentID, authorID, body string) (mirror.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := mirror.Comment{ID: m.newID(), ContentID: contentID, AuthorID: authorID, Body: body, CreatedAt: m.now()}
	m.byContent[contentID] = append(m.byContent[contentID], c)
	return c, nil
}

func (m *MemoryComments) ListComments(_ context.Context, contentID string) ([]mirror.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := slices.Clone(m.byContent[contentID])
	if out == nil {
		out = make([]mirror.Comment, 0)
	}
	return out, nil
}

func (m *MemoryComments) HandleEvent(ev pool.Event) {
	if ev.Kind != pool.EventRemoved {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byContent, ev.Entry.ID)
}
