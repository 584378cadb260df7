package media

import (
	"context"

	"github.com/dmitrijs2005/swappool/internal/logging"
	"github.com/dmitrijs2005/swappool/internal/pool"
)

const defaultJanitorQueue = 256

// Janitor deletes stored objects of entries that left the pool. It is a
// pool listener: HandleEvent only enqueues, Run does the deleting.
type Janitor struct {
	storage *Storage
	queue   chan string
	logger  logging.Logger
}

func NewJanitor(s *Storage, l logging.Logger) *Janitor {
	return &Janitor{
		storage: s,
		queue:   make(chan string, defaultJanitorQueue),
		logger:  l.With("module", "media_janitor"),
	}
}

func (j *Janitor) HandleEvent(ev pool.Event) {
	if ev.Kind != pool.EventRemoved {
		return
	}
	if _, ok := j.storage.key(ev.Entry.MediaURL); !ok {
		return
	}
	select {
	case j.queue <- ev.Entry.MediaURL:
	default:
		j.logger.Warn(context.Background(), "janitor queue full, object left behind", "ref", ev.Entry.MediaURL)
	}
}

// Run deletes queued objects until ctx is cancelled. Failures are logged
// and skipped.
func (j *Janitor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ref := <-j.queue:
			if err := j.storage.Remove(ctx, ref); err != nil {
				j.logger.Warn(ctx, "failed to delete media object", "ref", ref, "error", err)
				continue
			}
			j.logger.Debug(ctx, "deleted media object", "ref", ref)
		}
	}
}
