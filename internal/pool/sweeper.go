package pool

import (
	"context"
	"time"
)

// Sweep evicts every entry older than the TTL that is not marked
// save-forever, pruning each from all view histories. It returns how many
// entries were removed.
func (p *Pool) Sweep() int {
	p.mu.Lock()
	events := p.sweepLocked(p.now())
	listeners := p.listeners
	p.mu.Unlock()

	dispatch(listeners, events)
	return len(events)
}

// sweepLocked does the eviction while the caller holds p.mu. Each entry is
// removed from the store and the history index together or not at all.
func (p *Pool) sweepLocked(now time.Time) []Event {
	var events []Event
	for _, e := range p.entries {
		if e.expired(now, p.ttl) {
			events = append(events, p.removeLocked(e, RemovedExpired, "", now))
		}
	}
	return events
}

// Run sweeps every interval until ctx is cancelled. Intervals under one
// second are raised to one second.
func (p *Pool) Run(ctx context.Context, interval time.Duration) {
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := p.Sweep(); n > 0 {
				p.logger.Info(ctx, "evicted expired content", "count", n)
			}
		}
	}
}
