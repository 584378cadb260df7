package mirror

import (
	"context"
	"time"

	"github.com/dmitrijs2005/swappool/internal/logging"
	"github.com/dmitrijs2005/swappool/internal/pool"
	"github.com/sony/gobreaker"
)

const (
	defaultWriterQueue = 1024
	writeTimeout       = 5 * time.Second
)

// ContentSink is the part of Repository the Writer needs.
type ContentSink interface {
	UpsertContent(ctx context.Context, e pool.Entry) error
	MarkRemoved(ctx context.Context, id string, reason pool.RemovalReason, at time.Time) error
}

// BreakerSettings tune the circuit breaker around mirror writes.
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// Writer mirrors pool events into a ContentSink. It is a pool listener:
// HandleEvent never blocks, a full queue drops the event with a warning.
// While the breaker is open, writes are skipped rather than retried.
type Writer struct {
	sink    ContentSink
	queue   chan pool.Event
	breaker *gobreaker.CircuitBreaker
	logger  logging.Logger
}

func NewWriter(sink ContentSink, bs BreakerSettings, l logging.Logger) *Writer {
	w := &Writer{
		sink:   sink,
		queue:  make(chan pool.Event, defaultWriterQueue),
		logger: l.With("module", "mirror_writer"),
	}
	w.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mirror",
		MaxRequests: bs.MaxRequests,
		Interval:    bs.Interval,
		Timeout:     bs.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bs.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= bs.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			w.logger.Warn(context.Background(), "mirror circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	})
	return w
}

// State exposes the breaker state for health checks.
func (w *Writer) State() gobreaker.State { return w.breaker.State() }

func (w *Writer) HandleEvent(ev pool.Event) {
	select {
	case w.queue <- ev:
	default:
		w.logger.Warn(context.Background(), "mirror queue full, event dropped", "kind", string(ev.Kind), "content_id", ev.Entry.ID)
	}
}

// Run applies queued events until ctx is cancelled.
func (w *Writer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-w.queue:
			w.apply(ctx, ev)
		}
	}
}

func (w *Writer) apply(ctx context.Context, ev pool.Event) {
	_, err := w.breaker.Execute(func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, writeTimeout)
		defer cancel()

		if ev.Kind == pool.EventRemoved {
			// Make sure the row exists before stamping it; the added
			// event may have been dropped.
			if err := w.sink.UpsertContent(ctx, ev.Entry); err != nil {
				return nil, err
			}
			return nil, w.sink.MarkRemoved(ctx, ev.Entry.ID, ev.Reason, ev.At)
		}
		return nil, w.sink.UpsertContent(ctx, ev.Entry)
	})
	if err != nil {
		w.logger.Warn(ctx, "mirror write failed", "kind", string(ev.Kind), "content_id", ev.Entry.ID, "error", err)
	}
}
