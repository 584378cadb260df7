package pool

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/swappool/internal/common"
	"github.com/dmitrijs2005/swappool/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultTTL              = 24 * time.Hour
	DefaultMaxHistory       = 1000
	DefaultMaxCaptionLength = 200
)

// Options configure a Pool. Zero values fall back to the defaults above;
// a negative MaxHistory disables the per-viewer cap.
type Options struct {
	TTL              time.Duration
	MaxHistory       int
	MaxCaptionLength int
	Logger           logging.Logger

	// Now and RandSource exist for deterministic tests.
	Now        func() time.Time
	RandSource rand.Source
}

// Pool is the content distribution pool. Construct one per process with
// New and share it by pointer.
type Pool struct {
	mu        sync.RWMutex
	entries   map[string]*Entry
	history   *History
	rng       *rand.Rand
	listeners []Listener

	ttl        time.Duration
	maxCaption int
	now        func() time.Time
	newID      func() string
	logger     logging.Logger
}

func New(opts Options) *Pool {
	p := &Pool{
		entries:    make(map[string]*Entry),
		history:    NewHistory(DefaultMaxHistory),
		ttl:        DefaultTTL,
		maxCaption: DefaultMaxCaptionLength,
		now:        time.Now,
		newID:      uuid.NewString,
		logger:     logging.Nop(),
	}
	if opts.TTL > 0 {
		p.ttl = opts.TTL
	}
	if opts.MaxHistory != 0 {
		p.history = NewHistory(opts.MaxHistory)
	}
	if opts.MaxCaptionLength > 0 {
		p.maxCaption = opts.MaxCaptionLength
	}
	if opts.Now != nil {
		p.now = opts.Now
	}
	if opts.Logger != nil {
		p.logger = opts.Logger.With("module", "pool")
	}
	if opts.RandSource != nil {
		p.rng = rand.New(opts.RandSource)
	} else {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return p
}

// Subscribe registers l for all subsequent events.
func (p *Pool) Subscribe(l Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

// TTL returns the configured time-to-live.
func (p *Pool) TTL() time.Duration { return p.ttl }

// Add stores a new entry owned by in.OwnerID and returns it. Expired entries
// are swept in the same critical section.
func (p *Pool) Add(in NewEntry) (Entry, error) {
	if err := p.validateNewEntry(in); err != nil {
		return Entry{}, err
	}

	p.mu.Lock()
	now := p.now()
	events := p.sweepLocked(now)

	id := p.newID()
	for p.entries[id] != nil {
		id = p.newID()
	}
	e := &Entry{
		ID:               id,
		OwnerID:          in.OwnerID,
		OwnerDisplayName: in.OwnerDisplayName,
		MediaURL:         in.MediaURL,
		MediaKind:        in.MediaKind,
		Caption:          in.Caption,
		IsNSFW:           in.IsNSFW,
		CreatedAt:        now,
	}
	p.entries[id] = e
	out := *e
	events = append(events, Event{Kind: EventAdded, Entry: out, ActorID: in.OwnerID, At: now})
	listeners := p.listeners
	p.mu.Unlock()

	dispatch(listeners, events)
	return out, nil
}

// GetByID returns the entry with the given id or common.ErrorNotFound.
func (p *Pool) GetByID(id string) (Entry, error) {
	if err := requireID(id); err != nil {
		return Entry{}, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entries[id]
	if !ok {
		return Entry{}, common.ErrorNotFound
	}
	return *e, nil
}

// ListByOwner returns the live entries of ownerID, newest first.
func (p *Pool) ListByOwner(ownerID string) []Entry {
	p.mu.RLock()
	out := make([]Entry, 0)
	for _, e := range p.entries {
		if e.OwnerID == ownerID {
			out = append(out, *e)
		}
	}
	p.mu.RUnlock()

	slices.SortFunc(out, func(a, b Entry) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Stats is a point-in-time summary used by metrics and health checks.
type Stats struct {
	Entries     int `json:"entries"`
	NSFW        int `json:"nsfw"`
	SaveForever int `json:"save_forever"`
	Viewers     int `json:"viewers"`
}

func (p *Pool) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := Stats{Entries: len(p.entries), Viewers: p.history.Viewers()}
	for _, e := range p.entries {
		if e.IsNSFW {
			s.NSFW++
		}
		if e.SaveForever {
			s.SaveForever++
		}
	}
	return s
}

// HasSeen reports whether viewerID has id on record in the view history.
func (p *Pool) HasSeen(viewerID, id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.history.HasSeen(viewerID, id)
}

// removeLocked drops e from the store and prunes it from every history.
// Callers hold p.mu.
func (p *Pool) removeLocked(e *Entry, reason RemovalReason, actorID string, now time.Time) Event {
	delete(p.entries, e.ID)
	p.history.PruneID(e.ID)
	return Event{Kind: EventRemoved, Entry: *e, ActorID: actorID, Reason: reason, At: now}
}

func dispatch(listeners []Listener, events []Event) {
	for _, ev := range events {
		for _, l := range listeners {
			l.HandleEvent(ev)
		}
	}
}
