package pool

import (
	"fmt"

	"github.com/dmitrijs2005/swappool/internal/common"
)

// Tier records how strict the selection that produced a Pick was.
type Tier int

const (
	// TierNone means nothing was eligible: the pool is exhausted for this
	// viewer and filter.
	TierNone Tier = iota
	// TierUnseen picked among eligible entries the viewer has not seen.
	TierUnseen
	// TierReset cleared the viewer's history because every eligible entry
	// had been seen, then picked among all of them.
	TierReset
)

func (t Tier) String() string {
	switch t {
	case TierUnseen:
		return "unseen"
	case TierReset:
		return "reset"
	default:
		return "none"
	}
}

// Pick is the result of GetRandom. An exhausted pick is an expected outcome,
// not an error: callers show "come back later" or retry with a broader
// filter.
type Pick struct {
	Entry Entry
	Tier  Tier
}

func (p Pick) Exhausted() bool { return p.Tier == TierNone }

// GetRandom hands viewerID one entry chosen uniformly at random among the
// entries it does not own that match mode, preferring ones it has not seen.
// The chosen entry is marked seen and its view counter incremented in the
// same critical section as the choice.
//
// An empty viewerID is an anonymous viewer: no history is kept for it, so
// every call picks among all eligible entries.
//
// Only an invalid mode produces an error.
func (p *Pool) GetRandom(viewerID string, mode FilterMode) (Pick, error) {
	if !mode.valid() {
		return Pick{}, fmt.Errorf("%w: unknown filter mode %q", common.ErrorValidation, mode)
	}

	p.mu.Lock()

	var eligible, unseen []*Entry
	for _, e := range p.entries {
		if e.OwnerID == viewerID || !mode.matches(e) {
			continue
		}
		eligible = append(eligible, e)
		if viewerID == "" || !p.history.HasSeen(viewerID, e.ID) {
			unseen = append(unseen, e)
		}
	}

	var (
		chosen *Entry
		tier   Tier
	)
	switch {
	case len(unseen) > 0:
		chosen, tier = unseen[p.rng.IntN(len(unseen))], TierUnseen
	case len(eligible) > 0:
		p.history.Reset(viewerID)
		chosen, tier = eligible[p.rng.IntN(len(eligible))], TierReset
	default:
		p.mu.Unlock()
		return Pick{}, nil
	}

	if viewerID != "" {
		p.history.MarkSeen(viewerID, chosen.ID)
	}
	chosen.ViewCount++
	out := *chosen
	ev := Event{Kind: EventViewed, Entry: out, ActorID: viewerID, At: p.now()}
	listeners := p.listeners
	p.mu.Unlock()

	dispatch(listeners, []Event{ev})
	return Pick{Entry: out, Tier: tier}, nil
}
