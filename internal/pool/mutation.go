package pool

import "github.com/dmitrijs2005/swappool/internal/common"

// AddReaction increments the reaction counter of id. Deduplicating "this
// viewer already reacted" is the caller's job.
func (p *Pool) AddReaction(id, actorID string) (Entry, error) {
	return p.bump(id, actorID, EventReacted, func(e *Entry) { e.ReactionCount++ })
}

// AddComment increments the comment counter of id.
func (p *Pool) AddComment(id, actorID string) (Entry, error) {
	return p.bump(id, actorID, EventCommented, func(e *Entry) { e.CommentCount++ })
}

// DeleteContent removes id on behalf of its owner and prunes it from every
// view history.
func (p *Pool) DeleteContent(id, callerID string) error {
	if err := requireID(id); err != nil {
		return err
	}

	p.mu.Lock()
	e, ok := p.entries[id]
	if !ok {
		p.mu.Unlock()
		return common.ErrorNotFound
	}
	if e.OwnerID != callerID {
		p.mu.Unlock()
		return common.ErrorUnauthorized
	}
	ev := p.removeLocked(e, RemovedByOwner, callerID, p.now())
	listeners := p.listeners
	p.mu.Unlock()

	dispatch(listeners, []Event{ev})
	return nil
}

// SetSaveForever toggles the TTL exemption of id.
func (p *Pool) SetSaveForever(id, callerID string, value bool) (Entry, error) {
	return p.ownerUpdate(id, callerID, func(e *Entry) { e.SaveForever = value })
}

// UpdateCaption replaces the caption of id.
func (p *Pool) UpdateCaption(id, callerID, caption string) (Entry, error) {
	if err := p.validateCaption(caption); err != nil {
		return Entry{}, err
	}
	return p.ownerUpdate(id, callerID, func(e *Entry) { e.Caption = caption })
}

// UpdateNSFW changes the NSFW flag of id.
func (p *Pool) UpdateNSFW(id, callerID string, value bool) (Entry, error) {
	return p.ownerUpdate(id, callerID, func(e *Entry) { e.IsNSFW = value })
}

func (p *Pool) bump(id, actorID string, kind EventKind, apply func(*Entry)) (Entry, error) {
	if err := requireID(id); err != nil {
		return Entry{}, err
	}

	p.mu.Lock()
	e, ok := p.entries[id]
	if !ok {
		p.mu.Unlock()
		return Entry{}, common.ErrorNotFound
	}
	apply(e)
	out := *e
	ev := Event{Kind: kind, Entry: out, ActorID: actorID, At: p.now()}
	listeners := p.listeners
	p.mu.Unlock()

	dispatch(listeners, []Event{ev})
	return out, nil
}

func (p *Pool) ownerUpdate(id, callerID string, apply func(*Entry)) (Entry, error) {
	if err := requireID(id); err != nil {
		return Entry{}, err
	}

	p.mu.Lock()
	e, ok := p.entries[id]
	if !ok {
		p.mu.Unlock()
		return Entry{}, common.ErrorNotFound
	}
	if e.OwnerID != callerID {
		p.mu.Unlock()
		return Entry{}, common.ErrorUnauthorized
	}
	apply(e)
	out := *e
	ev := Event{Kind: EventUpdated, Entry: out, ActorID: callerID, At: p.now()}
	listeners := p.listeners
	p.mu.Unlock()

	dispatch(listeners, []Event{ev})
	return out, nil
}
