package pool

import "container/list"

// History is the view history index: per viewer, the content ids already
// shown. Each viewer keeps at most max ids; past that the oldest one is
// forgotten and becomes eligible again. max <= 0 means unbounded.
//
// A reverse index (content id -> viewers) lets PruneID run in time
// proportional to the number of viewers who saw the id.
//
// History is not safe for concurrent use. Pool serializes all access.
type History struct {
	max     int
	viewers map[string]*seenList
	seenBy  map[string]map[string]struct{}
}

type seenList struct {
	order *list.List // oldest first
	index map[string]*list.Element
}

func NewHistory(max int) *History {
	return &History{
		max:     max,
		viewers: make(map[string]*seenList),
		seenBy:  make(map[string]map[string]struct{}),
	}
}

func (h *History) HasSeen(viewerID, id string) bool {
	s, ok := h.viewers[viewerID]
	if !ok {
		return false
	}
	_, ok = s.index[id]
	return ok
}

// MarkSeen records that viewerID was shown id. Repeated calls are no-ops.
func (h *History) MarkSeen(viewerID, id string) {
	s, ok := h.viewers[viewerID]
	if !ok {
		s = &seenList{order: list.New(), index: make(map[string]*list.Element)}
		h.viewers[viewerID] = s
	}
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = s.order.PushBack(id)

	viewers, ok := h.seenBy[id]
	if !ok {
		viewers = make(map[string]struct{})
		h.seenBy[id] = viewers
	}
	viewers[viewerID] = struct{}{}

	for h.max > 0 && s.order.Len() > h.max {
		oldest := s.order.Remove(s.order.Front()).(string)
		delete(s.index, oldest)
		h.unlink(oldest, viewerID)
	}
}

// Reset forgets everything viewerID has seen.
func (h *History) Reset(viewerID string) {
	s, ok := h.viewers[viewerID]
	if !ok {
		return
	}
	for id := range s.index {
		h.unlink(id, viewerID)
	}
	delete(h.viewers, viewerID)
}

// PruneID removes id from every viewer's history.
func (h *History) PruneID(id string) {
	for viewerID := range h.seenBy[id] {
		s := h.viewers[viewerID]
		if el, ok := s.index[id]; ok {
			s.order.Remove(el)
			delete(s.index, id)
		}
		if s.order.Len() == 0 {
			delete(h.viewers, viewerID)
		}
	}
	delete(h.seenBy, id)
}

// Len returns how many ids viewerID currently has on record.
func (h *History) Len(viewerID string) int {
	if s, ok := h.viewers[viewerID]; ok {
		return s.order.Len()
	}
	return 0
}

// Viewers returns the number of viewers with a non-empty history.
func (h *History) Viewers() int { return len(h.viewers) }

func (h *History) unlink(id, viewerID string) {
	viewers, ok := h.seenBy[id]
	if !ok {
		return
	}
	delete(viewers, viewerID)
	if len(viewers) == 0 {
		delete(h.seenBy, id)
	}
}
