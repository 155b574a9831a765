package storage

import "sync"

// watchHub fans change notifications out to subscribers. Sends never block:
// a subscriber that stops draining its channel misses changes rather than
// stalling writers.
type watchHub struct {
	mu   sync.Mutex
	subs []chan Change
}

func (h *watchHub) subscribe() <-chan Change {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Change, 16)
	h.subs = append(h.subs, ch)
	return ch
}

func (h *watchHub) notify(c Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- c:
		default:
		}
	}
}
