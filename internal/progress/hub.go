package progress

import "sync"

// subscriberBuffer bounds how far a slow subscriber may lag before snapshots are dropped.
const subscriberBuffer = 16

// Hub fans checklist snapshots out to subscribers keyed by presentation id.
// The most recent snapshot per presentation is retained for late subscribers.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[chan Snapshot]struct{}
	latest map[string]Snapshot
}

func NewHub() *Hub {
	return &Hub{
		subs:   make(map[string]map[chan Snapshot]struct{}),
		latest: make(map[string]Snapshot),
	}
}

// Subscribe returns a channel of snapshots for id and a cancel func that closes it.
// If a snapshot was already published it is delivered first; a finished run
// yields that final snapshot on an already closed channel.
func (h *Hub) Subscribe(id string) (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, subscriberBuffer)

	h.mu.Lock()
	if last, ok := h.latest[id]; ok {
		ch <- last
		if last.Done {
			h.mu.Unlock()
			close(ch)
			return ch, func() {}
		}
	}
	if h.subs[id] == nil {
		h.subs[id] = make(map[chan Snapshot]struct{})
	}
	h.subs[id][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if set, ok := h.subs[id]; ok {
				if _, ok := set[ch]; ok {
					delete(set, ch)
					close(ch)
				}
				if len(set) == 0 {
					delete(h.subs, id)
				}
			}
		})
	}
	return ch, cancel
}

// Publish delivers s to every subscriber of s.PresentationID without blocking.
// Intermediate snapshots are dropped for a lagging subscriber; a final snapshot
// evicts the oldest buffered one so it is always delivered, then closes the channel.
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest[s.PresentationID] = s
	for ch := range h.subs[s.PresentationID] {
		if s.Done {
			deliverFinal(ch, s)
			close(ch)
			continue
		}
		select {
		case ch <- s:
		default:
		}
	}

	if s.Done {
		delete(h.subs, s.PresentationID)
	}
}

// deliverFinal must be called with h.mu held; the hub is the only sender.
func deliverFinal(ch chan Snapshot, s Snapshot) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Latest returns the last snapshot published for id.
func (h *Hub) Latest(id string) (Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.latest[id]
	return s, ok
}

// Forget drops the retained snapshot for id.
func (h *Hub) Forget(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.latest, id)
}
