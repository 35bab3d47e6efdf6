package status

import (
	"context"
	"sync"
	"time"
)

// Hub keeps the latest snapshot and fans it out to subscribers. Publish is
// called from the UI goroutine, subscribers may live on any goroutine.
type Hub struct {
	mu     sync.Mutex
	latest Snapshot
	subs   map[int]chan Snapshot
	nextID int
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Snapshot)}
}

// Publish stores the snapshot and offers it to every subscriber. Subscribers
// that are not ready miss intermediate values but always receive a newer one.
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = s
	for _, ch := range h.subs {
		select {
		case ch <- s:
		default:
			// drop the stale value and offer the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}

// Latest returns the most recently published snapshot
func (h *Hub) Latest() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Subscribe returns a channel receiving published snapshots and a cancel
// function that closes it.
func (h *Hub) Subscribe() (<-chan Snapshot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan Snapshot, 1)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers returns the number of active subscriptions
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Poll calls source every interval and hands the result to sink until ctx
// is done. The first value is delivered immediately.
func Poll(ctx context.Context, interval time.Duration, source func() Snapshot, sink func(Snapshot)) {
	if interval <= 0 {
		interval = time.Second
	}
	sink(source())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sink(source())
		}
	}
}
