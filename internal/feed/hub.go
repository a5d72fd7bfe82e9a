package feed

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_reporting_system/internal/metrics"
	"github.com/shenikar/emergency_reporting_system/internal/models"
)

// Hub is the live subscription endpoint of the incident store. It holds the
// current snapshot ordered by timestamp descending (seq descending on ties)
// and pushes the full updated snapshot to every subscriber on each insert.
// Snapshot-replace keeps delivery simple: a skipped intermediate snapshot is
// harmless because the next one supersedes it entirely.
//
// Only the store-side bridge mutates the snapshot; subscriptions are
// read-only and independent of each other.
type Hub struct {
	mu          sync.RWMutex
	snapshot    []*models.Incident
	seen        map[uuid.UUID]struct{}
	subscribers map[uint64]chan []*models.Incident
	nextID      atomic.Uint64
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		seen:        make(map[uuid.UUID]struct{}),
		subscribers: make(map[uint64]chan []*models.Incident),
	}
}

// Subscribe registers a new feed subscription and delivers the current
// snapshot immediately. The channel carries the latest snapshot only: if the
// subscriber lags, older snapshots are replaced, never queued up.
func (h *Hub) Subscribe() (uint64, <-chan []*models.Incident) {
	id := h.nextID.Add(1)
	ch := make(chan []*models.Incident, 1)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return id, ch
	}
	h.subscribers[id] = ch
	ch <- h.snapshot
	h.mu.Unlock()

	metrics.FeedSubscribers.Inc()
	return id, ch
}

// Unsubscribe cancels one subscription; all others are unaffected.
func (h *Hub) Unsubscribe(id uint64) {
	h.mu.Lock()
	ch, ok := h.subscribers[id]
	if ok {
		close(ch)
		delete(h.subscribers, id)
	}
	h.mu.Unlock()

	if ok {
		metrics.FeedSubscribers.Dec()
	}
}

// Reset seeds the snapshot from the store (startup, or catch-up after a
// missed event) and pushes it to all subscribers.
func (h *Hub) Reset(incidents []*models.Incident) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.snapshot = incidents
	h.seen = make(map[uuid.UUID]struct{}, len(incidents))
	for _, inc := range incidents {
		h.seen[inc.ID] = struct{}{}
	}
	h.push()
}

// Insert places one created incident into the ordered snapshot and pushes
// the updated snapshot out. A redelivered event for an already known ID is
// dropped so no subscriber ever sees a duplicate record.
func (h *Hub) Insert(incident *models.Incident) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, dup := h.seen[incident.ID]; dup {
		return
	}
	h.seen[incident.ID] = struct{}{}

	idx := len(h.snapshot)
	for i, existing := range h.snapshot {
		if older(existing, incident) {
			idx = i
			break
		}
	}

	next := make([]*models.Incident, 0, len(h.snapshot)+1)
	next = append(next, h.snapshot[:idx]...)
	next = append(next, incident)
	next = append(next, h.snapshot[idx:]...)
	h.snapshot = next

	h.push()
}

// older reports whether a sorts after b in the feed (a is older than b).
func older(a, b *models.Incident) bool {
	if a.Timestamp.Equal(b.Timestamp) {
		return a.Seq < b.Seq
	}
	return a.Timestamp.Before(b.Timestamp)
}

// push delivers the current snapshot to every subscriber, replacing an
// undelivered older snapshot if the subscriber is slow. Callers hold h.mu.
func (h *Hub) push() {
	for _, ch := range h.subscribers {
		select {
		case ch <- h.snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- h.snapshot:
			default:
			}
		}
		metrics.FeedSnapshotsDelivered.Inc()
	}
}

// Snapshot returns the current ordered snapshot.
func (h *Hub) Snapshot() []*models.Incident {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshot
}

// Close terminates all subscriptions, causing streams to exit gracefully.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, id)
		metrics.FeedSubscribers.Dec()
	}
}
