package realtime

import (
	"sync"
)

// Topic names one watched collection
type Topic string

// Watchable collections
const (
	TopicBillings      Topic = "billings"
	TopicComplaints    Topic = "complaints"
	TopicMaintenance   Topic = "maintenance_requests"
	TopicVehicles      Topic = "vehicles"
	TopicNotifications Topic = "notifications"
	TopicAnnouncements Topic = "announcements"
)

// BroadcastScope subscribes to changes that are not scoped to a single user,
// such as announcements.
const BroadcastScope uint = 0

type subscriptionKey struct {
	topic  Topic
	userID uint
}

// Hub fans change signals out to snapshot watchers. A signal carries no
// payload: every watcher re-reads its own scoped result set and pushes the
// full snapshot, so the last snapshot always wins.
type Hub struct {
	mu   sync.RWMutex
	subs map[subscriptionKey]map[chan struct{}]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		subs: make(map[subscriptionKey]map[chan struct{}]struct{}),
	}
}

// Subscribe registers a watcher for one (topic, user) scope. The returned
// cancel function must be called exactly once, when the watcher goes away.
func (h *Hub) Subscribe(topic Topic, userID uint) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	key := subscriptionKey{topic: topic, userID: userID}

	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[chan struct{}]struct{})
	}
	h.subs[key][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[key]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, key)
			}
		}
		h.mu.Unlock()
	}

	return ch, cancel
}

// Publish signals every watcher of the (topic, user) scope. Sends never
// block: a watcher that already has a pending signal will re-read the full
// snapshot anyway, so additional signals coalesce.
func (h *Hub) Publish(topic Topic, userID uint) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[subscriptionKey{topic: topic, userID: userID}] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
