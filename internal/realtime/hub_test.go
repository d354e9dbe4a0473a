package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drained(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return false
	default:
		return true
	}
}

func TestPublishReachesScopedSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(TopicBillings, 5)
	defer cancel()

	hub.Publish(TopicBillings, 5)

	require.False(t, drained(ch), "expected a change signal")
}

func TestPublishIsScopedByUser(t *testing.T) {
	hub := NewHub()

	mine, cancelMine := hub.Subscribe(TopicBillings, 5)
	defer cancelMine()
	theirs, cancelTheirs := hub.Subscribe(TopicBillings, 6)
	defer cancelTheirs()

	hub.Publish(TopicBillings, 5)

	assert.False(t, drained(mine))
	assert.True(t, drained(theirs), "other user's watcher must not be signalled")
}

func TestPublishIsScopedByTopic(t *testing.T) {
	hub := NewHub()

	billings, cancelBillings := hub.Subscribe(TopicBillings, 5)
	defer cancelBillings()
	complaints, cancelComplaints := hub.Subscribe(TopicComplaints, 5)
	defer cancelComplaints()

	hub.Publish(TopicComplaints, 5)

	assert.True(t, drained(billings))
	assert.False(t, drained(complaints))
}

func TestPublishCoalescesPendingSignals(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(TopicVehicles, 5)
	defer cancel()

	// Three rapid changes collapse into one pending signal; the watcher
	// re-reads the full snapshot anyway.
	hub.Publish(TopicVehicles, 5)
	hub.Publish(TopicVehicles, 5)
	hub.Publish(TopicVehicles, 5)

	assert.False(t, drained(ch))
	assert.True(t, drained(ch), "signals must coalesce into a single pending one")
}

func TestPublishToBroadcastScope(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(TopicAnnouncements, BroadcastScope)
	defer cancel()

	hub.Publish(TopicAnnouncements, BroadcastScope)

	assert.False(t, drained(ch))
}

func TestCancelledSubscriptionStopsReceiving(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(TopicBillings, 5)
	cancel()

	hub.Publish(TopicBillings, 5)

	assert.True(t, drained(ch))
}

func TestPublishWithoutSubscribersIsHarmless(t *testing.T) {
	hub := NewHub()

	assert.NotPanics(t, func() {
		hub.Publish(TopicBillings, 5)
	})
}
