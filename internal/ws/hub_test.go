package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe()
	b := hub.Subscribe()

	hub.Publish("call-status-update", map[string]any{"callSid": "CA1"})

	for _, sub := range []Subscriber{a, b} {
		ev := <-sub
		assert.Equal(t, "call-status-update", ev.Type)
	}
}

func TestHubSkipsFullSubscriber(t *testing.T) {
	hub := NewHub()
	slow := hub.Subscribe()

	// overflow the buffer; publish must not block
	for i := 0; i < 100; i++ {
		hub.Publish("tick", i)
	}

	assert.Len(t, slow, cap(slow), "buffer full, extra events dropped")
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()
	require.Equal(t, 1, hub.Subscribers())

	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.Subscribers())

	_, open := <-sub
	assert.False(t, open)

	// double unsubscribe is harmless
	assert.NotPanics(t, func() { hub.Unsubscribe(sub) })
}
