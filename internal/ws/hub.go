package ws

import "sync"

// Event is one realtime frame pushed to browser clients.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type Subscriber chan Event

// Hub fans events out to every connected client. Delivery is best effort:
// a subscriber with a full buffer is skipped, a disconnected client simply
// misses events. There is no replay.
type Hub struct {
	mu   sync.RWMutex
	subs []Subscriber
}

func NewHub() *Hub {
	return &Hub{}
}

func (h *Hub) Publish(topic string, data any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ev := Event{Type: topic, Data: data}
	for _, sub := range h.subs {
		select {
		case sub <- ev:
		default:
		}
	}
}

func (h *Hub) Subscribe() Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(Subscriber, 32)
	h.subs = append(h.subs, ch)
	return ch
}

func (h *Hub) Unsubscribe(sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, s := range h.subs {
		if s == sub {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			close(s)
			break
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
