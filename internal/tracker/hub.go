package tracker

import "sync"

// Hub is an in-process pub/sub for snapshot fanout to live viewers.
// Delivery is best-effort with bounded per-subscriber buffers: a message
// for a subscriber whose buffer is full is dropped, so one slow viewer
// never stalls publish for the others. Nothing is replayed to late
// subscribers.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[*Subscription]struct{}
	buf    int
}

type Subscription struct {
	C     chan Snapshot
	topic string
}

func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 8
	}
	return &Hub{
		topics: make(map[string]map[*Subscription]struct{}),
		buf:    bufferSize,
	}
}

func (h *Hub) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		C:     make(chan Snapshot, h.buf),
		topic: topic,
	}
	h.mu.Lock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes the subscription and closes its channel. Safe to
// call more than once.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	if subs, ok := h.topics[sub.topic]; ok {
		if _, registered := subs[sub]; registered {
			delete(subs, sub)
			close(sub.C)
		}
		if len(subs) == 0 {
			delete(h.topics, sub.topic)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) Publish(topic string, payload Snapshot) {
	h.mu.Lock()
	for sub := range h.topics[topic] {
		select {
		case sub.C <- payload:
		default:
			// drop for lagging subscriber; next publish catches it up
		}
	}
	h.mu.Unlock()
}
