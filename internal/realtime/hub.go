// Package realtime delivers full-state snapshots to subscribed clients.
//
// Consumers register interest in a record key and receive an Event carrying
// the complete new state on every change; there is no diffing. A subscriber
// that is torn down must call its unsubscribe function or the registration
// stays live indefinitely.
package realtime

import "sync"

// Event is one push to subscribers of a key. Payload is the full snapshot
// of the record set identified by Key; Kind says which set it is.
type Event struct {
	Key     string      `json:"key"`
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload"`
}

// Subscriber channels are buffered; a subscriber that falls this far behind
// starts losing events rather than blocking publishers.
const subscriberBuffer = 16

// GroupKey is the subscription key for a group's member and expense snapshots.
func GroupKey(groupID string) string {
	return "group:" + groupID
}

// UserKey is the subscription key for a user's pending-invitation snapshots.
func UserKey(userID string) string {
	return "user:" + userID
}

// Hub fans events out to subscribers by key.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers interest in a key. The returned function releases the
// subscription and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(key string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[chan Event]struct{})
	}
	h.subs[key][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[key], ch)
			if len(h.subs[key]) == 0 {
				delete(h.subs, key)
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, unsubscribe
}

// Publish sends an event to every subscriber of the key. Sends never block:
// a full subscriber buffer drops the event for that subscriber, which is
// acceptable because the next publish carries the full state again.
func (h *Hub) Publish(key, kind string, payload interface{}) {
	ev := Event{Key: key, Kind: kind, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[key] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount reports how many subscribers a key currently has.
func (h *Hub) SubscriberCount(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[key])
}
