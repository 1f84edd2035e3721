package auth

import "sync"

type EventType string

const (
	EventSignedIn       EventType = "signed_in"
	EventSignedOut      EventType = "signed_out"
	EventTokenRefreshed EventType = "token_refreshed"
)

// Event describes one auth-state transition for a user.
type Event struct {
	Type   EventType `json:"type"`
	UserId string    `json:"user_id"`
	Email  string    `json:"email,omitempty"`
}

// Notifier fans auth-state changes out to subscribers. Subscriptions are
// long-lived; callers must call the returned unsubscribe func on teardown
// or the channel leaks.
type Notifier struct {
	mu     sync.Mutex
	nextId int
	subs   map[int]chan Event
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Event)}
}

// Subscribe returns a channel of auth events and a func that removes the
// subscription and closes the channel.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextId
	n.nextId++
	ch := make(chan Event, 16)
	n.subs[id] = ch

	unsubscribe := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if sub, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// Publish delivers the event to every live subscriber. A subscriber that
// stopped draining its channel is skipped rather than blocking the rest.
func (n *Notifier) Publish(event Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
