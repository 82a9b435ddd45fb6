// Package authevents fans out sign-in/sign-out notifications to in-process
// subscribers (login-history recording, cache invalidation, and anything
// else that needs to observe identity changes without being on the request
// path).
package authevents

import (
	"sync"
	"time"

	"github.com/edunaija/edunaija/internal/app/system/auth"
)

// Event types.
const (
	SignedIn  = "signed_in"
	SignedOut = "signed_out"
)

// Event describes one identity change. User is nil for sign-out events.
type Event struct {
	Type   string
	User   *auth.SessionUser
	Method string // "password" or "google" for sign-ins
	At     time.Time
}

// Hub is a subscription registry. The zero value is not usable; call New.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]func(Event)
	nextID int
	last   *Event
}

// New returns an empty hub.
func New() *Hub {
	return &Hub{subs: make(map[int]func(Event))}
}

// Subscribe registers cb and returns the function that cancels the
// subscription. The most recent event, if any, is delivered immediately so
// a late subscriber starts from the current identity state.
//
// Callbacks run synchronously on the publishing goroutine; long work should
// be handed off by the subscriber.
func (h *Hub) Subscribe(cb func(Event)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = cb
	last := h.last
	h.mu.Unlock()

	if last != nil {
		cb(*last)
	}

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Publish records evt as the current state and delivers it to every
// subscriber.
func (h *Hub) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}

	h.mu.Lock()
	h.last = &evt
	cbs := make([]func(Event), 0, len(h.subs))
	for _, cb := range h.subs {
		cbs = append(cbs, cb)
	}
	h.mu.Unlock()

	for _, cb := range cbs {
		cb(evt)
	}
}

// SignIn publishes a sign-in event for u.
func (h *Hub) SignIn(u *auth.SessionUser, method string) {
	h.Publish(Event{Type: SignedIn, User: u, Method: method})
}

// SignOut publishes a sign-out event. u may be nil when the session had
// already expired.
func (h *Hub) SignOut(u *auth.SessionUser) {
	h.Publish(Event{Type: SignedOut, User: u})
}
