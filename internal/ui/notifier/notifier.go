// Package notifier fans store changes out to connected browser streams.
package notifier

import (
	"sync"

	"github.com/leapstack-labs/projectboard/internal/project"
)

// Notifier pings every subscribed stream when the board changes. A ping
// carries no data: streams re-read the list views they render.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
	onCount   func(int)
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithSubscriberHook calls fn with the new subscriber count after every
// subscribe or unsubscribe.
func WithSubscriberHook(fn func(int)) Option {
	return func(n *Notifier) {
		n.onCount = fn
	}
}

// New creates a Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Subscribe returns a channel that receives a ping after each change.
// Callers must Unsubscribe when the stream ends.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	count := len(n.listeners)
	n.mu.Unlock()
	n.report(count)
	return ch
}

// Unsubscribe removes and closes ch.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.listeners, ch)
	count := len(n.listeners)
	n.mu.Unlock()
	close(ch)
	n.report(count)
}

// Broadcast pings every subscriber without blocking. A subscriber that has
// not consumed its previous ping is skipped; it will render the latest state
// when it does.
func (n *Notifier) Broadcast() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of open streams.
func (n *Notifier) Subscribers() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Listener adapts the notifier to a store listener. Register it after the
// list views so streams read views that already hold the new snapshot.
func (n *Notifier) Listener() project.Listener {
	return func([]project.Record) {
		n.Broadcast()
	}
}

func (n *Notifier) report(count int) {
	if n.onCount != nil {
		n.onCount(count)
	}
}
