// Package bus broadcasts a payload-free "collections changed" signal.
// Subscribers react by re-reading the store; the signal itself carries nothing.
package bus

import "sync"

type Handler func()

// Publisher notifies every subscriber of a session namespace.
type Publisher interface {
	Publish(ns string)
}

type Bus struct {
	mu   sync.RWMutex
	next uint64
	subs map[uint64]Handler
}

func New() *Bus {
	return &Bus{subs: make(map[uint64]Handler)}
}

// Subscribe registers h and returns its unsubscribe func. Calling the
// returned func more than once is a no-op.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = h
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish calls every handler registered at the time of the call.
// Handlers run on the caller's goroutine and must not block.
func (b *Bus) Publish() {
	b.mu.RLock()
	hs := make([]Handler, 0, len(b.subs))
	for _, h := range b.subs {
		hs = append(hs, h)
	}
	b.mu.RUnlock()

	for _, h := range hs {
		h()
	}
}

func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
