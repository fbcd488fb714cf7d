package catalog

import "sync"

// Latest guards against out-of-order responses: only the newest Begin wins.
// Lookups for an older selection that finish late are dropped.
type Latest[K comparable] struct {
	mu  sync.Mutex
	seq uint64
	key K
}

type Ticket[K comparable] struct {
	seq uint64
	Key K
}

func (l *Latest[K]) Begin(key K) Ticket[K] {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.key = key
	return Ticket[K]{seq: l.seq, Key: key}
}

// Accept reports whether t is still the newest ticket.
func (l *Latest[K]) Accept(t Ticket[K]) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return t.seq == l.seq
}

func (l *Latest[K]) Current() K {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.key
}
