package kvstore

import "sync"

// Locks serializes read-modify-write cycles per namespace. Entries are freed
// once no goroutine holds or waits on them.
type Locks struct {
	mu sync.Mutex
	m  map[string]*nsLock
}

type nsLock struct {
	mu   sync.Mutex
	refs int
}

func NewLocks() *Locks {
	return &Locks{m: make(map[string]*nsLock)}
}

// Lock blocks until ns is free and returns the matching unlock.
func (l *Locks) Lock(ns string) (unlock func()) {
	l.mu.Lock()
	e, ok := l.m[ns]
	if !ok {
		e = &nsLock{}
		l.m[ns] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, ns)
		}
		l.mu.Unlock()
	}
}

func (l *Locks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}
