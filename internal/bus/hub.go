package bus

import "sync"

// Hub keeps one Bus per session namespace.
type Hub struct {
	mu    sync.Mutex
	buses map[string]*Bus

	// OnPublish, when set, observes every local publish (metrics).
	OnPublish func(ns string, subscribers int)
}

func NewHub() *Hub {
	return &Hub{buses: make(map[string]*Bus)}
}

// Subscribe registers h on the namespace bus. The bus is dropped once its
// last subscriber leaves.
func (h *Hub) Subscribe(ns string, fn Handler) (unsubscribe func()) {
	h.mu.Lock()
	b, ok := h.buses[ns]
	if !ok {
		b = New()
		h.buses[ns] = b
	}
	unsub := b.Subscribe(fn)
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			unsub()
			if b.Len() == 0 && h.buses[ns] == b {
				delete(h.buses, ns)
			}
		})
	}
}

func (h *Hub) Publish(ns string) {
	h.mu.Lock()
	b := h.buses[ns]
	h.mu.Unlock()

	n := 0
	if b != nil {
		n = b.Len()
		b.Publish()
	}
	if h.OnPublish != nil {
		h.OnPublish(ns, n)
	}
}

// Subscribers counts handlers across all namespaces.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, b := range h.buses {
		n += b.Len()
	}
	return n
}
