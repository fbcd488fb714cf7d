package kvstore

import (
	"context"
	"sync"
)

type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]string)}
}

func (m *Memory) Get(_ context.Context, ns, key string) (string, bool, error) {
	if ns == "" {
		return "", false, ErrNoNamespace
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[ns][key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, ns, key, value string) error {
	if ns == "" {
		return ErrNoNamespace
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, ok := m.data[ns]
	if !ok {
		bucket = make(map[string]string)
		m.data[ns] = bucket
	}
	bucket[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, ns string, keys ...string) error {
	if ns == "" {
		return ErrNoNamespace
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket := m.data[ns]
	for _, k := range keys {
		delete(bucket, k)
	}
	if len(bucket) == 0 {
		delete(m.data, ns)
	}
	return nil
}
