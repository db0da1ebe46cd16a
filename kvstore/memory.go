package kvstore

import (
	"context"
	"sort"
	"sync"
)

var _ Store = (*Memory)(nil)

// Memory is a process-local Store. Nothing survives a restart.
type Memory struct {
	values map[string]string
	lock   sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.values = make(map[string]string)
	return nil
}

// Keys returns the stored keys in sorted order
func (m *Memory) Keys() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
