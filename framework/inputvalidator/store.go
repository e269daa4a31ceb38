package inputvalidator

import (
	"context"
	"maps"
	"sync"
)

// InputStore keeps the last validated input per validator name.
type InputStore interface {
	Put(ctx context.Context, name string, input map[string]string) error
	Get(ctx context.Context, name string) (map[string]string, bool, error)
}

// MemoryInputStore is a process-local InputStore.
type MemoryInputStore struct {
	mu     sync.RWMutex
	inputs map[string]map[string]string
}

func NewMemoryInputStore() *MemoryInputStore {
	return &MemoryInputStore{inputs: make(map[string]map[string]string)}
}

func (m *MemoryInputStore) Put(_ context.Context, name string, input map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs[name] = maps.Clone(input)
	return nil
}

func (m *MemoryInputStore) Get(_ context.Context, name string) (map[string]string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	input, ok := m.inputs[name]
	if !ok {
		return nil, false, nil
	}
	return maps.Clone(input), true, nil
}
