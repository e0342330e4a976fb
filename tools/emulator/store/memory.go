package store

import (
	"context"
	"maps"
	"slices"
	"sync"
)

type memoryStore struct {
	mu    sync.RWMutex
	kinds map[string]map[string][]byte
}

// NewMemory cria um Store em memória, perdido ao reiniciar o processo.
func NewMemory() Store {
	return &memoryStore{kinds: map[string]map[string][]byte{}}
}

func (m *memoryStore) Put(_ context.Context, kind, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, ok := m.kinds[kind]
	if !ok {
		records = map[string][]byte{}
		m.kinds[kind] = records
	}
	records[id] = slices.Clone(data)
	return nil
}

func (m *memoryStore) Get(_ context.Context, kind, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.kinds[kind][id]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

func (m *memoryStore) Delete(_ context.Context, kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.kinds[kind], id)
	return nil
}

func (m *memoryStore) List(_ context.Context, kind string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := m.kinds[kind]
	out := make([]Record, 0, len(records))
	for _, id := range slices.Sorted(maps.Keys(records)) {
		out = append(out, Record{ID: id, Data: slices.Clone(records[id])})
	}
	return out, nil
}
