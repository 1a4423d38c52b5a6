package storage

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Memory keeps encoded records in a map. Records are encoded on Write, so later
// changes to the written value do not leak into the store.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
	stats   Statistics
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Read(_ context.Context, key string, into any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Reads++
	data, ok := m.records[key]
	if !ok {
		m.stats.Misses++
		return fmt.Errorf("read %s: %w", key, ErrNotFound)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (m *Memory) Write(_ context.Context, key string, value any) error {
	if err := validKey(key); err != nil {
		return err
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Writes++
	m.records[key] = data
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Deletes++
	delete(m.records, key)
	return nil
}

func (m *Memory) Keys(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.records)), nil
}

func (m *Memory) Statistics() Statistics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}
