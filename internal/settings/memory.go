package settings

import (
	"context"
	"sync"
)

// MemoryStore keeps settings in process. Setting Err makes every Get and Set fail,
// which stands in for an unavailable backing store.
type MemoryStore struct {
	notifier

	mu     sync.Mutex
	values Settings
	Err    error
}

// NewMemoryStore creates a store holding initial.
func NewMemoryStore(initial Settings) *MemoryStore {
	return &MemoryStore{values: initial}
}

// Get implements Store.
func (m *MemoryStore) Get(ctx context.Context, defaults Settings) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return defaults, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return defaults, m.Err
	}
	return m.values.WithDefaults(defaults), nil
}

// Set implements Store.
func (m *MemoryStore) Set(ctx context.Context, s Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	if m.Err != nil {
		m.mu.Unlock()
		return m.Err
	}
	old := m.values
	m.values = s
	m.mu.Unlock()

	m.notify(Diff(old, s))
	return nil
}
