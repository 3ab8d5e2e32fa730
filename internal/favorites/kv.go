package favorites

import (
	"context"
	"sync"
)

// KV is the persistent key-value capability favorites are stored in.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// UnavailableKV stands in for a backend that could not be opened. Every call
// fails with Err, so the store starts empty and reports each failed write.
type UnavailableKV struct {
	Err error
}

func (u UnavailableKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, u.Err
}

func (u UnavailableKV) Set(context.Context, string, []byte) error {
	return u.Err
}
