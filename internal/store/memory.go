package store

import (
	"context"
	"sync"
)

// Memory is an in-process store used as the default backend and in tests.
type Memory struct {
	mu   sync.Mutex
	blob []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blob == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.blob...), nil
}

func (m *Memory) Save(_ context.Context, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = append([]byte(nil), blob...)
	return nil
}

func (m *Memory) Close() error { return nil }
