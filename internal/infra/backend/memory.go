package backend

import (
	"context"
	"sync"
)

// Memory keeps the document in process memory. Used for local runs and tests.
type Memory struct {
	mu  sync.RWMutex
	doc []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Name() string { return KindMemory }

func (m *Memory) Read(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc == nil {
		return nil, ErrNotFound
	}
	out := make([]byte, len(m.doc))
	copy(out, m.doc)
	return out, nil
}

func (m *Memory) Write(ctx context.Context, doc []byte) error {
	cp := make([]byte, len(doc))
	copy(cp, doc)
	m.mu.Lock()
	m.doc = cp
	m.mu.Unlock()
	return nil
}
