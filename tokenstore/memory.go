package tokenstore

import (
	"context"
	"sync"

	"github.com/goliatone/go-storefront"
)

var _ storefront.TokenStore = (*Memory)(nil)

// Memory keeps the token for the lifetime of the process.
type Memory struct {
	mu    sync.RWMutex
	token string
}

// NewMemory returns an empty store, or one seeded with token
func NewMemory(token ...string) *Memory {
	m := &Memory{}
	if len(token) > 0 {
		m.token = token[0]
	}
	return m
}

func (m *Memory) Get(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *Memory) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Remove(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
