package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/lumeris/adventure/pkg/content"
	"github.com/lumeris/adventure/pkg/state"
)

// MockStorage is an in-memory implementation of Storage for testing.
type MockStorage struct {
	mu         sync.RWMutex
	gamestates map[uuid.UUID]*state.GameState
	packs      map[string]*content.Pack
	pingError  error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		gamestates: make(map[uuid.UUID]*state.GameState),
		packs:      make(map[string]*content.Pack),
	}
}

// SetPingError configures the mock to fail on ping with the given error.
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// AddPack registers a pack under the given filename.
func (m *MockStorage) AddPack(filename string, p *content.Pack) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.packs[filename] = p
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamestates[id] = gs
	return nil
}

func (m *MockStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gamestates[id], nil
}

func (m *MockStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.gamestates, id)
	return nil
}

func (m *MockStorage) ListPacks(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	packs := make(map[string]string, len(m.packs))
	for filename, p := range m.packs {
		packs[p.Name] = filename
	}
	return packs, nil
}

func (m *MockStorage) GetPack(ctx context.Context, filename string) (*content.Pack, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.packs[filename]
	if !ok {
		return nil, fmt.Errorf("pack not found: %s", filename)
	}
	return p, nil
}
