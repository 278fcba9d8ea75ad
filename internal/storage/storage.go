package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumeris/adventure/pkg/content"
	"github.com/lumeris/adventure/pkg/state"
)

// Storage defines a unified interface for all storage operations:
// game-state persistence (Redis) plus authored content loading
// (filesystem).
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// GameState operations (Redis-backed)
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	DeleteGameState(ctx context.Context, id uuid.UUID) error

	// Content pack operations (filesystem-backed)
	ListPacks(ctx context.Context) (map[string]string, error)
	GetPack(ctx context.Context, filename string) (*content.Pack, error)
}
