// Package state holds the persistable snapshot of one play session:
// everything needed to restore a game that the content pack itself
// does not describe.
package state

import (
	"time"

	"github.com/google/uuid"
	"github.com/lumeris/adventure/pkg/quest"
)

// DialogueCursor is the position inside an active dialogue, persisted
// so a save taken mid-conversation restores to the same line.
type DialogueCursor struct {
	DialogueID  string `json:"dialogue_id"`
	NodeID      string `json:"node_id"`
	ChoiceIndex int    `json:"choice_index,omitempty"`
}

// GameState is the current state of one play session. It records only
// mutations against the authored content: quest progress, consumed
// items, rebound NPC dialogues and the map the player is on.
type GameState struct {
	ID         uuid.UUID               `json:"id"` // unique per session
	Pack       string                  `json:"pack"`
	CurrentMap string                  `json:"current_map,omitempty"`
	Quests     map[string]*quest.State `json:"quests,omitempty"`
	// Disabled lists object ids of interactables that no longer
	// respond, e.g. collected quest items.
	Disabled []string `json:"disabled,omitempty"`
	// DialogueBindings maps NPC object ids to dialogue ids that
	// replaced their authored binding.
	DialogueBindings map[string]string `json:"dialogue_bindings,omitempty"`
	Dialogue         *DialogueCursor   `json:"dialogue,omitempty"`
	Prompt           string            `json:"prompt,omitempty"`
	Ended            bool              `json:"ended,omitempty"`
	CreatedAt        time.Time         `json:"created_at,omitempty"`
	UpdatedAt        time.Time         `json:"updated_at,omitempty"`
}

// NewGameState creates a fresh session snapshot for a content pack.
func NewGameState(pack string) *GameState {
	return &GameState{
		ID:        uuid.New(),
		Pack:      pack,
		Quests:    make(map[string]*quest.State),
		CreatedAt: time.Now(),
	}
}
