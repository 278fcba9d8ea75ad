// Package quest tracks collected quest items and completion. The
// manager is a pure event consumer: it sits on the fallthrough side of
// the event router and never reaches back into dialogue or world code.
package quest

import "github.com/lumeris/adventure/pkg/event"

// FindArtifacts is the quest the default manager tracks: the three
// heart shards scattered across the region.
const FindArtifacts = "find_artifacts"

// CompletedAction is returned by HandleEvent exactly once, on the
// transition from incomplete to complete.
const CompletedAction = "quest_completed"

// State is the accumulated progress toward one quest. Completed is
// monotonic: once true it never resets, and further items are absorbed
// without effect.
type State struct {
	QuestID        string          `json:"quest_id"`
	Description    string          `json:"description"`
	ItemsRequired  int             `json:"items_required"`
	ItemsCollected map[string]bool `json:"items_collected"`
	Completed      bool            `json:"completed"`
}

// NewState creates an empty quest state.
func NewState(questID, description string, itemsRequired int) *State {
	return &State{
		QuestID:        questID,
		Description:    description,
		ItemsRequired:  itemsRequired,
		ItemsCollected: make(map[string]bool),
	}
}

// RecordItem adds objectID to the collected set. Duplicates are
// idempotent. Completion is evaluated only on insertion and only while
// the quest is incomplete.
func (s *State) RecordItem(objectID string) {
	if s.Completed {
		return
	}
	if s.ItemsCollected == nil {
		s.ItemsCollected = make(map[string]bool)
	}
	s.ItemsCollected[objectID] = true
	if len(s.ItemsCollected) >= s.ItemsRequired {
		s.Completed = true
	}
}

// Manager accumulates quest progress from events. It inspects only
// quest_item_collected events; everything else passes through without
// actions or errors.
type Manager struct {
	quests    map[string]*State
	defaultID string
}

// NewManager seeds the single built-in artifact hunt.
func NewManager() *Manager {
	return NewManagerWith(
		NewState(FindArtifacts, "Gather the three Heart Shards scattered across the region.", 3),
	)
}

// NewManagerWith tracks the given quests. The first one is the default
// target for events that carry no quest_id field.
func NewManagerWith(quests ...*State) *Manager {
	m := &Manager{quests: make(map[string]*State, len(quests))}
	for i, q := range quests {
		if i == 0 {
			m.defaultID = q.QuestID
		}
		m.quests[q.QuestID] = q
	}
	return m
}

// HandleEvent consumes one event and returns follow-up actions for the
// host to interpret. A quest_item_collected event must carry a
// non-empty object_id in its payload; events without one are ignored,
// not errors. CompletedAction is returned exactly once per quest.
func (m *Manager) HandleEvent(name string, payload event.Payload) []string {
	if name != event.QuestItemCollected {
		return nil
	}

	objectID, _ := payload["object_id"].(string)
	if objectID == "" {
		return nil
	}

	questID := m.defaultID
	if id, ok := payload["quest_id"].(string); ok && id != "" {
		questID = id
	}
	state, ok := m.quests[questID]
	if !ok {
		return nil
	}

	preComplete := state.Completed
	state.RecordItem(objectID)
	if !preComplete && state.Completed {
		return []string{CompletedAction}
	}
	return nil
}

// Completed reports the completion flag for questID, false for an
// unknown quest.
func (m *Manager) Completed(questID string) bool {
	state, ok := m.quests[questID]
	return ok && state.Completed
}

// State returns the tracked state for questID, or nil if unknown.
func (m *Manager) State(questID string) *State {
	return m.quests[questID]
}

// States returns all tracked quest states keyed by id. Used by save
// serialization and by the UI quest tracker.
func (m *Manager) States() map[string]*State {
	return m.quests
}
