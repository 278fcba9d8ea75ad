// Package content defines the authored content-pack format: dialogue
// graphs, quest definitions and map layouts as one JSON document. The
// format round-trips losslessly; packs are data only and carry no
// behavior beyond construction of the runtime types.
package content

import (
	"encoding/json"
	"fmt"

	"github.com/lumeris/adventure/pkg/dialogue"
	"github.com/lumeris/adventure/pkg/quest"
	"github.com/lumeris/adventure/pkg/world"
)

// Interactable kind tags. The set is closed; Build rejects anything
// else.
const (
	KindNPC       = "npc"
	KindDoor      = "door"
	KindQuestItem = "quest_item"
	KindLore      = "lore"
)

// Quest is one quest definition.
type Quest struct {
	QuestID       string `json:"quest_id"`
	Description   string `json:"description"`
	ItemsRequired int    `json:"items_required"`
}

// Interactable is the serialized form of one world entity. Kind
// selects the variant; fields that do not apply to the kind are
// omitted.
type Interactable struct {
	Kind        string       `json:"kind"`
	ID          string       `json:"id"`
	Rect        world.Rect   `json:"rect"`
	DialogueID  string       `json:"dialogue_id,omitempty"`
	QuestEvent  string       `json:"quest_event,omitempty"`
	TargetMap   string       `json:"target_map,omitempty"`
	TargetSpawn *world.Point `json:"target_spawn,omitempty"`
}

// Map is the serialized form of one playable area.
type Map struct {
	ID            string         `json:"id"`
	Spawn         world.Point    `json:"spawn"`
	Interactables []Interactable `json:"interactables,omitempty"`
}

// Pack is one authored content pack: every dialogue graph, quest and
// map of an adventure, plus the map play begins on.
type Pack struct {
	Name      string                     `json:"name"`
	StartMap  string                     `json:"start_map"`
	Dialogues map[string][]dialogue.Node `json:"dialogues"`
	Quests    []Quest                    `json:"quests,omitempty"`
	Maps      []Map                      `json:"maps,omitempty"`
}

// Parse decodes a pack from JSON.
func Parse(data []byte) (*Pack, error) {
	var p Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content pack: %w", err)
	}
	return &p, nil
}

// RegisterDialogues registers every dialogue graph of the pack with
// the manager.
func (p *Pack) RegisterDialogues(dm *dialogue.Manager) {
	for id, nodes := range p.Dialogues {
		dm.Register(id, nodes)
	}
}

// BuildQuests constructs quest states from the pack's definitions, in
// declaration order.
func (p *Pack) BuildQuests() []*quest.State {
	states := make([]*quest.State, 0, len(p.Quests))
	for _, q := range p.Quests {
		states = append(states, quest.NewState(q.QuestID, q.Description, q.ItemsRequired))
	}
	return states
}

// BuildMaps constructs runtime maps keyed by id. An unknown
// interactable kind is broken content and errors.
func (p *Pack) BuildMaps() (map[string]*world.Map, error) {
	maps := make(map[string]*world.Map, len(p.Maps))
	for _, m := range p.Maps {
		wm := world.NewMap(m.ID, m.Spawn)
		for _, it := range m.Interactables {
			built, err := it.build()
			if err != nil {
				return nil, fmt.Errorf("map %q: %w", m.ID, err)
			}
			wm.Interactables = append(wm.Interactables, built)
		}
		maps[m.ID] = wm
	}
	return maps, nil
}

func (it Interactable) build() (world.Interactable, error) {
	switch it.Kind {
	case KindNPC:
		return world.NewNPC(it.ID, it.Rect, it.DialogueID), nil
	case KindDoor:
		var spawn world.Point
		if it.TargetSpawn != nil {
			spawn = *it.TargetSpawn
		}
		return world.NewDoor(it.ID, it.Rect, it.TargetMap, spawn, it.DialogueID), nil
	case KindQuestItem:
		return world.NewQuestItem(it.ID, it.Rect, it.DialogueID, it.QuestEvent), nil
	case KindLore:
		return world.NewLore(it.ID, it.Rect, it.DialogueID), nil
	default:
		return nil, fmt.Errorf("interactable %q has unknown kind %q", it.ID, it.Kind)
	}
}
