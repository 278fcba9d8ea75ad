package game

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/lumeris/adventure/pkg/content"
	"github.com/lumeris/adventure/pkg/dialogue"
	"github.com/lumeris/adventure/pkg/quest"
	"github.com/lumeris/adventure/pkg/state"
	"github.com/lumeris/adventure/pkg/world"
)

// Snapshot writes the session's mutable state into gs. Only mutations
// against the authored pack are recorded: quest progress, disabled
// interactables, rebound NPC dialogues, the current map and any
// dialogue in progress.
func (ps *PlayState) Snapshot(gs *state.GameState) {
	gs.CurrentMap = ps.currentMap.ID
	gs.Quests = ps.quests.States()
	gs.Prompt = ps.prompt
	gs.Ended = ps.ended
	gs.UpdatedAt = time.Now()

	gs.Disabled = nil
	gs.DialogueBindings = nil
	authored := ps.authoredBindings()
	for _, mapID := range ps.sortedMapIDs() {
		for _, it := range ps.maps[mapID].Interactables {
			switch v := it.(type) {
			case *world.NPC:
				if authored[v.ID] != v.DialogueID {
					if gs.DialogueBindings == nil {
						gs.DialogueBindings = make(map[string]string)
					}
					gs.DialogueBindings[v.ID] = v.DialogueID
				}
			case *world.QuestItem:
				if !v.Enabled {
					gs.Disabled = append(gs.Disabled, v.ID)
				}
			}
		}
	}

	gs.Dialogue = nil
	if ps.session != nil {
		gs.Dialogue = &state.DialogueCursor{
			DialogueID:  ps.sessionDialogueID,
			NodeID:      ps.session.Current().ID,
			ChoiceIndex: ps.session.ChoiceIndex(),
		}
	}
}

// Restore rebuilds a play state from a snapshot taken against the same
// pack. A dialogue in progress resumes at its saved node without
// re-firing that node's enter event.
func Restore(pack *content.Pack, gs *state.GameState, logger *slog.Logger) (*PlayState, error) {
	ps, err := NewPlayState(pack, logger)
	if err != nil {
		return nil, err
	}

	if m, ok := ps.maps[gs.CurrentMap]; ok && gs.CurrentMap != "" {
		ps.currentMap = m
	}
	ps.prompt = gs.Prompt
	ps.ended = gs.Ended

	if len(gs.Quests) > 0 {
		// Keep the pack's declaration order so the default quest is
		// stable across save and restore.
		var states []*quest.State
		if len(pack.Quests) > 0 {
			for _, q := range pack.Quests {
				if saved, ok := gs.Quests[q.QuestID]; ok {
					states = append(states, saved)
				} else {
					states = append(states, quest.NewState(q.QuestID, q.Description, q.ItemsRequired))
				}
			}
		} else if saved, ok := gs.Quests[quest.FindArtifacts]; ok {
			states = append(states, saved)
		}
		if len(states) > 0 {
			ps.quests = quest.NewManagerWith(states...)
		}
	}

	disabled := make(map[string]bool, len(gs.Disabled))
	for _, id := range gs.Disabled {
		disabled[id] = true
	}
	for _, m := range ps.maps {
		for _, it := range m.Interactables {
			switch v := it.(type) {
			case *world.NPC:
				if bound, ok := gs.DialogueBindings[v.ID]; ok {
					v.SetDialogue(bound)
				}
			case *world.QuestItem:
				if disabled[v.ID] {
					v.Enabled = false
				}
			}
		}
	}

	if gs.Dialogue != nil {
		g := ps.dialogues.Graph(gs.Dialogue.DialogueID)
		if g == nil {
			return nil, fmt.Errorf("dialogue %q: %w", gs.Dialogue.DialogueID, dialogue.ErrNotFound)
		}
		s, err := dialogue.ResumeSession(g, gs.Dialogue.NodeID, gs.Dialogue.ChoiceIndex, ps.router)
		if err != nil {
			return nil, err
		}
		ps.session = s
		ps.sessionDialogueID = gs.Dialogue.DialogueID
	}

	return ps, nil
}

// authoredBindings returns NPC dialogue ids as the pack declares them.
func (ps *PlayState) authoredBindings() map[string]string {
	bindings := make(map[string]string)
	for _, m := range ps.pack.Maps {
		for _, it := range m.Interactables {
			if it.Kind == content.KindNPC {
				bindings[it.ID] = it.DialogueID
			}
		}
	}
	return bindings
}

func (ps *PlayState) sortedMapIDs() []string {
	ids := make([]string, 0, len(ps.maps))
	for id := range ps.maps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
