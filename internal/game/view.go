package game

import (
	"github.com/lumeris/adventure/pkg/content"
	"github.com/lumeris/adventure/pkg/quest"
	"github.com/lumeris/adventure/pkg/world"
)

// View is a read-only snapshot of what the player currently sees:
// the active dialogue line, the quest tracker, the prompt and the
// interactables in play. The render layer consumes it without touching
// engine state.
type View struct {
	Map           string             `json:"map"`
	Prompt        string             `json:"prompt,omitempty"`
	Ended         bool               `json:"ended,omitempty"`
	Dialogue      *DialogueView      `json:"dialogue,omitempty"`
	Quests        []QuestView        `json:"quests,omitempty"`
	Interactables []InteractableView `json:"interactables,omitempty"`
}

// DialogueView is the active dialogue line and its choices.
type DialogueView struct {
	DialogueID  string   `json:"dialogue_id"`
	NodeID      string   `json:"node_id"`
	Text        string   `json:"text"`
	Choices     []string `json:"choices,omitempty"`
	ChoiceIndex int      `json:"choice_index,omitempty"`
}

// QuestView is one quest tracker line.
type QuestView struct {
	QuestID     string `json:"quest_id"`
	Description string `json:"description"`
	Collected   int    `json:"collected"`
	Required    int    `json:"required"`
	Completed   bool   `json:"completed"`
}

// InteractableView identifies one in-play entity on the current map.
type InteractableView struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// View builds the player-facing snapshot of the session.
func (ps *PlayState) View() View {
	v := View{
		Map:    ps.currentMap.ID,
		Prompt: ps.prompt,
		Ended:  ps.ended,
	}

	if ps.session != nil {
		node := ps.session.Current()
		dv := &DialogueView{
			DialogueID:  ps.sessionDialogueID,
			NodeID:      node.ID,
			Text:        node.Text,
			ChoiceIndex: ps.session.ChoiceIndex(),
		}
		for _, c := range node.Choices {
			dv.Choices = append(dv.Choices, c.Text)
		}
		v.Dialogue = dv
	}

	for _, qs := range ps.questStates() {
		v.Quests = append(v.Quests, QuestView{
			QuestID:     qs.QuestID,
			Description: qs.Description,
			Collected:   len(qs.ItemsCollected),
			Required:    qs.ItemsRequired,
			Completed:   qs.Completed,
		})
	}

	for _, it := range ps.currentMap.Interactables {
		if !enabled(it) {
			continue
		}
		v.Interactables = append(v.Interactables, InteractableView{ID: it.ObjectID(), Kind: kindOf(it)})
	}

	return v
}

// questStates returns quest states in pack declaration order, with
// the built-in quest as fallback.
func (ps *PlayState) questStates() []*quest.State {
	states := ps.quests.States()
	if len(ps.pack.Quests) == 0 {
		if qs, ok := states[quest.FindArtifacts]; ok {
			return []*quest.State{qs}
		}
		return nil
	}
	ordered := make([]*quest.State, 0, len(ps.pack.Quests))
	for _, q := range ps.pack.Quests {
		if qs, ok := states[q.QuestID]; ok {
			ordered = append(ordered, qs)
		}
	}
	return ordered
}

func kindOf(it world.Interactable) string {
	switch it.(type) {
	case *world.NPC:
		return content.KindNPC
	case *world.Door:
		return content.KindDoor
	case *world.QuestItem:
		return content.KindQuestItem
	case *world.Lore:
		return content.KindLore
	default:
		return ""
	}
}

func enabled(it world.Interactable) bool {
	switch v := it.(type) {
	case *world.NPC:
		return v.Enabled
	case *world.Door:
		return v.Enabled
	case *world.QuestItem:
		return v.Enabled
	case *world.Lore:
		return v.Enabled
	default:
		return true
	}
}
