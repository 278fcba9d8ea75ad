package game

import (
	"github.com/lumeris/adventure/pkg/event"
	"github.com/lumeris/adventure/pkg/world"
)

// Content ids used by the Lumeris pack script. These mirror the
// authored pack in data/packs and exist only here: the engine itself
// knows no content.
const (
	MapOutsideVillage = "outside_village"
	MapOutsideForest  = "outside_forest"

	npcMia       = "npc_mia"
	npcElderRhea = "elder_rhea"

	dialogueMiaReady      = "mia_ready"
	dialogueQuestEpilogue = "quest_epilogue"
)

// LumerisScript wires the scripted events of the Lumeris village
// adventure: quest narration prompts, the forest travel sequence and
// the NPC dialogue rebinds that move the story forward. Named handlers
// run before the quest tracker sees the event.
func LumerisScript(ps *PlayState) {
	ps.Router().Handle(event.TravelToForest, func(string, event.Payload) {
		ps.RequestMapChange(MapOutsideForest, world.Point{X: 900, Y: 1100})
	})

	ps.Router().Handle(event.QuestBegin, func(string, event.Payload) {
		ps.SetPrompt("Collect the three ancient totems around the village.")
	})

	ps.Router().Handle(event.QuestTurnIn, func(string, event.Payload) {
		ps.RebindNPC(npcElderRhea, dialogueQuestEpilogue)
	})

	ps.OnQuestCompleted(func() {
		ps.RebindNPC(npcMia, dialogueMiaReady)
		ps.SetPrompt("Return to Mia to continue your adventure.")
	})
}
