package content

import (
	"testing"

	"github.com/lumeris/adventure/pkg/dialogue"
	"github.com/lumeris/adventure/pkg/world"
)

const samplePack = `{
	"name": "sample",
	"start_map": "outside_village",
	"dialogues": {
		"mia_intro": [
			{"id": "root", "text": "Good morning!", "next_id": "ask"},
			{"id": "ask", "text": "Will you help?", "choices": [
				{"text": "Yes", "next_id": "yes", "event": "quest_begin"},
				{"text": "Not now", "next_id": ""}
			]},
			{"id": "yes", "text": "Thank you!"}
		],
		"village_sign": [
			{"id": "root", "text": "Welcome to Lumeris."}
		]
	},
	"quests": [
		{"quest_id": "find_artifacts", "description": "Gather the totems.", "items_required": 3}
	],
	"maps": [
		{
			"id": "outside_village",
			"spawn": {"x": 960, "y": 640},
			"interactables": [
				{"kind": "npc", "id": "npc_mia", "rect": {"x": 100, "y": 100, "w": 32, "h": 32}, "dialogue_id": "mia_intro"},
				{"kind": "door", "id": "front_door", "rect": {"x": 200, "y": 100, "w": 32, "h": 48}, "target_map": "interior_home", "target_spawn": {"x": 400, "y": 300}},
				{"kind": "quest_item", "id": "totem_a", "rect": {"x": 300, "y": 100, "w": 24, "h": 24}, "dialogue_id": "village_sign", "quest_event": "quest_item_collected"},
				{"kind": "lore", "id": "village_sign", "rect": {"x": 400, "y": 100, "w": 32, "h": 32}, "dialogue_id": "village_sign"}
			]
		},
		{"id": "interior_home", "spawn": {"x": 400, "y": 300}}
	]
}`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(samplePack))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if p.Name != "sample" {
		t.Errorf("Expected name sample, got %q", p.Name)
	}
	if p.StartMap != "outside_village" {
		t.Errorf("Expected start map outside_village, got %q", p.StartMap)
	}
	if len(p.Dialogues) != 2 {
		t.Errorf("Expected 2 dialogues, got %d", len(p.Dialogues))
	}
	if len(p.Dialogues["mia_intro"]) != 3 {
		t.Errorf("Expected 3 nodes in mia_intro, got %d", len(p.Dialogues["mia_intro"]))
	}

	ask := p.Dialogues["mia_intro"][1]
	if len(ask.Choices) != 2 {
		t.Fatalf("Expected 2 choices on ask node, got %d", len(ask.Choices))
	}
	if ask.Choices[0].Event != "quest_begin" {
		t.Errorf("Expected choice event quest_begin, got %q", ask.Choices[0].Event)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestPack_RegisterDialogues(t *testing.T) {
	p, err := Parse([]byte(samplePack))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	dm := dialogue.NewManager(nil)
	p.RegisterDialogues(dm)

	for _, id := range []string{"mia_intro", "village_sign"} {
		if !dm.Registered(id) {
			t.Errorf("Expected dialogue %q registered", id)
		}
	}

	s, err := dm.Start("mia_intro", "")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.Current().Text != "Good morning!" {
		t.Errorf("Unexpected root text %q", s.Current().Text)
	}
}

func TestPack_BuildQuests(t *testing.T) {
	p, err := Parse([]byte(samplePack))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	quests := p.BuildQuests()
	if len(quests) != 1 {
		t.Fatalf("Expected 1 quest, got %d", len(quests))
	}
	q := quests[0]
	if q.QuestID != "find_artifacts" || q.ItemsRequired != 3 {
		t.Errorf("Unexpected quest %+v", q)
	}
	if q.Completed || len(q.ItemsCollected) != 0 {
		t.Error("New quest state must start empty")
	}
}

func TestPack_BuildMaps(t *testing.T) {
	p, err := Parse([]byte(samplePack))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	maps, err := p.BuildMaps()
	if err != nil {
		t.Fatalf("BuildMaps failed: %v", err)
	}
	if len(maps) != 2 {
		t.Fatalf("Expected 2 maps, got %d", len(maps))
	}

	village := maps["outside_village"]
	if village.Spawn != (world.Point{X: 960, Y: 640}) {
		t.Errorf("Unexpected spawn %v", village.Spawn)
	}
	if len(village.Interactables) != 4 {
		t.Fatalf("Expected 4 interactables, got %d", len(village.Interactables))
	}

	if _, ok := village.FindInteractable("npc_mia").(*world.NPC); !ok {
		t.Error("Expected npc_mia to build as NPC")
	}
	door, ok := village.FindInteractable("front_door").(*world.Door)
	if !ok {
		t.Fatal("Expected front_door to build as Door")
	}
	if door.TargetMap != "interior_home" || door.TargetSpawn != (world.Point{X: 400, Y: 300}) {
		t.Errorf("Unexpected door target %q spawn %v", door.TargetMap, door.TargetSpawn)
	}
	item, ok := village.FindInteractable("totem_a").(*world.QuestItem)
	if !ok {
		t.Fatal("Expected totem_a to build as QuestItem")
	}
	if item.QuestEvent != "quest_item_collected" {
		t.Errorf("Unexpected quest event %q", item.QuestEvent)
	}
	if _, ok := village.FindInteractable("village_sign").(*world.Lore); !ok {
		t.Error("Expected village_sign to build as Lore")
	}
}

func TestPack_BuildMapsUnknownKind(t *testing.T) {
	p := &Pack{Maps: []Map{{
		ID: "m",
		Interactables: []Interactable{
			{Kind: "portal", ID: "weird"},
		},
	}}}
	if _, err := p.BuildMaps(); err == nil {
		t.Error("Expected error for unknown interactable kind")
	}
}
