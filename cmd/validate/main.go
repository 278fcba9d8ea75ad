package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/lumeris/adventure/pkg/content"
	"github.com/lumeris/adventure/pkg/dialogue"
)

// The engine validates node references lazily, when traversal reaches
// them. This tool is the strictly stronger authoring-time check: it
// walks every graph and map reference eagerly so a dangling id is
// caught before a player finds it.

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <pack.json>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &PackValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Content pack is valid!")
}

type PackValidator struct {
	errors []string
}

func (v *PackValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("pack file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidPackFilename(nameWithoutExt) {
		return fmt.Errorf("pack filename '%s' must be lowercase snake_case (e.g., my_pack.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var p content.Pack
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&p); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.validatePack(&p)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *PackValidator) validatePack(p *content.Pack) {
	if p.Name == "" {
		v.addError("pack has no name")
	}

	for id, nodes := range p.Dialogues {
		v.validateGraph(id, nodes)
	}

	mapIDs := make(map[string]bool, len(p.Maps))
	for _, m := range p.Maps {
		mapIDs[m.ID] = true
	}

	if p.StartMap == "" {
		v.addError("pack has no start_map")
	} else if !mapIDs[p.StartMap] {
		v.addError(fmt.Sprintf("start_map %q is not a map in this pack", p.StartMap))
	}

	for _, q := range p.Quests {
		if q.QuestID == "" {
			v.addError("quest has no quest_id")
		}
		if q.ItemsRequired <= 0 {
			v.addError(fmt.Sprintf("quest %q requires %d items; must be positive", q.QuestID, q.ItemsRequired))
		}
	}

	for _, m := range p.Maps {
		v.validateMap(p, m, mapIDs)
	}
}

// validateGraph performs the eager reference check the engine skips:
// every next_id and choice target must name a node in the same graph.
func (v *PackValidator) validateGraph(dialogueID string, nodes []dialogue.Node) {
	graph := dialogue.NewGraph(nodes)

	if _, ok := graph[dialogue.DefaultStartNode]; !ok {
		v.addError(fmt.Sprintf("dialogue %q has no %q node", dialogueID, dialogue.DefaultStartNode))
	}

	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			v.addError(fmt.Sprintf("dialogue %q has a node with no id", dialogueID))
			continue
		}
		if seen[n.ID] {
			v.addError(fmt.Sprintf("dialogue %q declares node %q more than once", dialogueID, n.ID))
		}
		seen[n.ID] = true

		if n.NextID != "" {
			if _, ok := graph[n.NextID]; !ok {
				v.addError(fmt.Sprintf("dialogue %q node %q: next_id %q does not exist", dialogueID, n.ID, n.NextID))
			}
		}
		for i, c := range n.Choices {
			if c.Text == "" {
				v.addError(fmt.Sprintf("dialogue %q node %q: choice %d has no text", dialogueID, n.ID, i))
			}
			if c.NextID != "" {
				if _, ok := graph[c.NextID]; !ok {
					v.addError(fmt.Sprintf("dialogue %q node %q: choice %d targets missing node %q", dialogueID, n.ID, i, c.NextID))
				}
			}
		}
	}
}

func (v *PackValidator) validateMap(p *content.Pack, m content.Map, mapIDs map[string]bool) {
	seen := make(map[string]bool, len(m.Interactables))
	for _, it := range m.Interactables {
		if it.ID == "" {
			v.addError(fmt.Sprintf("map %q has an interactable with no id", m.ID))
			continue
		}
		if seen[it.ID] {
			v.addError(fmt.Sprintf("map %q declares interactable %q more than once", m.ID, it.ID))
		}
		seen[it.ID] = true

		switch it.Kind {
		case content.KindNPC, content.KindQuestItem, content.KindLore:
			if it.DialogueID == "" {
				v.addError(fmt.Sprintf("map %q interactable %q (%s) has no dialogue_id", m.ID, it.ID, it.Kind))
			}
		case content.KindDoor:
			if it.TargetMap == "" {
				v.addError(fmt.Sprintf("map %q door %q has no target_map", m.ID, it.ID))
			} else if !mapIDs[it.TargetMap] {
				v.addError(fmt.Sprintf("map %q door %q targets missing map %q", m.ID, it.ID, it.TargetMap))
			}
		default:
			v.addError(fmt.Sprintf("map %q interactable %q has unknown kind %q", m.ID, it.ID, it.Kind))
		}

		if it.Kind == content.KindQuestItem && it.QuestEvent == "" {
			v.addError(fmt.Sprintf("map %q quest item %q has no quest_event", m.ID, it.ID))
		}

		if it.DialogueID != "" {
			if _, ok := p.Dialogues[it.DialogueID]; !ok {
				v.addError(fmt.Sprintf("map %q interactable %q references missing dialogue %q", m.ID, it.ID, it.DialogueID))
			}
		}
	}
}

func (v *PackValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var packFilenamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func isValidPackFilename(name string) bool {
	return packFilenamePattern.MatchString(name)
}
