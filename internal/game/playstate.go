// Package game hosts one play session: it owns the dialogue registry,
// the quest tracker, the event router and the world maps, and wires
// them together. All cross-component coupling runs through named
// events on the router; dialogue content never references game logic
// directly.
package game

import (
	"fmt"
	"log/slog"

	"github.com/lumeris/adventure/pkg/content"
	"github.com/lumeris/adventure/pkg/dialogue"
	"github.com/lumeris/adventure/pkg/event"
	"github.com/lumeris/adventure/pkg/quest"
	"github.com/lumeris/adventure/pkg/world"
)

// Script wires pack-specific event handlers into a play state before
// play begins. Scripts run once, after the built-in routing is in
// place.
type Script func(ps *PlayState)

// Scripts maps pack names to their handler scripts.
var Scripts = map[string]Script{
	"lumeris": LumerisScript,
}

type mapChange struct {
	mapID string
	spawn world.Point
}

// PlayState is the single active play context. It implements
// world.Host, and processes one player input per call; every call runs
// to completion synchronously, including nested event dispatch.
type PlayState struct {
	logger *slog.Logger
	pack   *content.Pack

	dialogues *dialogue.Manager
	quests    *quest.Manager
	router    *event.Router
	maps      map[string]*world.Map

	currentMap        *world.Map
	session           *dialogue.Session
	sessionDialogueID string
	pending           *mapChange
	prompt            string
	ended             bool

	onQuestCompleted func()

	// err holds a failure raised from inside event or interact
	// dispatch, where no error return path exists. The input-step
	// methods surface it.
	err error
}

var _ world.Host = (*PlayState)(nil)

// NewPlayState builds a session from a content pack. The pack's
// script, if one is registered for its name, is applied after the
// built-in routing.
func NewPlayState(pack *content.Pack, logger *slog.Logger) (*PlayState, error) {
	maps, err := pack.BuildMaps()
	if err != nil {
		return nil, err
	}
	current, ok := maps[pack.StartMap]
	if !ok {
		return nil, fmt.Errorf("start map %q: %w", pack.StartMap, dialogue.ErrNotFound)
	}

	ps := &PlayState{
		logger:     logger,
		pack:       pack,
		router:     event.NewRouter(logger),
		maps:       maps,
		currentMap: current,
	}

	ps.dialogues = dialogue.NewManager(ps.router)
	pack.RegisterDialogues(ps.dialogues)

	if quests := pack.BuildQuests(); len(quests) > 0 {
		ps.quests = quest.NewManagerWith(quests...)
	} else {
		ps.quests = quest.NewManager()
	}

	ps.router.Handle(event.GameEnd, func(string, event.Payload) {
		ps.ended = true
	})
	ps.router.Fallthrough(func(name string, payload event.Payload) {
		for _, action := range ps.quests.HandleEvent(name, payload) {
			if action == quest.CompletedAction && ps.onQuestCompleted != nil {
				ps.onQuestCompleted()
			}
		}
	})

	if script, ok := Scripts[pack.Name]; ok {
		script(ps)
	}
	return ps, nil
}

// Router exposes the event dispatch table for script wiring.
func (ps *PlayState) Router() *event.Router { return ps.router }

// Quests exposes the quest tracker.
func (ps *PlayState) Quests() *quest.Manager { return ps.quests }

// OnQuestCompleted sets the hook run when the quest tracker reports
// its one-shot completion action.
func (ps *PlayState) OnQuestCompleted(fn func()) { ps.onQuestCompleted = fn }

// SetPrompt replaces the on-screen prompt line.
func (ps *PlayState) SetPrompt(prompt string) { ps.prompt = prompt }

// Prompt returns the current prompt line.
func (ps *PlayState) Prompt() string { return ps.prompt }

// Ended reports whether the ending flag has been raised. It is
// monotonic for the life of the session.
func (ps *PlayState) Ended() bool { return ps.ended }

// CurrentMap returns the map the player is on.
func (ps *PlayState) CurrentMap() *world.Map { return ps.currentMap }

// Session returns the active dialogue session, or nil.
func (ps *PlayState) Session() *dialogue.Session { return ps.session }

// BeginDialogue starts a named dialogue, implicitly abandoning any
// active session without firing its exit event. A missing dialogue or
// start node is broken content; the failure is surfaced by the
// enclosing input step.
func (ps *PlayState) BeginDialogue(dialogueID, startNode string) {
	s, err := ps.dialogues.Start(dialogueID, startNode)
	if err != nil {
		ps.logger.Error("Failed to start dialogue", "dialogue", dialogueID, "start_node", startNode, "error", err)
		ps.err = err
		return
	}
	ps.session = s
	ps.sessionDialogueID = dialogueID
}

// RequestMapChange defers a map transition until no dialogue is
// active. A later request replaces an unapplied earlier one.
func (ps *PlayState) RequestMapChange(mapID string, spawn world.Point) {
	ps.pending = &mapChange{mapID: mapID, spawn: spawn}
}

// Notify emits a named event into the router.
func (ps *PlayState) Notify(name string, payload event.Payload) {
	ps.router.Notify(name, payload)
}

// RebindNPC swaps the dialogue bound to an NPC on the current map.
// Absent or non-NPC objects are ignored, matching the authored-content
// tolerance of the event bus.
func (ps *PlayState) RebindNPC(objectID, dialogueID string) {
	if npc, ok := ps.currentMap.FindInteractable(objectID).(*world.NPC); ok {
		npc.SetDialogue(dialogueID)
	}
}

// InteractWith triggers the named interactable on the current map, one
// player input tick. Objects that are absent or out of play are a
// caller error.
func (ps *PlayState) InteractWith(objectID string) error {
	it := ps.currentMap.FindInteractable(objectID)
	if it == nil || !enabled(it) {
		return fmt.Errorf("interactable %q: %w", objectID, dialogue.ErrNotFound)
	}
	it.Interact(ps)
	return ps.settle()
}

// MoveChoice moves the highlighted choice on the active dialogue.
// No-op when no dialogue is active.
func (ps *PlayState) MoveChoice(offset int) {
	if ps.session != nil {
		ps.session.MoveChoice(offset)
	}
}

// Confirm advances the active dialogue one step. A completed session
// is discarded and any pending map change applies.
func (ps *PlayState) Confirm() error {
	if ps.session == nil {
		return nil
	}
	done, err := ps.session.Confirm()
	if err != nil {
		// The session points at broken content; drop it rather than
		// leave a corrupted cursor live.
		ps.endSession()
		return err
	}
	if done {
		ps.endSession()
	}
	return ps.settle()
}

// CancelDialogue aborts the active dialogue, firing its exit event.
func (ps *PlayState) CancelDialogue() error {
	if ps.session == nil {
		return nil
	}
	ps.session.Cancel()
	ps.endSession()
	return ps.settle()
}

func (ps *PlayState) endSession() {
	ps.session = nil
	ps.sessionDialogueID = ""
}

// settle applies deferred work once the input tick finishes: the
// pending map change when no dialogue is active, and any failure
// raised during dispatch.
func (ps *PlayState) settle() error {
	if ps.pending != nil && ps.session == nil {
		next, ok := ps.maps[ps.pending.mapID]
		if !ok {
			mapID := ps.pending.mapID
			ps.pending = nil
			ps.logger.Error("Pending map change targets unknown map", "map", mapID)
			return fmt.Errorf("map %q: %w", mapID, dialogue.ErrNotFound)
		}
		ps.currentMap = next
		ps.pending = nil
	}

	err := ps.err
	ps.err = nil
	return err
}
