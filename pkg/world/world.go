// Package world models the interactable entities of the tile-map
// world: NPCs, doors, quest items and lore objects. Rendering,
// collision against map geometry and asset handling live outside this
// package; entities only know their footprint and what happens when
// the player triggers them.
package world

import "github.com/lumeris/adventure/pkg/event"

// Point is a world-space position in pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned world-space rectangle.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Inflate grows the rect by dx and dy on each side, keeping the center.
func (r Rect) Inflate(dx, dy int) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// interactPad is how far beyond its footprint an entity responds to
// the player, in pixels.
const interactPad = 12

// Host is the world query/mutation surface entities act through. The
// play state implements it; entities never hold references to each
// other or to game logic.
type Host interface {
	// BeginDialogue starts a named dialogue, abandoning any active
	// session. An empty startNode means the graph's root.
	BeginDialogue(dialogueID, startNode string)

	// RequestMapChange defers a map transition until no dialogue is
	// active.
	RequestMapChange(mapID string, spawn Point)

	// Notify emits a named event into the play context's router.
	Notify(name string, payload event.Payload)
}

// Interactable is a world entity the player can trigger. The variant
// set is closed: NPC, Door, QuestItem and Lore.
type Interactable interface {
	ObjectID() string
	CanInteract(player Rect) bool
	Interact(host Host)
}

// Object carries the identity and footprint shared by every variant.
type Object struct {
	ID      string `json:"id"`
	Rect    Rect   `json:"rect"`
	Enabled bool   `json:"enabled"`
}

// ObjectID returns the entity's unique id within its map.
func (o *Object) ObjectID() string { return o.ID }

// CanInteract reports whether the player is close enough to trigger
// the entity. Disabled entities never respond.
func (o *Object) CanInteract(player Rect) bool {
	return o.Enabled && o.Rect.Inflate(interactPad, interactPad).Intersects(player)
}

// NPC is a talking entity bound to a dialogue graph. The bound graph
// can be swapped at runtime as quest state changes.
type NPC struct {
	Object
	DialogueID string `json:"dialogue_id"`
}

// NewNPC creates an enabled NPC bound to dialogueID.
func NewNPC(id string, rect Rect, dialogueID string) *NPC {
	return &NPC{Object: Object{ID: id, Rect: rect, Enabled: true}, DialogueID: dialogueID}
}

// SetDialogue rebinds the NPC's active dialogue graph.
func (n *NPC) SetDialogue(dialogueID string) {
	n.DialogueID = dialogueID
}

// Interact starts the NPC's bound dialogue.
func (n *NPC) Interact(host Host) {
	host.BeginDialogue(n.DialogueID, "")
}

// Door moves the player to another map, optionally showing a dialogue
// first. The transition is deferred until the dialogue closes.
type Door struct {
	Object
	TargetMap   string `json:"target_map"`
	TargetSpawn Point  `json:"target_spawn"`
	DialogueID  string `json:"dialogue_id,omitempty"`
}

// NewDoor creates an enabled door to targetMap.
func NewDoor(id string, rect Rect, targetMap string, spawn Point, dialogueID string) *Door {
	return &Door{
		Object:      Object{ID: id, Rect: rect, Enabled: true},
		TargetMap:   targetMap,
		TargetSpawn: spawn,
		DialogueID:  dialogueID,
	}
}

// Interact shows the door's dialogue, if any, and requests the map
// change.
func (d *Door) Interact(host Host) {
	if d.DialogueID != "" {
		host.BeginDialogue(d.DialogueID, "")
	}
	host.RequestMapChange(d.TargetMap, d.TargetSpawn)
}

// QuestItem is a collectible: interacting shows its dialogue, emits
// its quest event with the item's object id, and disables the entity
// so it cannot be collected twice.
type QuestItem struct {
	Object
	DialogueID string `json:"dialogue_id"`
	QuestEvent string `json:"quest_event"`
}

// NewQuestItem creates an enabled quest item.
func NewQuestItem(id string, rect Rect, dialogueID, questEvent string) *QuestItem {
	return &QuestItem{
		Object:     Object{ID: id, Rect: rect, Enabled: true},
		DialogueID: dialogueID,
		QuestEvent: questEvent,
	}
}

// Interact collects the item.
func (q *QuestItem) Interact(host Host) {
	host.BeginDialogue(q.DialogueID, "")
	host.Notify(q.QuestEvent, event.Payload{"object_id": q.ID})
	q.Enabled = false
}

// Lore is a flavor object that only shows a dialogue.
type Lore struct {
	Object
	DialogueID string `json:"dialogue_id"`
}

// NewLore creates an enabled lore object.
func NewLore(id string, rect Rect, dialogueID string) *Lore {
	return &Lore{Object: Object{ID: id, Rect: rect, Enabled: true}, DialogueID: dialogueID}
}

// Interact shows the lore dialogue.
func (l *Lore) Interact(host Host) {
	host.BeginDialogue(l.DialogueID, "")
}
