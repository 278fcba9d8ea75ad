// Package event defines the named-event contract that couples dialogue
// content to quest and world-mutation logic, plus the router that
// dispatches events to registered handlers.
package event

// Payload carries optional structured data with an event. A nil
// payload is valid and equivalent to an empty one.
type Payload map[string]any

// Event names used by the built-in content. The set is open: handlers
// and content packs may introduce new names, and unknown names are
// ignored by every consumer.
const (
	QuestItemCollected = "quest_item_collected"
	QuestCompleted     = "quest_completed"
	QuestBegin         = "quest_begin"
	QuestTurnIn        = "quest_turn_in"
	TravelToForest     = "travel_to_forest"
	GameEnd            = "game_end"
)

// Sink receives named events. Implementations must tolerate unknown
// event names and incomplete payloads without erroring; dispatch is
// synchronous and runs to completion before Notify returns.
type Sink interface {
	Notify(name string, payload Payload)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(name string, payload Payload)

// Notify calls f(name, payload).
func (f SinkFunc) Notify(name string, payload Payload) {
	f(name, payload)
}

// Discard is a Sink that drops every event.
var Discard Sink = SinkFunc(func(string, Payload) {})
