package dialogue

import (
	"fmt"

	"github.com/lumeris/adventure/pkg/event"
)

// Session is a cursor walking one Graph. It owns no graph data and is
// valid until Confirm reports completion or the caller abandons it.
// One session is active at a time per play context; starting another
// dialogue abandons the old session without firing its exit event.
type Session struct {
	graph       Graph
	currentID   string
	choiceIndex int
	sink        event.Sink
}

// NewSession positions a session at startID and fires that node's
// enter event before returning. A nil sink suppresses all events.
func NewSession(graph Graph, startID string, sink event.Sink) (*Session, error) {
	if _, ok := graph[startID]; !ok {
		return nil, fmt.Errorf("dialogue node %q: %w", startID, ErrNotFound)
	}
	if sink == nil {
		sink = event.Discard
	}

	s := &Session{
		graph:     graph,
		currentID: startID,
		sink:      sink,
	}
	s.fireEnter(s.Current())
	return s, nil
}

// ResumeSession re-creates a session at nodeID with the given
// highlighted choice, without firing the node's enter event. Used when
// restoring a persisted play session: the enter event already fired
// when the node was first reached.
func ResumeSession(graph Graph, nodeID string, choiceIndex int, sink event.Sink) (*Session, error) {
	node, ok := graph[nodeID]
	if !ok {
		return nil, fmt.Errorf("dialogue node %q: %w", nodeID, ErrNotFound)
	}
	if sink == nil {
		sink = event.Discard
	}
	if choiceIndex < 0 || choiceIndex >= len(node.Choices) {
		choiceIndex = 0
	}

	return &Session{
		graph:       graph,
		currentID:   nodeID,
		choiceIndex: choiceIndex,
		sink:        sink,
	}, nil
}

// Current returns the node the session is positioned at.
func (s *Session) Current() *Node {
	return s.graph[s.currentID]
}

// ChoiceIndex returns the highlighted choice on the current node.
// Always 0 for linear nodes.
func (s *Session) ChoiceIndex() int {
	return s.choiceIndex
}

// MoveChoice cyclically moves the highlighted choice by offset. It is
// a no-op on linear nodes, fires no events, and never changes the
// current node. Any offset is valid, including negative ones.
func (s *Session) MoveChoice(offset int) {
	node := s.Current()
	if !node.HasChoices() {
		return
	}
	n := len(node.Choices)
	s.choiceIndex = ((s.choiceIndex+offset)%n + n) % n
}

// Confirm advances the dialogue one step and reports whether the
// session has completed. On a branching node the highlighted choice is
// taken and its event fired; on a linear node the exit event fires.
// Either event fires strictly before the next node's enter event. An
// empty resolved next id completes the session. A next id missing from
// the graph is broken content and returns ErrNotFound; the session
// must not be used after that.
func (s *Session) Confirm() (bool, error) {
	node := s.Current()

	var nextID string
	if node.HasChoices() {
		choice := node.Choices[s.choiceIndex]
		if choice.Event != "" {
			s.sink.Notify(choice.Event, event.Payload{"node_id": node.ID})
		}
		nextID = choice.NextID
	} else {
		if node.ExitEvent != "" {
			s.sink.Notify(node.ExitEvent, event.Payload{"node_id": node.ID})
		}
		nextID = node.NextID
	}

	if nextID == "" {
		return true, nil
	}

	if _, ok := s.graph[nextID]; !ok {
		return false, fmt.Errorf("dialogue node %q: %w", nextID, ErrNotFound)
	}

	s.currentID = nextID
	s.choiceIndex = 0
	s.fireEnter(s.Current())
	return false, nil
}

// Cancel fires the current node's exit event, if any. No transition
// happens and no enter event fires; the caller simply stops using the
// session. Used when the player backs out of a conversation.
func (s *Session) Cancel() {
	node := s.Current()
	if node.ExitEvent != "" {
		s.sink.Notify(node.ExitEvent, event.Payload{"node_id": node.ID})
	}
}

func (s *Session) fireEnter(node *Node) {
	if node.EnterEvent != "" {
		s.sink.Notify(node.EnterEvent, event.Payload{"node_id": node.ID})
	}
}
