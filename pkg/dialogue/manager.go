package dialogue

import (
	"fmt"

	"github.com/lumeris/adventure/pkg/event"
)

// DefaultStartNode is the node a session begins at when the caller
// does not name one.
const DefaultStartNode = "root"

// Manager is the registry of dialogue graphs and the factory for
// sessions. Graphs live for the life of the process; registering under
// an existing id replaces the prior graph wholesale.
type Manager struct {
	dialogues map[string]Graph
	sink      event.Sink
}

// NewManager creates an empty registry. Sessions started from it emit
// events into sink; a nil sink suppresses events.
func NewManager(sink event.Sink) *Manager {
	return &Manager{
		dialogues: make(map[string]Graph),
		sink:      sink,
	}
}

// Register stores a graph built from an ordered node sequence under
// dialogueID. No reachability or cycle validation happens here;
// malformed graphs surface ErrNotFound only when traversal reaches a
// missing node.
func (m *Manager) Register(dialogueID string, nodes []Node) {
	m.dialogues[dialogueID] = NewGraph(nodes)
}

// Registered reports whether a graph exists under dialogueID.
func (m *Manager) Registered(dialogueID string) bool {
	_, ok := m.dialogues[dialogueID]
	return ok
}

// Graph returns the registered graph, or nil if absent. Callers must
// treat it as read-only.
func (m *Manager) Graph(dialogueID string) Graph {
	return m.dialogues[dialogueID]
}

// Start creates a session rooted at startNode (DefaultStartNode when
// empty). It returns ErrNotFound for an unregistered dialogue id or a
// start node missing from the graph.
func (m *Manager) Start(dialogueID, startNode string) (*Session, error) {
	g, ok := m.dialogues[dialogueID]
	if !ok {
		return nil, fmt.Errorf("dialogue %q: %w", dialogueID, ErrNotFound)
	}
	if startNode == "" {
		startNode = DefaultStartNode
	}
	return NewSession(g, startNode, m.sink)
}
