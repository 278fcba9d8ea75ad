// Package dialogue implements branching conversation graphs and the
// session state machine that walks them. Graphs are authored data;
// side effects travel through an injected event sink, never through
// direct references into game logic.
package dialogue

import "errors"

// ErrNotFound indicates a dialogue id or node id that is not present.
// It always points at broken authored content and is never retried.
var ErrNotFound = errors.New("dialogue not found")

// Choice is one selectable option on a branching node.
type Choice struct {
	Text   string `json:"text"`
	NextID string `json:"next_id,omitempty"` // empty ends the dialogue
	Event  string `json:"event,omitempty"`   // fired when the choice is confirmed
}

// Node is a single block of dialogue text. A node is linear (no
// choices, NextID optionally set) or branching (Choices non-empty,
// NextID ignored for flow).
type Node struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	NextID     string   `json:"next_id,omitempty"`
	Choices    []Choice `json:"choices,omitempty"`
	EnterEvent string   `json:"enter_event,omitempty"`
	ExitEvent  string   `json:"exit_event,omitempty"`
}

// HasChoices reports whether the node is a branching node.
func (n *Node) HasChoices() bool {
	return len(n.Choices) > 0
}

// Graph maps node ids to nodes. Graphs are immutable once registered
// with a Manager; sessions borrow them read-only.
type Graph map[string]*Node

// NewGraph builds a graph from an ordered node sequence. Later nodes
// with a duplicate id overwrite earlier ones. Node references are not
// validated here; a dangling NextID only surfaces when traversal
// reaches it (see cmd/validate for the eager check).
func NewGraph(nodes []Node) Graph {
	g := make(Graph, len(nodes))
	for i := range nodes {
		n := nodes[i]
		g[n.ID] = &n
	}
	return g
}
