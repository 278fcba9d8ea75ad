package dialogue

import (
	"errors"
	"testing"
)

func TestManager_StartDefaults(t *testing.T) {
	m := NewManager(nil)
	m.Register("mia_intro", []Node{
		{ID: "root", Text: "Hello there."},
		{ID: "aside", Text: "An aside."},
	})

	s, err := m.Start("mia_intro", "")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.Current().ID != DefaultStartNode {
		t.Errorf("Expected default start node %q, got %q", DefaultStartNode, s.Current().ID)
	}

	s, err = m.Start("mia_intro", "aside")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.Current().ID != "aside" {
		t.Errorf("Expected explicit start node, got %q", s.Current().ID)
	}
}

func TestManager_StartUnknown(t *testing.T) {
	m := NewManager(nil)
	m.Register("known", []Node{{ID: "root"}})

	tests := []struct {
		name       string
		dialogueID string
		startNode  string
	}{
		{name: "unregistered dialogue", dialogueID: "missing", startNode: ""},
		{name: "missing start node", dialogueID: "known", startNode: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Start(tt.dialogueID, tt.startNode)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestManager_RegisterReplaces(t *testing.T) {
	m := NewManager(nil)
	m.Register("d", []Node{{ID: "root", Text: "first"}})
	m.Register("d", []Node{{ID: "root", Text: "second"}})

	if !m.Registered("d") {
		t.Fatal("Expected dialogue to be registered")
	}
	if got := m.Graph("d")["root"].Text; got != "second" {
		t.Errorf("Expected re-registration to replace the graph, got %q", got)
	}
}

func TestNewGraph_DuplicateNodeIDs(t *testing.T) {
	g := NewGraph([]Node{
		{ID: "root", Text: "first"},
		{ID: "root", Text: "last wins"},
	})
	if len(g) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(g))
	}
	if g["root"].Text != "last wins" {
		t.Errorf("Expected last duplicate to win, got %q", g["root"].Text)
	}
}
