package dialogue

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lumeris/adventure/pkg/event"
)

// recordingSink captures fired events as "name:node_id" strings so
// tests can assert on exact ordering.
type recordingSink struct {
	fired []string
}

func (r *recordingSink) Notify(name string, payload event.Payload) {
	nodeID, _ := payload["node_id"].(string)
	r.fired = append(r.fired, fmt.Sprintf("%s:%s", name, nodeID))
}

func linearGraph() Graph {
	return NewGraph([]Node{
		{ID: "root", Text: "Hello.", NextID: "middle", EnterEvent: "enter_root", ExitEvent: "exit_root"},
		{ID: "middle", Text: "Still here?", NextID: "end", EnterEvent: "enter_middle"},
		{ID: "end", Text: "Goodbye.", ExitEvent: "exit_end"},
	})
}

func branchingGraph() Graph {
	return NewGraph([]Node{
		{ID: "root", Text: "Which way?", Choices: []Choice{
			{Text: "Left", NextID: "left", Event: "chose_left"},
			{Text: "Right", NextID: "right"},
			{Text: "Neither", NextID: ""},
		}},
		{ID: "left", Text: "The left path.", EnterEvent: "enter_left"},
		{ID: "right", Text: "The right path."},
	})
}

func TestNewSession_FiresEnterEvent(t *testing.T) {
	sink := &recordingSink{}
	s, err := NewSession(linearGraph(), "root", sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.Current().ID != "root" {
		t.Errorf("Expected session at root, got %q", s.Current().ID)
	}
	if len(sink.fired) != 1 || sink.fired[0] != "enter_root:root" {
		t.Errorf("Expected [enter_root:root], got %v", sink.fired)
	}
}

func TestNewSession_UnknownStartNode(t *testing.T) {
	_, err := NewSession(linearGraph(), "nope", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSession_LinearTraversalOrdering(t *testing.T) {
	sink := &recordingSink{}
	s, err := NewSession(linearGraph(), "root", sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	done, err := s.Confirm()
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if done {
		t.Error("Expected session to continue after root")
	}

	// Exit of the departing node must come strictly before enter of
	// the arriving node.
	expected := []string{"enter_root:root", "exit_root:root", "enter_middle:middle"}
	assertFired(t, sink, expected)

	// middle has no exit event; end has no enter event.
	done, err = s.Confirm()
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if done {
		t.Error("Expected session to continue after middle")
	}
	assertFired(t, sink, expected)

	// Empty next id completes the session; the terminal exit event
	// still fires.
	done, err = s.Confirm()
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if !done {
		t.Error("Expected session to complete at end")
	}
	assertFired(t, sink, append(expected, "exit_end:end"))
}

func TestSession_BranchingChoiceOrdering(t *testing.T) {
	sink := &recordingSink{}
	s, err := NewSession(branchingGraph(), "root", sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if len(sink.fired) != 0 {
		t.Fatalf("Expected no events on a node without enter event, got %v", sink.fired)
	}

	done, err := s.Confirm()
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if done {
		t.Error("Expected session to continue into left branch")
	}
	if s.Current().ID != "left" {
		t.Errorf("Expected left node, got %q", s.Current().ID)
	}
	// Choice event fires before the target node's enter event.
	assertFired(t, sink, []string{"chose_left:root", "enter_left:left"})
}

func TestSession_ChoiceWithoutEventOrTarget(t *testing.T) {
	sink := &recordingSink{}
	s, err := NewSession(branchingGraph(), "root", sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	s.MoveChoice(2) // "Neither", empty next id
	done, err := s.Confirm()
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if !done {
		t.Error("Expected empty choice target to complete the session")
	}
	if len(sink.fired) != 0 {
		t.Errorf("Expected no events, got %v", sink.fired)
	}
}

func TestSession_MoveChoice(t *testing.T) {
	tests := []struct {
		name     string
		offsets  []int
		expected int
	}{
		{name: "single step", offsets: []int{1}, expected: 1},
		{name: "wraps forward", offsets: []int{1, 1, 1}, expected: 0},
		{name: "wraps backward", offsets: []int{-1}, expected: 2},
		{name: "large negative offset", offsets: []int{-7}, expected: 2},
		{name: "large positive offset", offsets: []int{8}, expected: 2},
		{name: "round trip", offsets: []int{1, -1}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			s, err := NewSession(branchingGraph(), "root", sink)
			if err != nil {
				t.Fatalf("NewSession failed: %v", err)
			}
			for _, off := range tt.offsets {
				s.MoveChoice(off)
			}
			if s.ChoiceIndex() != tt.expected {
				t.Errorf("Expected choice index %d, got %d", tt.expected, s.ChoiceIndex())
			}
			if len(sink.fired) != 0 {
				t.Errorf("MoveChoice must fire no events, got %v", sink.fired)
			}
		})
	}
}

func TestSession_MoveChoiceOnLinearNode(t *testing.T) {
	s, err := NewSession(linearGraph(), "root", nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	s.MoveChoice(1)
	if s.ChoiceIndex() != 0 {
		t.Errorf("Expected choice index 0 on linear node, got %d", s.ChoiceIndex())
	}
}

func TestSession_ChoiceIndexResetsOnTransition(t *testing.T) {
	graph := NewGraph([]Node{
		{ID: "root", Choices: []Choice{
			{Text: "A", NextID: "second"},
			{Text: "B", NextID: "second"},
		}},
		{ID: "second", Choices: []Choice{
			{Text: "C"},
			{Text: "D"},
		}},
	})
	s, err := NewSession(graph, "root", nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	s.MoveChoice(1)
	if _, err := s.Confirm(); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if s.ChoiceIndex() != 0 {
		t.Errorf("Expected choice index reset to 0, got %d", s.ChoiceIndex())
	}
}

func TestSession_DanglingNextID(t *testing.T) {
	graph := NewGraph([]Node{
		{ID: "root", Text: "Hi.", NextID: "missing"},
	})
	s, err := NewSession(graph, "root", nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	_, err = s.Confirm()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for dangling next id, got %v", err)
	}
}

func TestSession_Cancel(t *testing.T) {
	sink := &recordingSink{}
	s, err := NewSession(linearGraph(), "root", sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	s.Cancel()
	// Exit fires, but no transition and no enter event.
	assertFired(t, sink, []string{"enter_root:root", "exit_root:root"})
	if s.Current().ID != "root" {
		t.Errorf("Cancel must not move the session, got %q", s.Current().ID)
	}
}

func TestSession_CancelWithoutExitEvent(t *testing.T) {
	sink := &recordingSink{}
	s, err := NewSession(branchingGraph(), "root", sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	s.Cancel()
	if len(sink.fired) != 0 {
		t.Errorf("Expected no events, got %v", sink.fired)
	}
}

func TestSession_AbandonmentFiresNothing(t *testing.T) {
	sink := &recordingSink{}
	_, err := NewSession(linearGraph(), "root", sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	// Starting a new session abandons the old one: no exit event for
	// the abandoned node, only the new node's enter event.
	_, err = NewSession(linearGraph(), "middle", sink)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	assertFired(t, sink, []string{"enter_root:root", "enter_middle:middle"})
}

func TestResumeSession(t *testing.T) {
	sink := &recordingSink{}
	s, err := ResumeSession(branchingGraph(), "root", 1, sink)
	if err != nil {
		t.Fatalf("ResumeSession failed: %v", err)
	}
	if len(sink.fired) != 0 {
		t.Errorf("ResumeSession must not fire enter events, got %v", sink.fired)
	}
	if s.ChoiceIndex() != 1 {
		t.Errorf("Expected restored choice index 1, got %d", s.ChoiceIndex())
	}
}

func TestResumeSession_ClampsChoiceIndex(t *testing.T) {
	s, err := ResumeSession(branchingGraph(), "root", 99, nil)
	if err != nil {
		t.Fatalf("ResumeSession failed: %v", err)
	}
	if s.ChoiceIndex() != 0 {
		t.Errorf("Expected out-of-range index clamped to 0, got %d", s.ChoiceIndex())
	}
}

func assertFired(t *testing.T, sink *recordingSink, expected []string) {
	t.Helper()
	if len(sink.fired) != len(expected) {
		t.Fatalf("Expected events %v, got %v", expected, sink.fired)
	}
	for i := range expected {
		if sink.fired[i] != expected[i] {
			t.Fatalf("Expected events %v, got %v", expected, sink.fired)
		}
	}
}
