package world

// Map is one playable area: a spawn point and the ordered set of
// interactables placed on it. Tile geometry and rendering are handled
// by the host's map layer, not here.
type Map struct {
	ID            string
	Spawn         Point
	Interactables []Interactable
}

// NewMap creates a map with the given entities.
func NewMap(id string, spawn Point, interactables ...Interactable) *Map {
	return &Map{ID: id, Spawn: spawn, Interactables: interactables}
}

// FindInteractable returns the entity with objectID, or nil.
func (m *Map) FindInteractable(objectID string) Interactable {
	for _, it := range m.Interactables {
		if it.ObjectID() == objectID {
			return it
		}
	}
	return nil
}

// FocusInteractable returns the first entity the player can currently
// trigger, in placement order, or nil.
func (m *Map) FocusInteractable(player Rect) Interactable {
	for _, it := range m.Interactables {
		if it.CanInteract(player) {
			return it
		}
	}
	return nil
}
