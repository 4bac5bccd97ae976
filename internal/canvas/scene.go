package canvas

import (
	"slices"

	"github.com/tweakcn/tweakcn/backend-go/internal/geom"
)

// Scene owns the placed components and the selection set.
// Every method is a silent no-op when it names an id that does not exist.
// Selection never holds an id that is missing from Components.
type Scene struct {
	Components []Component `json:"components"`
	Selection  []string    `json:"selection"`
}

// Clone returns a deep copy.
func (s Scene) Clone() Scene {
	out := Scene{
		Components: make([]Component, len(s.Components)),
		Selection:  slices.Clone(s.Selection),
	}
	for i, c := range s.Components {
		out.Components[i] = c.Clone()
	}
	return out
}

func (s Scene) index(id string) int {
	return slices.IndexFunc(s.Components, func(c Component) bool { return c.ID == id })
}

// Get returns the component with the given id.
func (s Scene) Get(id string) (Component, bool) {
	i := s.index(id)
	if i < 0 {
		return Component{}, false
	}
	return s.Components[i], true
}

func (s Scene) Has(id string) bool {
	return s.index(id) >= 0
}

func (s Scene) maxZIndex() int {
	m := 0
	for _, c := range s.Components {
		m = max(m, c.ZIndex)
	}
	return m
}

// Add appends c on top of the stack and makes it the only selected component.
func (s *Scene) Add(c Component) {
	if c.ID == "" || s.Has(c.ID) {
		return
	}
	c.ZIndex = s.maxZIndex() + 1
	c.Props = c.Props.Clone()
	s.Components = append(s.Components, c)
	s.Selection = []string{c.ID}
}

func (s *Scene) Update(id string, patch ComponentPatch) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.Components[i].apply(patch)
}

func (s *Scene) UpdateProps(id string, patch Props) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.Components[i].Props = s.Components[i].Props.Merge(patch)
}

func (s *Scene) Delete(id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.Components = slices.Delete(s.Components, i, i+1)
	s.Selection = slices.DeleteFunc(s.Selection, func(sel string) bool { return sel == id })
}

// DeleteSelected removes every selected component.
func (s *Scene) DeleteSelected() {
	if len(s.Selection) == 0 {
		return
	}
	selected := s.selectedSet()
	s.Components = slices.DeleteFunc(s.Components, func(c Component) bool { return selected[c.ID] })
	s.Selection = nil
}

// Duplicate clones id under newID, shifted by offset, and selects the copy.
func (s *Scene) Duplicate(id, newID string, offset geom.Point) {
	src, ok := s.Get(id)
	if !ok || newID == "" || s.Has(newID) {
		return
	}
	dup := src.Clone()
	dup.ID = newID
	dup.X += offset.X
	dup.Y += offset.Y
	dup.ZIndex = s.maxZIndex() + 1
	s.Components = append(s.Components, dup)
	s.Selection = []string{newID}
}

// MoveBy shifts every listed component by delta.
func (s *Scene) MoveBy(ids []string, delta geom.Point) {
	for _, id := range ids {
		if i := s.index(id); i >= 0 {
			s.Components[i].X += delta.X
			s.Components[i].Y += delta.Y
		}
	}
}

func (s *Scene) BringToFront(id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.Components[i].ZIndex = s.maxZIndex() + 1
}

// SendToBack puts id at zIndex 0 and renumbers everything else 1..n-1,
// keeping their relative order.
func (s *Scene) SendToBack(id string) {
	target := s.index(id)
	if target < 0 {
		return
	}

	others := make([]int, 0, len(s.Components)-1)
	for i := range s.Components {
		if i != target {
			others = append(others, i)
		}
	}
	slices.SortStableFunc(others, func(a, b int) int {
		return s.Components[a].ZIndex - s.Components[b].ZIndex
	})

	s.Components[target].ZIndex = 0
	for rank, i := range others {
		s.Components[i].ZIndex = rank + 1
	}
}

// BringForward swaps zIndex with the component directly above id.
func (s *Scene) BringForward(id string) {
	s.swapWithNeighbor(id, true)
}

// SendBackward swaps zIndex with the component directly below id.
func (s *Scene) SendBackward(id string) {
	s.swapWithNeighbor(id, false)
}

func (s *Scene) swapWithNeighbor(id string, above bool) {
	target := s.index(id)
	if target < 0 {
		return
	}
	z := s.Components[target].ZIndex

	neighbor := -1
	for i, c := range s.Components {
		if i == target {
			continue
		}
		if above && c.ZIndex > z && (neighbor < 0 || c.ZIndex < s.Components[neighbor].ZIndex) {
			neighbor = i
		}
		if !above && c.ZIndex < z && (neighbor < 0 || c.ZIndex > s.Components[neighbor].ZIndex) {
			neighbor = i
		}
	}
	if neighbor < 0 {
		return
	}

	s.Components[target].ZIndex, s.Components[neighbor].ZIndex =
		s.Components[neighbor].ZIndex, s.Components[target].ZIndex
}

// --- Selection ---

func (s *Scene) Select(id string) {
	if !s.Has(id) {
		return
	}
	s.Selection = []string{id}
}

// SelectMany replaces the selection wholesale. Unknown and repeated ids are dropped.
func (s *Scene) SelectMany(ids []string) {
	sel := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.Has(id) && !slices.Contains(sel, id) {
			sel = append(sel, id)
		}
	}
	s.Selection = sel
}

func (s *Scene) Toggle(id string) {
	if i := slices.Index(s.Selection, id); i >= 0 {
		s.Selection = slices.Delete(s.Selection, i, i+1)
		return
	}
	if s.Has(id) {
		s.Selection = append(s.Selection, id)
	}
}

// AddToSelection adds id if it is not already selected. It never removes.
func (s *Scene) AddToSelection(id string) {
	if !s.Has(id) || slices.Contains(s.Selection, id) {
		return
	}
	s.Selection = append(s.Selection, id)
}

func (s *Scene) ClearSelection() {
	s.Selection = nil
}

func (s *Scene) SelectAll() {
	s.Selection = make([]string, len(s.Components))
	for i, c := range s.Components {
		s.Selection[i] = c.ID
	}
}

func (s Scene) IsSelected(id string) bool {
	return slices.Contains(s.Selection, id)
}

func (s Scene) selectedSet() map[string]bool {
	set := make(map[string]bool, len(s.Selection))
	for _, id := range s.Selection {
		set[id] = true
	}
	return set
}

// SelectedComponents is recomputed from the component list on every call.
func (s Scene) SelectedComponents() []Component {
	selected := s.selectedSet()
	var out []Component
	for _, c := range s.Components {
		if selected[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// SelectionBounds returns the bounding rect of the selection and whether it is non-empty.
func (s Scene) SelectionBounds() (geom.Rect, bool) {
	selected := s.SelectedComponents()
	if len(selected) == 0 {
		return geom.Rect{}, false
	}
	rects := make([]geom.Rect, len(selected))
	for i, c := range selected {
		rects[i] = c.Rect()
	}
	return geom.BoundingRect(rects), true
}

// TopmostAt returns the highest-zIndex component containing the canvas point.
// On equal zIndex the later component in the list wins, matching paint order.
func (s Scene) TopmostAt(p geom.Point) (Component, bool) {
	best := -1
	for i, c := range s.Components {
		if !c.Rect().ContainsPoint(p) {
			continue
		}
		if best < 0 || c.ZIndex >= s.Components[best].ZIndex {
			best = i
		}
	}
	if best < 0 {
		return Component{}, false
	}
	return s.Components[best], true
}

// ContainedIn returns the ids of components that lie fully inside r.
func (s Scene) ContainedIn(r geom.Rect) []string {
	var ids []string
	for _, c := range s.Components {
		if r.ContainsRect(c.Rect()) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Ordered returns the components sorted by zIndex, bottom first.
func (s Scene) Ordered() []Component {
	out := slices.Clone(s.Components)
	slices.SortStableFunc(out, func(a, b Component) int { return a.ZIndex - b.ZIndex })
	return out
}
