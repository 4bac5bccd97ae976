package canvas

import (
	"math"
	"strings"

	"github.com/tweakcn/tweakcn/backend-go/internal/geom"
)

const largeNudgeMultiple = 10

// PointerDown resolves what a press starts. In priority order:
//  1. secondary button pans, anywhere;
//  2. with selection mode off, a press on empty canvas pans;
//  3. a press on a member of a multi-selection group-drags;
//  4. shift-click adds to the selection;
//  5. ctrl/cmd-click toggles selection;
//  6. a press inside the bounds of a multi-selection group-drags;
//  7. a press on a component selects it and drags it;
//  8. a press on empty canvas clears the selection and starts a marquee.
func (e *Editor) PointerDown(ev PointerEvent) {
	if !e.mounted {
		return
	}
	defer e.syncListeners()

	p := ev.Position
	if ev.Button == ButtonSecondary {
		e.viewport.StartPan(p)
		return
	}
	if ev.Button != ButtonPrimary || e.interaction.Active() {
		return
	}

	hit, onComponent := e.scene.TopmostAt(e.viewport.ToCanvas(p))

	if !onComponent && !e.selectionMode {
		e.Dispatch(ClearSelection{})
		e.viewport.StartPan(p)
		return
	}

	multi := len(e.scene.Selection) > 1
	if onComponent && multi && e.scene.IsSelected(hit.ID) {
		e.interaction.BeginGroupDrag(p)
		return
	}

	if onComponent && ev.Modifiers.Shift {
		e.Dispatch(AddToSelection{ID: hit.ID})
		return
	}
	if onComponent && ev.Modifiers.Command() {
		e.Dispatch(ToggleSelection{ID: hit.ID})
		return
	}

	if multi {
		if bounds, ok := e.scene.SelectionBounds(); ok && bounds.ContainsPoint(e.viewport.ToCanvas(p)) {
			e.interaction.BeginGroupDrag(p)
			return
		}
	}

	if onComponent {
		e.Dispatch(Select{ID: hit.ID})
		topLeft := e.viewport.ToScreen(geom.Point{X: hit.X, Y: hit.Y})
		e.interaction.BeginDrag(DragState{
			ID:     hit.ID,
			Offset: p.Sub(topLeft),
			Start:  geom.Point{X: hit.X, Y: hit.Y},
		})
		return
	}

	e.Dispatch(ClearSelection{})
	e.interaction.BeginMarquee(p)
}

// ResizeStart begins a resize from one of the handles of the single selected component.
func (e *Editor) ResizeStart(id string, h Handle, ev PointerEvent) {
	if !e.mounted || e.interaction.Active() || ev.Button != ButtonPrimary {
		return
	}
	if len(e.scene.Selection) != 1 || e.scene.Selection[0] != id {
		return
	}
	c, ok := e.scene.Get(id)
	if !ok {
		return
	}
	e.interaction.BeginResize(ResizeState{
		ID:         id,
		Handle:     h,
		StartPoint: ev.Position,
		StartPos:   geom.Point{X: c.X, Y: c.Y},
		StartSize:  geom.Size{Width: c.Width, Height: c.Height},
	})
	e.syncListeners()
}

// PointerMove updates the active gesture. Dragged components follow the
// pointer unsnapped; resized components snap their size on every move.
func (e *Editor) PointerMove(ev PointerEvent) {
	if !e.mounted {
		return
	}
	p := ev.Position
	e.viewport.UpdatePan(p)

	switch e.interaction.Mode() {
	case ModeDrag:
		ds, _ := e.interaction.Drag()
		if !e.scene.Has(ds.ID) {
			return
		}
		pos := e.viewport.ToCanvas(p.Sub(ds.Offset))
		e.Dispatch(UpdateComponent{ID: ds.ID, Patch: MovePatch(pos)})

	case ModeResize:
		rs, _ := e.interaction.Resize()
		c, ok := e.scene.Get(rs.ID)
		if !ok {
			return
		}
		delta := p.Sub(rs.StartPoint).Div(e.viewport.Scale)
		r := rs.Handle.Apply(rs.StartPos, rs.StartSize, delta, e.settings.Grid(), e.palette.MinSize(c.Type))
		e.Dispatch(UpdateComponent{ID: rs.ID, Patch: BoundsPatch(r)})

	case ModeSelect:
		e.interaction.updateMarquee(p)

	case ModeGroupDrag:
		e.interaction.updateGroupDrag(p)
	}
}

// PointerUp commits the active gesture and returns to idle.
func (e *Editor) PointerUp(ev PointerEvent) {
	if !e.mounted {
		return
	}
	e.finishGesture(ev.Position)
}

// PointerLeave ends the gesture exactly like a release at the last position.
func (e *Editor) PointerLeave(ev PointerEvent) {
	e.PointerUp(ev)
}

func (e *Editor) finishGesture(p geom.Point) {
	defer e.syncListeners()
	defer e.viewport.EndPan()
	defer e.interaction.End()

	switch e.interaction.Mode() {
	case ModeDrag:
		ds, _ := e.interaction.Drag()
		c, ok := e.scene.Get(ds.ID)
		if !ok {
			return
		}
		snapped := e.settings.Grid().SnapPoint(geom.Point{X: c.X, Y: c.Y})
		e.Dispatch(UpdateComponent{ID: ds.ID, Patch: MovePatch(snapped)})

	case ModeSelect:
		e.interaction.updateMarquee(p)
		m, _ := e.interaction.Marquee()
		r := geom.RectFromPoints(e.viewport.ToCanvas(m.Start), e.viewport.ToCanvas(m.Current))
		e.Dispatch(SelectMany{IDs: e.scene.ContainedIn(r)})

	case ModeGroupDrag:
		e.interaction.updateGroupDrag(p)
		g, _ := e.interaction.GroupDrag()
		delta := e.settings.Grid().SnapPoint(g.Delta.Div(e.viewport.Scale))
		threshold := e.settings.GroupDragThreshold
		if math.Abs(delta.X) < threshold && math.Abs(delta.Y) < threshold {
			return
		}
		e.Dispatch(MoveComponents{IDs: e.Selection(), Delta: delta})
	}
}

// cancelGesture abandons the active gesture. A dragged or resized component
// goes back to where it started; marquee and group drag never touched the scene.
func (e *Editor) cancelGesture() {
	defer e.syncListeners()
	defer e.viewport.EndPan()
	defer e.interaction.End()

	switch e.interaction.Mode() {
	case ModeDrag:
		ds, _ := e.interaction.Drag()
		if e.scene.Has(ds.ID) {
			e.Dispatch(UpdateComponent{ID: ds.ID, Patch: MovePatch(ds.Start)})
		}
	case ModeResize:
		rs, _ := e.interaction.Resize()
		if e.scene.Has(rs.ID) {
			start := geom.Rect{X: rs.StartPos.X, Y: rs.StartPos.Y, Width: rs.StartSize.Width, Height: rs.StartSize.Height}
			e.Dispatch(UpdateComponent{ID: rs.ID, Patch: BoundsPatch(start)})
		}
	}
}

// MarqueeRect returns the live marquee in canvas space while a marquee is active.
func (e *Editor) MarqueeRect() (geom.Rect, bool) {
	m, ok := e.interaction.Marquee()
	if !ok {
		return geom.Rect{}, false
	}
	return geom.RectFromPoints(e.viewport.ToCanvas(m.Start), e.viewport.ToCanvas(m.Current)), true
}

// Wheel zooms around the pointer when ctrl/cmd is held and reports whether
// the host should suppress its default scrolling.
func (e *Editor) Wheel(ev WheelEvent) bool {
	if !e.mounted {
		return false
	}
	return e.viewport.Wheel(ev)
}

// KeyDown handles editor shortcuts and reports whether the key was consumed.
func (e *Editor) KeyDown(ev KeyEvent) bool {
	if !e.mounted {
		return false
	}
	key := strings.ToLower(ev.Key)
	cmd := ev.Modifiers.Command()

	switch {
	case key == "delete" || key == "backspace":
		if len(e.scene.Selection) == 0 {
			return false
		}
		e.DeleteSelected()
	case key == "escape":
		e.cancelGesture()
		e.Dispatch(ClearSelection{})
	case cmd && key == "a":
		e.Dispatch(SelectAll{})
	case cmd && key == "d":
		if len(e.scene.Selection) != 1 {
			return false
		}
		e.Duplicate(e.scene.Selection[0])
	case cmd && (key == "=" || key == "+"):
		e.ZoomIn(e.center())
	case cmd && key == "-":
		e.ZoomOut(e.center())
	case cmd && key == "0":
		e.ResetZoom(e.center())
	case strings.HasPrefix(key, "arrow"):
		return e.nudge(key, ev.Modifiers.Shift)
	default:
		return false
	}
	return true
}

func (e *Editor) nudge(key string, large bool) bool {
	if len(e.scene.Selection) == 0 || e.interaction.Active() {
		return false
	}
	step := e.settings.GridUnit
	if step <= 0 {
		step = 1
	}
	if large {
		step *= largeNudgeMultiple
	}
	var d geom.Point
	switch key {
	case "arrowleft":
		d.X = -step
	case "arrowright":
		d.X = step
	case "arrowup":
		d.Y = -step
	case "arrowdown":
		d.Y = step
	default:
		return false
	}
	e.Dispatch(MoveComponents{IDs: e.Selection(), Delta: d})
	return true
}
