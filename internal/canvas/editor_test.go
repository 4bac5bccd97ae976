package canvas

import (
	"fmt"
	"slices"
	"testing"

	"github.com/tweakcn/tweakcn/backend-go/internal/geom"
)

type countingListeners struct {
	installs, removes int
}

func (l *countingListeners) Install() { l.installs++ }
func (l *countingListeners) Remove()  { l.removes++ }

func (l *countingListeners) installed() bool { return l.installs > l.removes }

func newTestEditor(t *testing.T, opts ...Option) (*Editor, *countingListeners) {
	t.Helper()
	n := 0
	l := &countingListeners{}
	opts = append([]Option{
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("c%d", n)
		}),
		WithListeners(l),
	}, opts...)
	return NewEditor(DefaultSettings(), opts...), l
}

func at(x, y float64) PointerEvent {
	return PointerEvent{Position: geom.Point{X: x, Y: y}, Button: ButtonPrimary}
}

func mustGet(t *testing.T, e *Editor, id string) Component {
	t.Helper()
	c, ok := e.Component(id)
	if !ok {
		t.Fatalf("component %s missing", id)
	}
	return c
}

// place adds components with exact geometry, bypassing drop snapping.
func place(e *Editor, cs ...Component) {
	for _, c := range cs {
		e.Dispatch(AddComponent{Component: c})
	}
	e.Dispatch(ClearSelection{})
}

func TestEditorDrop_SnapsAndSelects(t *testing.T) {
	e, _ := newTestEditor(t)

	id, ok := e.Drop(ComponentButton, geom.Point{X: 103, Y: 47})
	if !ok {
		t.Fatal("drop failed")
	}
	c := mustGet(t, e, id)
	if c.Rect() != (geom.Rect{X: 100, Y: 50, Width: 120, Height: 40}) {
		t.Errorf("dropped rect = %+v", c.Rect())
	}
	if c.ZIndex != 1 {
		t.Errorf("zIndex = %d, want 1", c.ZIndex)
	}
	if c.Props.String("label", "") != "Button" {
		t.Errorf("default props = %v", c.Props)
	}
	if !slices.Equal(e.Selection(), []string{id}) {
		t.Errorf("selection = %v", e.Selection())
	}

	if _, ok := e.Drop("carousel", geom.Point{}); ok {
		t.Error("unknown type dropped")
	}
}

func TestEditorDrop_UsesViewport(t *testing.T) {
	e, _ := newTestEditor(t)
	e.viewport.Scale = 2
	e.viewport.Offset = geom.Point{X: 40, Y: 0}

	id, _ := e.Drop(ComponentBadge, geom.Point{X: 246, Y: 100})
	c := mustGet(t, e, id)
	if c.X != 100 || c.Y != 50 {
		t.Errorf("drop at zoom = (%v,%v), want (100,50)", c.X, c.Y)
	}
}

func TestEditorDuplicate(t *testing.T) {
	e, _ := newTestEditor(t)
	id, _ := e.Drop(ComponentButton, geom.Point{X: 103, Y: 47})

	dup, ok := e.Duplicate(id)
	if !ok {
		t.Fatal("duplicate failed")
	}
	c := mustGet(t, e, dup)
	if c.X != 120 || c.Y != 70 {
		t.Errorf("duplicate at (%v,%v), want (120,70)", c.X, c.Y)
	}
	if !slices.Equal(e.Selection(), []string{dup}) {
		t.Errorf("selection = %v, want [%s]", e.Selection(), dup)
	}
	if _, ok := e.Duplicate("missing"); ok {
		t.Error("duplicated a missing component")
	}
}

func TestEditorDuplicate_PartialSettings(t *testing.T) {
	e := NewEditor(Settings{GridUnit: 10}, WithIDGenerator(func() string { return "copy" }))
	place(e, comp("a", 100, 50, 120, 40))

	dup, ok := e.Duplicate("a")
	if !ok {
		t.Fatal("duplicate failed")
	}
	c := mustGet(t, e, dup)
	if c.X != 120 || c.Y != 70 {
		t.Errorf("duplicate at (%v,%v), want (120,70)", c.X, c.Y)
	}
	if got := e.Settings().DuplicateGridMultiple; got != 2 {
		t.Errorf("DuplicateGridMultiple = %v, want 2", got)
	}
}

func TestEditorSendToBack(t *testing.T) {
	e, _ := newTestEditor(t)
	a, _ := e.Drop(ComponentButton, geom.Point{X: 0, Y: 0})
	b, _ := e.Drop(ComponentInput, geom.Point{X: 300, Y: 0})

	e.Dispatch(SendToBack{ID: b})
	if mustGet(t, e, b).ZIndex != 0 || mustGet(t, e, a).ZIndex != 1 {
		t.Errorf("z = a:%d b:%d", mustGet(t, e, a).ZIndex, mustGet(t, e, b).ZIndex)
	}
}

func TestEditorDrag_SnapsOnRelease(t *testing.T) {
	e, l := newTestEditor(t)
	id, _ := e.Drop(ComponentButton, geom.Point{X: 100, Y: 50})

	e.PointerDown(at(110, 60))
	if e.Interaction().Mode() != ModeDrag {
		t.Fatalf("mode = %s, want drag", e.Interaction().Mode())
	}
	if !l.installed() {
		t.Error("listeners not installed during drag")
	}

	e.PointerMove(at(133, 77))
	if c := mustGet(t, e, id); c.X != 123 || c.Y != 67 {
		t.Errorf("mid-drag position = (%v,%v), want unsnapped (123,67)", c.X, c.Y)
	}

	e.PointerUp(at(133, 77))
	if c := mustGet(t, e, id); c.X != 120 || c.Y != 70 {
		t.Errorf("released at (%v,%v), want (120,70)", c.X, c.Y)
	}
	if e.Interaction().Active() || l.installed() {
		t.Errorf("gesture still active: mode=%s listeners=%v", e.Interaction().Mode(), l.installed())
	}
	if l.installs != 1 || l.removes != 1 {
		t.Errorf("installs=%d removes=%d, want 1/1", l.installs, l.removes)
	}
}

func TestEditorDrag_AtZoom(t *testing.T) {
	e, _ := newTestEditor(t)
	place(e, comp("a", 100, 50, 120, 40))
	e.viewport.Scale = 2

	e.PointerDown(at(210, 110))
	e.PointerMove(at(250, 130))
	if c := mustGet(t, e, "a"); c.X != 120 || c.Y != 60 {
		t.Errorf("position = (%v,%v), want (120,60)", c.X, c.Y)
	}
	e.PointerLeave(at(250, 130))
	if e.Interaction().Active() {
		t.Error("pointer leave did not end the drag")
	}
}

func TestEditorPointerDown_SelectsTopmost(t *testing.T) {
	e, _ := newTestEditor(t)
	place(e, comp("a", 0, 0, 100, 100), comp("b", 50, 50, 100, 100))

	e.PointerDown(at(60, 60))
	e.PointerUp(at(60, 60))
	if !slices.Equal(e.Selection(), []string{"b"}) {
		t.Errorf("selection = %v, want [b]", e.Selection())
	}
}

func TestEditorModifierClicks(t *testing.T) {
	e, _ := newTestEditor(t)
	place(e, comp("a", 0, 0, 50, 50), comp("b", 100, 0, 50, 50))
	e.Dispatch(Select{ID: "a"})

	shift := at(110, 10)
	shift.Modifiers.Shift = true
	e.PointerDown(shift)
	if !slices.Equal(e.Selection(), []string{"a", "b"}) {
		t.Errorf("shift-click selection = %v", e.Selection())
	}
	if e.Interaction().Active() {
		t.Errorf("shift-click started %s", e.Interaction().Mode())
	}

	e.Dispatch(Select{ID: "a"})
	cmd := at(10, 10)
	cmd.Modifiers.Meta = true
	e.PointerDown(cmd)
	if len(e.Selection()) != 0 {
		t.Errorf("cmd-click on selected = %v, want empty", e.Selection())
	}
	e.PointerDown(cmd)
	if !slices.Equal(e.Selection(), []string{"a"}) {
		t.Errorf("cmd-click on unselected = %v, want [a]", e.Selection())
	}
}

func TestEditorMarquee(t *testing.T) {
	e, l := newTestEditor(t)
	place(e, comp("a", 20, 20, 50, 50), comp("b", 200, 200, 50, 50))
	e.Dispatch(Select{ID: "b"})

	e.PointerDown(at(0, 0))
	if e.Interaction().Mode() != ModeSelect {
		t.Fatalf("mode = %s, want select", e.Interaction().Mode())
	}
	if len(e.Selection()) != 0 {
		t.Errorf("press on empty canvas kept selection %v", e.Selection())
	}
	e.PointerMove(at(100, 100))
	if r, ok := e.MarqueeRect(); !ok || r != (geom.Rect{Width: 100, Height: 100}) {
		t.Errorf("marquee = %+v, %v", r, ok)
	}
	e.PointerUp(at(100, 100))
	if !slices.Equal(e.Selection(), []string{"a"}) {
		t.Errorf("marquee selection = %v, want [a]", e.Selection())
	}

	// Dragged up-left, covering both.
	e.PointerDown(at(300, 300))
	e.PointerUp(at(10, 10))
	if len(e.Selection()) != 2 {
		t.Errorf("reverse marquee selection = %v", e.Selection())
	}
	if l.installed() || l.installs != l.removes {
		t.Errorf("listeners unbalanced: %+v", *l)
	}
}

func TestEditorGroupDrag(t *testing.T) {
	e, _ := newTestEditor(t)
	place(e, comp("a", 0, 0, 100, 40), comp("b", 200, 0, 100, 40))
	e.Dispatch(SelectAll{})

	e.PointerDown(at(10, 10))
	if e.Interaction().Mode() != ModeGroupDrag {
		t.Fatalf("mode = %s, want groupDrag", e.Interaction().Mode())
	}
	e.PointerMove(at(33, 10))
	// Components stay put until release; only the preview moves.
	if mustGet(t, e, "a").X != 0 {
		t.Error("group drag moved components before release")
	}
	e.PointerUp(at(33, 10))

	if a, b := mustGet(t, e, "a"), mustGet(t, e, "b"); a.X != 20 || b.X != 220 || a.Y != 0 || b.Y != 0 {
		t.Errorf("after group drag a=(%v,%v) b=(%v,%v)", a.X, a.Y, b.X, b.Y)
	}
	if len(e.Selection()) != 2 {
		t.Errorf("group drag changed selection: %v", e.Selection())
	}
}

func TestEditorGroupDrag_BelowThresholdIsClick(t *testing.T) {
	e, _ := newTestEditor(t)
	place(e, comp("a", 0, 0, 100, 40), comp("b", 200, 0, 100, 40))
	e.Dispatch(SelectAll{})

	e.PointerDown(at(10, 10))
	e.PointerUp(at(12, 11))
	if mustGet(t, e, "a").X != 0 || mustGet(t, e, "b").X != 200 {
		t.Error("tiny group drag moved components")
	}
	if e.Interaction().Active() {
		t.Error("gesture still active")
	}
}

func TestEditorGroupDrag_FromInsideBounds(t *testing.T) {
	e, _ := newTestEditor(t)
	place(e, comp("a", 0, 0, 100, 40), comp("b", 200, 0, 100, 40))
	e.Dispatch(SelectAll{})

	e.PointerDown(at(150, 20))
	if e.Interaction().Mode() != ModeGroupDrag {
		t.Fatalf("press between selected components: mode = %s", e.Interaction().Mode())
	}
	e.PointerUp(at(150, 50))
	if mustGet(t, e, "a").Y != 30 || mustGet(t, e, "b").Y != 30 {
		t.Errorf("a.y=%v b.y=%v, want 30", mustGet(t, e, "a").Y, mustGet(t, e, "b").Y)
	}
}

func TestEditorResize(t *testing.T) {
	e, l := newTestEditor(t)
	id, _ := e.Drop(ComponentButton, geom.Point{X: 100, Y: 50})

	e.ResizeStart(id, HandleBottomRight, at(220, 90))
	if e.Interaction().Mode() != ModeResize || !l.installed() {
		t.Fatalf("mode = %s installed = %v", e.Interaction().Mode(), l.installed())
	}
	e.PointerMove(at(253, 104))
	if c := mustGet(t, e, id); c.Width != 150 || c.Height != 50 {
		t.Errorf("live resize = %vx%v, want 150x50", c.Width, c.Height)
	}
	e.PointerMove(at(0, 0))
	if c := mustGet(t, e, id); c.Width != 40 || c.Height != 20 {
		t.Errorf("resize below minimum = %vx%v, want 40x20", c.Width, c.Height)
	}
	e.PointerUp(at(0, 0))
	if e.Interaction().Active() || l.installed() {
		t.Error("resize did not end")
	}
}

func TestEditorResize_LeftEdgeAtZoom(t *testing.T) {
	e, _ := newTestEditor(t)
	place(e, comp("a", 100, 50, 120, 40))
	e.Dispatch(Select{ID: "a"})
	e.viewport.Scale = 2

	e.ResizeStart("a", HandleLeft, at(200, 120))
	e.PointerMove(at(240, 120))
	c := mustGet(t, e, "a")
	if c.X != 120 || c.Width != 100 || c.Height != 40 {
		t.Errorf("left resize = %+v, want x=120 width=100", c.Rect())
	}
}

func TestEditorResize_RequiresSingleSelection(t *testing.T) {
	e, _ := newTestEditor(t)
	place(e, comp("a", 0, 0, 100, 40), comp("b", 200, 0, 100, 40))

	e.ResizeStart("a", HandleRight, at(100, 20))
	if e.Interaction().Active() {
		t.Error("resize started on unselected component")
	}
	e.Dispatch(SelectAll{})
	e.ResizeStart("a", HandleRight, at(100, 20))
	if e.Interaction().Active() {
		t.Error("resize started with multiple selected")
	}
}

func TestEditorSecondaryButtonPans(t *testing.T) {
	e, l := newTestEditor(t)
	place(e, comp("a", 0, 0, 100, 100))

	e.PointerDown(PointerEvent{Position: geom.Point{X: 10, Y: 10}, Button: ButtonSecondary})
	if !e.Viewport().Panning() || !l.installed() {
		t.Fatal("secondary press did not start a pan")
	}
	e.PointerMove(at(30, 25))
	e.PointerMove(at(40, 25))
	if e.Viewport().Offset != (geom.Point{X: 30, Y: 15}) {
		t.Errorf("offset = %+v, want (30,15)", e.Viewport().Offset)
	}
	if mustGet(t, e, "a").X != 0 {
		t.Error("pan moved a component")
	}
	e.PointerUp(at(40, 25))
	if e.Viewport().Panning() || l.installed() {
		t.Error("pan did not end")
	}
}

func TestEditorMiddleButtonIgnored(t *testing.T) {
	e, l := newTestEditor(t)
	e.PointerDown(PointerEvent{Position: geom.Point{X: 10, Y: 10}, Button: ButtonMiddle})
	if e.Interaction().Active() || e.Viewport().Panning() || l.installs != 0 {
		t.Error("middle button started a gesture")
	}
}

func TestEditorPanningMode(t *testing.T) {
	e, _ := newTestEditor(t)
	place(e, comp("a", 0, 0, 100, 100))
	e.Dispatch(Select{ID: "a"})
	e.SetSelectionMode(false)

	e.PointerDown(at(500, 500))
	if !e.Viewport().Panning() || e.Interaction().Active() {
		t.Fatalf("empty press in panning mode: panning=%v mode=%s", e.Viewport().Panning(), e.Interaction().Mode())
	}
	if len(e.Selection()) != 0 {
		t.Errorf("selection = %v, want empty", e.Selection())
	}
	e.PointerUp(at(500, 500))

	// Components stay draggable.
	e.PointerDown(at(10, 10))
	if e.Interaction().Mode() != ModeDrag {
		t.Errorf("press on component in panning mode: mode = %s", e.Interaction().Mode())
	}
}

func TestEditorKeyboard(t *testing.T) {
	e, _ := newTestEditor(t)
	place(e, comp("a", 0, 0, 100, 40), comp("b", 200, 0, 100, 40))

	cmd := Modifiers{Ctrl: true}
	if !e.KeyDown(KeyEvent{Key: "a", Modifiers: cmd}) || len(e.Selection()) != 2 {
		t.Fatalf("cmd+a selection = %v", e.Selection())
	}
	if !e.KeyDown(KeyEvent{Key: "ArrowRight"}) {
		t.Error("arrow not consumed")
	}
	if mustGet(t, e, "a").X != 10 || mustGet(t, e, "b").X != 210 {
		t.Errorf("nudge: a.x=%v b.x=%v", mustGet(t, e, "a").X, mustGet(t, e, "b").X)
	}
	e.KeyDown(KeyEvent{Key: "ArrowUp", Modifiers: Modifiers{Shift: true}})
	if mustGet(t, e, "a").Y != -100 {
		t.Errorf("shift nudge: a.y=%v, want -100", mustGet(t, e, "a").Y)
	}

	if !e.KeyDown(KeyEvent{Key: "Escape"}) || len(e.Selection()) != 0 {
		t.Errorf("escape left selection %v", e.Selection())
	}
	if e.KeyDown(KeyEvent{Key: "Delete"}) {
		t.Error("delete with empty selection consumed")
	}

	e.Dispatch(Select{ID: "a"})
	if !e.KeyDown(KeyEvent{Key: "d", Modifiers: cmd}) {
		t.Error("cmd+d not consumed")
	}
	dup := e.Selection()[0]
	if dup == "a" || !e.scene.Has(dup) {
		t.Errorf("cmd+d selection = %v", e.Selection())
	}

	if !e.KeyDown(KeyEvent{Key: "Backspace"}) || e.scene.Has(dup) {
		t.Error("backspace did not delete the selection")
	}
	if e.KeyDown(KeyEvent{Key: "q"}) {
		t.Error("unbound key consumed")
	}
}

func TestEditorKeyboardZoomAroundCenter(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetContainerSize(geom.Size{Width: 800, Height: 600})

	e.KeyDown(KeyEvent{Key: "=", Modifiers: Modifiers{Meta: true}})
	vp := e.Viewport()
	if !approx(vp.Scale, 1.2) || !approxPoint(vp.Offset, geom.Point{X: -80, Y: -60}) {
		t.Errorf("scale=%v offset=%+v", vp.Scale, vp.Offset)
	}
	e.KeyDown(KeyEvent{Key: "0", Modifiers: Modifiers{Meta: true}})
	vp = e.Viewport()
	if vp.Scale != 1 || !approxPoint(vp.Offset, geom.Point{}) {
		t.Errorf("after reset scale=%v offset=%+v", vp.Scale, vp.Offset)
	}
}

func TestEditorWheel(t *testing.T) {
	e, _ := newTestEditor(t)
	if e.Wheel(WheelEvent{Position: geom.Point{X: 100, Y: 100}, DeltaY: -10}) {
		t.Error("plain wheel consumed")
	}
	ev := WheelEvent{Position: geom.Point{X: 100, Y: 100}, DeltaY: -10, Modifiers: Modifiers{Ctrl: true}}
	if !e.Wheel(ev) || !approx(e.Viewport().Scale, 1.1) {
		t.Errorf("ctrl+wheel scale = %v", e.Viewport().Scale)
	}
}

func TestEditorZoomToFit(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetContainerSize(geom.Size{Width: 800, Height: 800})
	e.ZoomToFit()
	if e.Viewport().Scale != 1 {
		t.Error("empty canvas changed zoom")
	}

	place(e, comp("a", 100, 100, 200, 100), comp("b", 300, 200, 200, 100))
	e.ZoomToFit()
	if !approx(e.Viewport().Scale, 2) {
		t.Errorf("scale = %v, want 2", e.Viewport().Scale)
	}
}

func TestEditorSetGridUnit(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetGridUnit(25)
	id, _ := e.Drop(ComponentAvatar, geom.Point{X: 40, Y: 60})
	if c := mustGet(t, e, id); c.X != 50 || c.Y != 50 || c.Width != 50 || c.Height != 50 {
		t.Errorf("drop with grid 25 = %+v", c.Rect())
	}
	e.SetGridUnit(0)
	id, _ = e.Drop(ComponentAvatar, geom.Point{X: 41, Y: 63})
	if c := mustGet(t, e, id); c.X != 41 || c.Y != 63 {
		t.Errorf("drop without grid = %+v", c.Rect())
	}
}

func TestEditorUnmount(t *testing.T) {
	e, l := newTestEditor(t)
	place(e, comp("a", 0, 0, 100, 100))

	e.PointerDown(at(10, 10))
	e.Unmount()
	if e.Interaction().Active() || l.installed() {
		t.Error("unmount left a gesture or listeners behind")
	}

	e.PointerDown(at(10, 10))
	if e.Interaction().Active() {
		t.Error("unmounted editor accepted input")
	}
	if _, ok := e.Drop(ComponentButton, geom.Point{}); ok {
		t.Error("unmounted editor accepted a drop")
	}

	e.Mount()
	e.PointerDown(at(10, 10))
	if e.Interaction().Mode() != ModeDrag {
		t.Error("remounted editor ignored input")
	}
}

func TestEditorCancelGesture_RevertsToStart(t *testing.T) {
	tests := []struct {
		name   string
		cancel func(e *Editor)
	}{
		{"escape", func(e *Editor) { e.KeyDown(KeyEvent{Key: "Escape"}) }},
		{"unmount", func(e *Editor) { e.Unmount() }},
	}
	for _, tt := range tests {
		t.Run(tt.name+" drag", func(t *testing.T) {
			e, l := newTestEditor(t)
			place(e, comp("a", 200, 200, 100, 100))

			e.PointerDown(at(210, 210))
			e.PointerMove(at(227, 213))
			if c := mustGet(t, e, "a"); c.X != 217 || c.Y != 203 {
				t.Fatalf("mid-drag position = (%v,%v)", c.X, c.Y)
			}

			tt.cancel(e)
			if c := mustGet(t, e, "a"); c.X != 200 || c.Y != 200 {
				t.Errorf("after cancel = (%v,%v), want (200,200)", c.X, c.Y)
			}
			if e.Interaction().Active() || l.installed() {
				t.Errorf("gesture left behind: mode=%s listeners=%v", e.Interaction().Mode(), l.installed())
			}
		})
	}

	t.Run("escape resize", func(t *testing.T) {
		e, _ := newTestEditor(t)
		place(e, comp("a", 0, 0, 100, 100))
		e.Dispatch(Select{ID: "a"})

		e.ResizeStart("a", HandleBottomRight, at(100, 100))
		e.PointerMove(at(160, 140))
		if c := mustGet(t, e, "a"); c.Width != 160 {
			t.Fatalf("mid-resize width = %v", c.Width)
		}

		e.KeyDown(KeyEvent{Key: "Escape"})
		if r := mustGet(t, e, "a").Rect(); r != (geom.Rect{Width: 100, Height: 100}) {
			t.Errorf("after cancel rect = %+v", r)
		}
	})
}

func TestEditorSnapshotRestore(t *testing.T) {
	e, _ := newTestEditor(t)
	a, _ := e.Drop(ComponentCard, geom.Point{X: 0, Y: 0})
	e.Drop(ComponentInput, geom.Point{X: 400, Y: 0})
	e.Dispatch(Select{ID: a})
	e.ZoomIn(&geom.Point{X: 10, Y: 10})
	e.SetSelectionMode(false)

	snap := e.Snapshot()

	other, _ := newTestEditor(t)
	other.Restore(snap)
	if len(other.Scene().Components) != 2 || !slices.Equal(other.Selection(), []string{a}) {
		t.Errorf("restored scene = %+v", other.Scene())
	}
	if other.Viewport().Scale != e.Viewport().Scale || other.Viewport().Offset != e.Viewport().Offset {
		t.Errorf("restored viewport = %+v", other.Viewport())
	}
	if other.SelectionMode() {
		t.Error("selection mode not restored")
	}
}

func TestEditorRestore_Sanitizes(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Restore(Snapshot{
		Components: []Component{
			comp("a", 0, 0, 10, 10),
			comp("a", 50, 50, 10, 10),
		},
		SelectedComponentIDs: []string{"a", "ghost"},
		ZoomState:            ZoomState{Scale: 10, MinScale: 0.1, MaxScale: 3},
	})
	if len(e.Scene().Components) != 1 {
		t.Errorf("duplicate ids kept: %d components", len(e.Scene().Components))
	}
	if !slices.Equal(e.Selection(), []string{"a"}) {
		t.Errorf("selection = %v, want [a]", e.Selection())
	}
	if e.Viewport().Scale != 3 {
		t.Errorf("scale = %v, want clamped 3", e.Viewport().Scale)
	}

	e.Restore(Snapshot{})
	if e.Viewport().Scale != 1 || e.Viewport().MinScale != 0.1 {
		t.Errorf("zero snapshot viewport = %+v", e.Viewport())
	}
}

func TestEditorScreenRect(t *testing.T) {
	e, _ := newTestEditor(t)
	place(e, comp("a", 10, 20, 100, 40))
	e.viewport.Scale = 2
	e.viewport.Offset = geom.Point{X: 5, Y: 5}

	r, ok := e.ScreenRect("a")
	if !ok || r != (geom.Rect{X: 25, Y: 45, Width: 200, Height: 80}) {
		t.Errorf("ScreenRect = %+v, %v", r, ok)
	}
}
