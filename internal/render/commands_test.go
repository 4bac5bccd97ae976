package render

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/tweakcn/tweakcn/backend-go/internal/canvas"
	"github.com/tweakcn/tweakcn/backend-go/internal/geom"
)

func newEditor(t *testing.T) *canvas.Editor {
	t.Helper()
	n := 0
	e := canvas.NewEditor(canvas.DefaultSettings(), canvas.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("c%d", n)
	}))
	e.SetContainerSize(geom.Size{Width: 200, Height: 100})
	return e
}

func ops(f Frame, op Op) []DrawCommand {
	var out []DrawCommand
	for _, c := range f.Commands {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func TestCompile_PainterOrder(t *testing.T) {
	e := newEditor(t)
	a, _ := e.Drop(canvas.ComponentCard, geom.Point{X: 0, Y: 0})
	b, _ := e.Drop(canvas.ComponentButton, geom.Point{X: 10, Y: 10})
	e.Dispatch(canvas.SendToBack{ID: b})

	f := Compile(e.View(), nil)
	comps := ops(f, OpComponent)
	if len(comps) != 2 {
		t.Fatalf("got %d component commands, want 2", len(comps))
	}
	if comps[0].ObjectID != b || comps[1].ObjectID != a {
		t.Errorf("order = [%s %s], want [%s %s]", comps[0].ObjectID, comps[1].ObjectID, b, a)
	}
	if f.Commands[0].Op != OpGrid {
		t.Errorf("first command = %s, want grid", f.Commands[0].Op)
	}
}

func TestCompile_ScreenSpace(t *testing.T) {
	e := newEditor(t)
	id, _ := e.Drop(canvas.ComponentButton, geom.Point{X: 100, Y: 50})
	origin := geom.Point{}
	e.ZoomIn(&origin)

	f := Compile(e.View(), nil)
	cmd := ops(f, OpComponent)[0]
	want, _ := e.ScreenRect(id)
	if cmd.Rect != want {
		t.Errorf("rect = %+v, want %+v", cmd.Rect, want)
	}
	if !cmd.Selected || cmd.Element == nil || cmd.Element.Text != "Button" {
		t.Errorf("command = %+v", cmd)
	}
}

func TestCompile_HandlesForSingleSelection(t *testing.T) {
	e := newEditor(t)
	id, _ := e.Drop(canvas.ComponentButton, geom.Point{X: 100, Y: 50})

	f := Compile(e.View(), nil)
	handles := ops(f, OpHandle)
	if len(handles) != len(canvas.Handles) {
		t.Fatalf("got %d handles, want %d", len(handles), len(canvas.Handles))
	}
	if len(ops(f, OpGroupOutline)) != 0 {
		t.Error("group outline drawn for a single selection")
	}

	obj, h, ok := HitHandle(f, geom.Point{X: 220, Y: 90})
	if !ok || obj != id || h != canvas.HandleBottomRight {
		t.Errorf("HitHandle = %s %s %v", obj, h, ok)
	}

	e.Dispatch(canvas.ClearSelection{})
	if n := len(ops(Compile(e.View(), nil), OpHandle)); n != 0 {
		t.Errorf("%d handles without selection", n)
	}
}

func TestCompile_GroupOutlineAndPreview(t *testing.T) {
	e := newEditor(t)
	e.Drop(canvas.ComponentBadge, geom.Point{X: 0, Y: 0})
	e.Drop(canvas.ComponentBadge, geom.Point{X: 100, Y: 0})
	e.Dispatch(canvas.SelectAll{})

	e.PointerDown(canvas.PointerEvent{Position: geom.Point{X: 5, Y: 5}})
	e.PointerMove(canvas.PointerEvent{Position: geom.Point{X: 25, Y: 15}})

	f := Compile(e.View(), nil)
	outline := ops(f, OpGroupOutline)
	preview := ops(f, OpGroupPreview)
	if len(outline) != 1 || len(preview) != 1 {
		t.Fatalf("outline=%d preview=%d", len(outline), len(preview))
	}
	if outline[0].Rect != (geom.Rect{X: 0, Y: 0, Width: 180, Height: 20}) {
		t.Errorf("outline = %+v", outline[0].Rect)
	}
	if preview[0].Rect != outline[0].Rect.Translate(geom.Point{X: 20, Y: 10}) {
		t.Errorf("preview = %+v", preview[0].Rect)
	}
	if len(ops(f, OpHandle)) != 0 {
		t.Error("handles drawn for a multi-selection")
	}
}

func TestCompile_Marquee(t *testing.T) {
	e := newEditor(t)
	e.PointerDown(canvas.PointerEvent{Position: geom.Point{X: 50, Y: 50}})
	e.PointerMove(canvas.PointerEvent{Position: geom.Point{X: 10, Y: 20}})

	m := ops(Compile(e.View(), nil), OpMarquee)
	if len(m) != 1 || m[0].Rect != (geom.Rect{X: 10, Y: 20, Width: 40, Height: 30}) {
		t.Errorf("marquee = %+v", m)
	}
}

func TestCompile_GridVisibleArea(t *testing.T) {
	e := newEditor(t)
	f := Compile(e.View(), nil)
	grid := ops(f, OpGrid)
	if len(grid) != 1 {
		t.Fatalf("got %d grid commands", len(grid))
	}
	lines := grid[0].Lines
	if lines.Spacing != 10 || len(lines.X) != 21 || len(lines.Y) != 11 {
		t.Errorf("grid = spacing %v, %d x-lines, %d y-lines", lines.Spacing, len(lines.X), len(lines.Y))
	}

	e.SetGridUnit(0)
	if len(ops(Compile(e.View(), nil), OpGrid)) != 0 {
		t.Error("grid drawn with snapping disabled")
	}
}

func TestLineStops_NegativeOffset(t *testing.T) {
	got := lineStops(-25, 10, 30)
	want := []float64{5, 15, 25}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stop %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestHitTest_Topmost(t *testing.T) {
	e := newEditor(t)
	a, _ := e.Drop(canvas.ComponentCard, geom.Point{X: 0, Y: 0})
	b, _ := e.Drop(canvas.ComponentButton, geom.Point{X: 10, Y: 10})

	f := Compile(e.View(), nil)
	if got := HitTest(f, geom.Point{X: 20, Y: 20}); got != b {
		t.Errorf("hit = %s, want %s", got, b)
	}
	if got := HitTest(f, geom.Point{X: 300, Y: 150}); got != a {
		t.Errorf("hit = %s, want %s", got, a)
	}
	if got := HitTest(f, geom.Point{X: 900, Y: 900}); got != "" {
		t.Errorf("hit on empty canvas = %s", got)
	}
}

func TestFrameJSON(t *testing.T) {
	e := newEditor(t)
	e.Drop(canvas.ComponentProgress, geom.Point{})
	s, err := Compile(e.View(), nil).JSON()
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Scale    float64 `json:"scale"`
		Commands []struct {
			Op      string `json:"op"`
			Element *struct {
				Value *float64 `json:"value"`
			} `json:"element"`
		} `json:"commands"`
	}
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		t.Fatalf("frame JSON invalid: %v", err)
	}
	if decoded.Scale != 1 {
		t.Errorf("scale = %v", decoded.Scale)
	}
	found := false
	for _, c := range decoded.Commands {
		if c.Op == string(OpComponent) && c.Element != nil && c.Element.Value != nil && *c.Element.Value == 60 {
			found = true
		}
	}
	if !found {
		t.Errorf("progress value missing from %s", s)
	}
}

func TestRegistry_CustomAndFallback(t *testing.T) {
	r := NewRegistry()
	r.Register(canvas.ComponentButton, func(c canvas.Component) Element {
		return Element{Text: "custom " + c.Props.String("label", "")}
	})
	c := canvas.Component{Type: canvas.ComponentButton, Props: canvas.Props{"label": canvas.String("Go")}}
	if got := r.Render(c).Text; got != "custom Go" {
		t.Errorf("custom render = %q", got)
	}
	if got := r.Render(canvas.Component{Type: canvas.ComponentCard}).Text; got != "card" {
		t.Errorf("fallback render = %q", got)
	}

	def := DefaultRegistry()
	for _, typ := range canvas.ComponentTypes {
		if _, ok := def.funcs[typ]; !ok {
			t.Errorf("no default render func for %s", typ)
		}
	}
	sw := def.Render(canvas.Component{Type: canvas.ComponentSwitch, Props: canvas.Props{"checked": canvas.Bool(true)}})
	if sw.Checked == nil || !*sw.Checked {
		t.Errorf("switch element = %+v", sw)
	}
}
