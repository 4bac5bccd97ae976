package canvas

import (
	"math"
	"testing"

	"github.com/tweakcn/tweakcn/backend-go/internal/geom"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func approxPoint(a, b geom.Point) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

func defaultViewport() Viewport {
	s := DefaultSettings()
	return NewViewport(s.MinScale, s.MaxScale, s.ZoomFactor)
}

func TestViewportZoomIn_AnchorsOrigin(t *testing.T) {
	v := defaultViewport()
	origin := geom.Point{X: 100, Y: 100}
	before := v.ToCanvas(origin)

	v.ZoomIn(&origin)

	if !approx(v.Scale, 1.2) {
		t.Errorf("scale = %v, want 1.2", v.Scale)
	}
	if !approxPoint(v.Offset, geom.Point{X: -20, Y: -20}) {
		t.Errorf("offset = %+v, want (-20,-20)", v.Offset)
	}
	if after := v.ToCanvas(origin); !approxPoint(before, after) {
		t.Errorf("canvas point under origin moved: %+v -> %+v", before, after)
	}
}

func TestViewportZoom_WithoutOriginKeepsOffset(t *testing.T) {
	v := defaultViewport()
	v.Offset = geom.Point{X: 7, Y: 9}
	v.ZoomOut(nil)
	if !approx(v.Scale, 1/1.2) || v.Offset != (geom.Point{X: 7, Y: 9}) {
		t.Errorf("scale=%v offset=%+v", v.Scale, v.Offset)
	}
	v.ResetZoom(nil)
	if v.Scale != 1 {
		t.Errorf("ResetZoom scale = %v", v.Scale)
	}
}

func TestViewportZoom_Clamped(t *testing.T) {
	v := defaultViewport()
	for range 50 {
		v.ZoomIn(nil)
	}
	if v.Scale != v.MaxScale {
		t.Errorf("scale = %v, want max %v", v.Scale, v.MaxScale)
	}
	for range 100 {
		v.ZoomOut(nil)
	}
	if v.Scale != v.MinScale {
		t.Errorf("scale = %v, want min %v", v.Scale, v.MinScale)
	}
}

func TestWheelFactor(t *testing.T) {
	tests := []struct {
		deltaY float64
		mode   DeltaMode
		want   float64
	}{
		{-10, DeltaPixel, 1.1},
		{10, DeltaPixel, 0.9},
		{-2, DeltaLine, 1.1},
		{1, DeltaPage, 0.5},
		{-1000, DeltaPixel, 3},
		{1000, DeltaPixel, 0.1},
	}
	for _, tt := range tests {
		if got := WheelFactor(tt.deltaY, tt.mode); !approx(got, tt.want) {
			t.Errorf("WheelFactor(%v, %v) = %v, want %v", tt.deltaY, tt.mode, got, tt.want)
		}
	}
}

func TestViewportWheel_RequiresCommand(t *testing.T) {
	v := defaultViewport()
	if v.Wheel(WheelEvent{Position: geom.Point{X: 50, Y: 50}, DeltaY: -10}) {
		t.Error("plain wheel consumed")
	}
	if v.Scale != 1 {
		t.Errorf("plain wheel zoomed to %v", v.Scale)
	}

	ev := WheelEvent{Position: geom.Point{X: 50, Y: 50}, DeltaY: -10, Modifiers: Modifiers{Meta: true}}
	if !v.Wheel(ev) {
		t.Error("cmd+wheel not consumed")
	}
	if !approx(v.Scale, 1.1) {
		t.Errorf("scale = %v, want 1.1", v.Scale)
	}
	if !approxPoint(v.Offset, geom.Point{X: -5, Y: -5}) {
		t.Errorf("offset = %+v, want (-5,-5)", v.Offset)
	}
}

func TestViewportZoomToFit(t *testing.T) {
	v := defaultViewport()
	v.ZoomToFit(geom.Rect{X: 100, Y: 100, Width: 400, Height: 200}, geom.Size{Width: 800, Height: 800})

	if !approx(v.Scale, 2) {
		t.Fatalf("scale = %v, want 2", v.Scale)
	}
	got := v.RectToScreen(geom.Rect{X: 100, Y: 100, Width: 400, Height: 200})
	if !approx(got.X, 0) || !approx(got.Y, 200) || !approx(got.Width, 800) {
		t.Errorf("fitted rect = %+v", got)
	}

	before := v
	v.ZoomToFit(geom.Rect{}, geom.Size{Width: 800, Height: 800})
	if v.Scale != before.Scale || v.Offset != before.Offset {
		t.Error("empty content changed the viewport")
	}
}

func TestViewportPan(t *testing.T) {
	v := defaultViewport()
	v.UpdatePan(geom.Point{X: 100, Y: 100})
	if v.Offset != (geom.Point{}) {
		t.Fatalf("UpdatePan without StartPan moved to %+v", v.Offset)
	}

	v.StartPan(geom.Point{X: 10, Y: 10})
	v.UpdatePan(geom.Point{X: 30, Y: 25})
	v.UpdatePan(geom.Point{X: 40, Y: 25})
	if v.Offset != (geom.Point{X: 30, Y: 15}) {
		t.Errorf("offset = %+v, want (30,15)", v.Offset)
	}
	v.EndPan()
	if v.Panning() {
		t.Error("still panning")
	}
	v.ResetPan()
	if v.Offset != (geom.Point{}) {
		t.Errorf("ResetPan offset = %+v", v.Offset)
	}
}

func TestViewportTransformsRoundTrip(t *testing.T) {
	v := defaultViewport()
	v.Scale = 1.7
	v.Offset = geom.Point{X: -33, Y: 12}
	p := geom.Point{X: 123.5, Y: -40}
	if got := v.ToCanvas(v.ToScreen(p)); !approxPoint(got, p) {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
	if got := v.Matrix().Apply(p); !approxPoint(got, v.ToScreen(p)) {
		t.Errorf("matrix = %+v, ToScreen = %+v", got, v.ToScreen(p))
	}
}
