package canvas

import (
	"math"

	"github.com/tweakcn/tweakcn/backend-go/internal/geom"
)

// DeltaMode mirrors the unit a wheel event reports its deltas in.
type DeltaMode int

const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

const (
	minWheelFactor = 0.1
	maxWheelFactor = 3.0
)

// Viewport maps canvas space to screen space: screen = canvas*Scale + Offset.
// Scale always stays within [MinScale, MaxScale].
type Viewport struct {
	Offset     geom.Point `json:"offset"`
	Scale      float64    `json:"scale"`
	MinScale   float64    `json:"minScale"`
	MaxScale   float64    `json:"maxScale"`
	ZoomFactor float64    `json:"-"`

	panning   bool
	panAnchor geom.Point
}

func NewViewport(minScale, maxScale, zoomFactor float64) Viewport {
	return Viewport{
		Scale:      1,
		MinScale:   minScale,
		MaxScale:   maxScale,
		ZoomFactor: zoomFactor,
	}
}

func (v Viewport) clamp(scale float64) float64 {
	return math.Max(v.MinScale, math.Min(v.MaxScale, scale))
}

// ToCanvas maps a screen point into canvas space.
func (v Viewport) ToCanvas(p geom.Point) geom.Point {
	return geom.ScreenToCanvas(p, v.Offset, v.Scale)
}

// ToScreen maps a canvas point into screen space.
func (v Viewport) ToScreen(p geom.Point) geom.Point {
	return geom.CanvasToScreen(p, v.Offset, v.Scale)
}

// RectToScreen maps a canvas rect into screen space.
func (v Viewport) RectToScreen(r geom.Rect) geom.Rect {
	return geom.CanvasRectToScreen(r, v.Offset, v.Scale)
}

// Matrix returns the canvas→screen transform.
func (v Viewport) Matrix() geom.Matrix2D {
	return geom.ViewMatrix(v.Offset, v.Scale)
}

// setScale applies a new (clamped) scale. With an origin, the canvas point
// under origin stays under origin.
func (v *Viewport) setScale(scale float64, origin *geom.Point) {
	newScale := v.clamp(scale)
	if origin != nil && v.Scale != 0 {
		ratio := newScale / v.Scale
		v.Offset = origin.Sub(origin.Sub(v.Offset).Mul(ratio))
	}
	v.Scale = newScale
}

func (v *Viewport) ZoomIn(origin *geom.Point) {
	v.setScale(v.Scale*v.ZoomFactor, origin)
}

func (v *Viewport) ZoomOut(origin *geom.Point) {
	v.setScale(v.Scale/v.ZoomFactor, origin)
}

func (v *Viewport) ResetZoom(origin *geom.Point) {
	v.setScale(1, origin)
}

// ZoomToFit scales content to fit container and centers it. Empty content is ignored.
func (v *Viewport) ZoomToFit(content geom.Rect, container geom.Size) {
	if content.IsEmpty() || container.Width <= 0 || container.Height <= 0 {
		return
	}
	scale := min(container.Width/content.Width, container.Height/content.Height, v.MaxScale)
	v.Scale = v.clamp(scale)
	v.Offset = geom.Point{
		X: (container.Width-content.Width*v.Scale)/2 - content.X*v.Scale,
		Y: (container.Height-content.Height*v.Scale)/2 - content.Y*v.Scale,
	}
}

// WheelFactor converts a vertical wheel delta into a multiplicative zoom
// factor, clamped so one large trackpad gesture cannot jump too far.
func WheelFactor(deltaY float64, mode DeltaMode) float64 {
	var factor float64
	switch mode {
	case DeltaLine:
		factor = 1 - deltaY*0.05
	case DeltaPage:
		factor = 1 - deltaY*0.5
	default:
		factor = 1 - deltaY*0.01
	}
	return math.Max(minWheelFactor, math.Min(maxWheelFactor, factor))
}

// Wheel zooms around the pointer when ctrl/cmd is held and reports whether
// the event was consumed. Without the modifier the event is left to the host.
func (v *Viewport) Wheel(ev WheelEvent) bool {
	if !ev.Modifiers.Command() {
		return false
	}
	origin := ev.Position
	v.setScale(v.Scale*WheelFactor(ev.DeltaY, ev.DeltaMode), &origin)
	return true
}

// Panning reports whether a pan gesture is active.
func (v Viewport) Panning() bool { return v.panning }

func (v *Viewport) StartPan(p geom.Point) {
	v.panning = true
	v.panAnchor = p
}

// UpdatePan applies the delta since the last anchor and re-anchors at p.
func (v *Viewport) UpdatePan(p geom.Point) {
	if !v.panning {
		return
	}
	v.Offset = v.Offset.Add(p.Sub(v.panAnchor))
	v.panAnchor = p
}

func (v *Viewport) EndPan() {
	v.panning = false
	v.panAnchor = geom.Point{}
}

// ResetPan moves the view back to the canvas origin.
func (v *Viewport) ResetPan() {
	v.Offset = geom.Point{}
}
