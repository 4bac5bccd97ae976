package geom

import "math"

// Point is a 2D coordinate. Whether it is in screen or canvas space depends on the caller.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Mul scales both components by k.
func (p Point) Mul(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Div divides both components by k.
func (p Point) Div(k float64) Point {
	return Point{X: p.X / k, Y: p.Y / k}
}

// IsZero reports whether both components are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect represents an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromPoints normalizes two arbitrary corners into a rect, so a marquee
// dragged in any of the four directions yields the same box.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(a.X - b.X),
		Height: math.Abs(a.Y - b.Y),
	}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rect dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// ContainsPoint checks if a point is inside the rect. Edges count as inside.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ContainsRect reports whether inner lies fully within r, inclusive on all edges.
func (r Rect) ContainsRect(inner Rect) bool {
	return inner.X >= r.X &&
		inner.Y >= r.Y &&
		inner.Right() <= r.Right() &&
		inner.Bottom() <= r.Bottom()
}

// Intersects reports whether the two rects overlap. Touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	return !(r.Right() <= o.X ||
		o.Right() <= r.X ||
		r.Bottom() <= o.Y ||
		o.Bottom() <= r.Y)
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.Right(), other.Right())
	maxY := max(r.Bottom(), other.Bottom())

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Translate returns the rect moved by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// BoundingRect returns the minimal rect covering all rects. An empty input
// yields the zero rect, which callers cannot tell apart from a zero-sized rect
// at the origin, so check len(rects) first when that matters.
func BoundingRect(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	result := rects[0]
	for _, r := range rects[1:] {
		result = result.Union(r)
	}
	return result
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// ScreenToCanvas maps a screen point into canvas space.
func ScreenToCanvas(p, offset Point, scale float64) Point {
	return p.Sub(offset).Div(scale)
}

// CanvasToScreen maps a canvas point into screen space.
func CanvasToScreen(p, offset Point, scale float64) Point {
	return p.Mul(scale).Add(offset)
}

// CanvasRectToScreen maps a canvas-space rect into screen space.
func CanvasRectToScreen(r Rect, offset Point, scale float64) Rect {
	o := CanvasToScreen(r.Origin(), offset, scale)
	return Rect{X: o.X, Y: o.Y, Width: r.Width * scale, Height: r.Height * scale}
}
