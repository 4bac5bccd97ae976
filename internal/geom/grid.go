package geom

import "math"

// Snap rounds v to the nearest multiple of unit. Halves round toward +Inf,
// so -15 snaps to -10 on a 10 grid. A non-positive unit disables snapping.
func Snap(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	return math.Floor(v/unit+0.5) * unit
}

// SnapSize snaps a size and never lets it fall below minSize.
func SnapSize(v, unit, minSize float64) float64 {
	return math.Max(Snap(v, unit), minSize)
}

// Grid is the quantization step shared by every snapping call site.
// It is passed by value so each editor (and each test) carries its own.
type Grid struct {
	Unit float64 `json:"unit"`
}

func (g Grid) Snap(v float64) float64 {
	return Snap(v, g.Unit)
}

func (g Grid) SnapSize(v, minSize float64) float64 {
	return SnapSize(v, g.Unit, minSize)
}

func (g Grid) SnapPoint(p Point) Point {
	return Point{X: g.Snap(p.X), Y: g.Snap(p.Y)}
}

// SnapRectSize snaps both dimensions with per-axis floors.
func (g Grid) SnapRectSize(s, minSize Size) Size {
	return Size{
		Width:  g.SnapSize(s.Width, minSize.Width),
		Height: g.SnapSize(s.Height, minSize.Height),
	}
}
