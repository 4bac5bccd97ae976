package canvas

import (
	"fmt"

	"github.com/tweakcn/tweakcn/backend-go/internal/geom"
)

// Handle is one of the eight resize grips around a selected component.
type Handle string

const (
	HandleTopLeft     Handle = "top-left"
	HandleTop         Handle = "top"
	HandleTopRight    Handle = "top-right"
	HandleRight       Handle = "right"
	HandleBottomRight Handle = "bottom-right"
	HandleBottom      Handle = "bottom"
	HandleBottomLeft  Handle = "bottom-left"
	HandleLeft        Handle = "left"
)

var Handles = []Handle{
	HandleTopLeft, HandleTop, HandleTopRight, HandleRight,
	HandleBottomRight, HandleBottom, HandleBottomLeft, HandleLeft,
}

// ParseHandle validates a handle name.
func ParseHandle(s string) (Handle, error) {
	for _, h := range Handles {
		if string(h) == s {
			return h, nil
		}
	}
	return "", fmt.Errorf("unknown resize handle %q", s)
}

// axes returns, per axis, how the handle moves that edge: -1 drags the
// leading edge (left/top), +1 the trailing edge (right/bottom), 0 leaves it.
func (h Handle) axes() (int, int) {
	switch h {
	case HandleTopLeft:
		return -1, -1
	case HandleTop:
		return 0, -1
	case HandleTopRight:
		return 1, -1
	case HandleRight:
		return 1, 0
	case HandleBottomRight:
		return 1, 1
	case HandleBottom:
		return 0, 1
	case HandleBottomLeft:
		return -1, 1
	case HandleLeft:
		return -1, 0
	}
	return 0, 0
}

// Anchor returns where the handle sits on r, in the same space as r.
func (h Handle) Anchor(r geom.Rect) geom.Point {
	ax, ay := h.axes()
	return geom.Point{
		X: r.X + r.Width*float64(ax+1)/2,
		Y: r.Y + r.Height*float64(ay+1)/2,
	}
}

// Apply computes the resized geometry for a canvas-space pointer delta.
// Sizes are grid-snapped with minSize as floor; when the leading edge moves,
// the opposite edge stays fixed.
func (h Handle) Apply(startPos geom.Point, startSize geom.Size, delta geom.Point, grid geom.Grid, minSize geom.Size) geom.Rect {
	ax, ay := h.axes()
	r := geom.Rect{X: startPos.X, Y: startPos.Y, Width: startSize.Width, Height: startSize.Height}

	switch ax {
	case 1:
		r.Width = grid.SnapSize(startSize.Width+delta.X, minSize.Width)
	case -1:
		r.Width = grid.SnapSize(startSize.Width-delta.X, minSize.Width)
		r.X = startPos.X + startSize.Width - r.Width
	}
	switch ay {
	case 1:
		r.Height = grid.SnapSize(startSize.Height+delta.Y, minSize.Height)
	case -1:
		r.Height = grid.SnapSize(startSize.Height-delta.Y, minSize.Height)
		r.Y = startPos.Y + startSize.Height - r.Height
	}
	return r
}
