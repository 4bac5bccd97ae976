package render

import (
	"encoding/json"
	"math"

	"github.com/tweakcn/tweakcn/backend-go/internal/canvas"
	"github.com/tweakcn/tweakcn/backend-go/internal/geom"
)

type Op string

const (
	OpGrid         Op = "grid"
	OpComponent    Op = "component"
	OpGroupOutline Op = "groupOutline"
	OpGroupPreview Op = "groupPreview"
	OpMarquee      Op = "marquee"
	OpHandle       Op = "handle"
)

const (
	// HandleSize is the on-screen edge length of a resize handle square.
	HandleSize = 8.0
	// Grid lines closer than this many pixels are not drawn.
	minGridSpacing = 4.0
)

// DrawCommand is a single drawing operation for the frontend to execute.
// Rects are in screen space.
type DrawCommand struct {
	Op        Op                   `json:"op"`
	ObjectID  string               `json:"objectId,omitempty"` // For hit correlation
	Type      canvas.ComponentType `json:"type,omitempty"`
	Rect      geom.Rect            `json:"rect"`
	Transform []float64            `json:"transform,omitempty"` // canvas→screen affine matrix
	ZIndex    int                  `json:"zIndex,omitempty"`
	Selected  bool                 `json:"selected,omitempty"`
	Handle    canvas.Handle        `json:"handle,omitempty"`
	Element   *Element             `json:"element,omitempty"`
	Lines     *GridLines           `json:"lines,omitempty"`
}

// GridLines lists the screen coordinates of the visible grid lines.
type GridLines struct {
	Spacing float64   `json:"spacing"`
	X       []float64 `json:"x"`
	Y       []float64 `json:"y"`
}

// Frame is everything needed to paint the canvas once, in painter's order.
type Frame struct {
	Scale    float64       `json:"scale"`
	Offset   geom.Point    `json:"offset"`
	Mode     canvas.Mode   `json:"mode"`
	Commands []DrawCommand `json:"commands"`
}

// Compile builds a frame from the editor view. A nil registry uses DefaultRegistry.
func Compile(v canvas.View, reg *Registry) Frame {
	if reg == nil {
		reg = DefaultRegistry()
	}
	vp := v.Viewport
	f := Frame{
		Scale:    vp.Scale,
		Offset:   vp.Offset,
		Mode:     v.Interaction.Mode(),
		Commands: []DrawCommand{},
	}

	if lines := gridLines(v.Grid, vp, v.Container); lines != nil {
		f.Commands = append(f.Commands, DrawCommand{
			Op:    OpGrid,
			Rect:  geom.Rect{Width: v.Container.Width, Height: v.Container.Height},
			Lines: lines,
		})
	}

	transform := vp.Matrix().ToSlice()
	for _, c := range v.Scene.Ordered() {
		el := reg.Render(c)
		f.Commands = append(f.Commands, DrawCommand{
			Op:        OpComponent,
			ObjectID:  c.ID,
			Type:      c.Type,
			Rect:      vp.RectToScreen(c.Rect()),
			Transform: transform,
			ZIndex:    c.ZIndex,
			Selected:  v.Scene.IsSelected(c.ID),
			Element:   &el,
		})
	}

	if len(v.Scene.Selection) > 1 {
		if bounds, ok := v.Scene.SelectionBounds(); ok {
			outline := vp.RectToScreen(bounds)
			f.Commands = append(f.Commands, DrawCommand{Op: OpGroupOutline, Rect: outline})
			if g, ok := v.Interaction.GroupDrag(); ok {
				f.Commands = append(f.Commands, DrawCommand{Op: OpGroupPreview, Rect: outline.Translate(g.Delta)})
			}
		}
	}

	if m, ok := v.Interaction.Marquee(); ok {
		f.Commands = append(f.Commands, DrawCommand{Op: OpMarquee, Rect: geom.RectFromPoints(m.Start, m.Current)})
	}

	if len(v.Scene.Selection) == 1 {
		if c, ok := v.Scene.Get(v.Scene.Selection[0]); ok {
			r := vp.RectToScreen(c.Rect())
			for _, h := range canvas.Handles {
				p := h.Anchor(r)
				f.Commands = append(f.Commands, DrawCommand{
					Op:       OpHandle,
					ObjectID: c.ID,
					Handle:   h,
					Rect:     geom.Rect{X: p.X - HandleSize/2, Y: p.Y - HandleSize/2, Width: HandleSize, Height: HandleSize},
				})
			}
		}
	}

	return f
}

// gridLines returns the lines inside the container, or nil when the grid is
// disabled, too dense to draw, or the container size is unknown.
func gridLines(g geom.Grid, vp canvas.Viewport, container geom.Size) *GridLines {
	spacing := g.Unit * vp.Scale
	if g.Unit <= 0 || spacing < minGridSpacing || container.Width <= 0 || container.Height <= 0 {
		return nil
	}
	return &GridLines{
		Spacing: spacing,
		X:       lineStops(vp.Offset.X, spacing, container.Width),
		Y:       lineStops(vp.Offset.Y, spacing, container.Height),
	}
}

func lineStops(offset, spacing, extent float64) []float64 {
	start := math.Mod(offset, spacing)
	if start < 0 {
		start += spacing
	}
	var stops []float64
	for x := start; x <= extent; x += spacing {
		stops = append(stops, x)
	}
	return stops
}

// JSON serializes the frame.
func (f Frame) JSON() (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}

// HitTest returns the ID of the topmost component drawn under a screen point, or "".
func HitTest(f Frame, p geom.Point) string {
	for i := len(f.Commands) - 1; i >= 0; i-- {
		cmd := f.Commands[i]
		if cmd.Op == OpComponent && cmd.Rect.ContainsPoint(p) {
			return cmd.ObjectID
		}
	}
	return ""
}

// HitHandle returns the resize handle under a screen point.
func HitHandle(f Frame, p geom.Point) (string, canvas.Handle, bool) {
	for i := len(f.Commands) - 1; i >= 0; i-- {
		cmd := f.Commands[i]
		if cmd.Op == OpHandle && cmd.Rect.ContainsPoint(p) {
			return cmd.ObjectID, cmd.Handle, true
		}
	}
	return "", "", false
}
