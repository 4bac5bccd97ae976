package canvas

import "github.com/tweakcn/tweakcn/backend-go/internal/geom"

type Mode string

const (
	ModeNone      Mode = "none"
	ModeDrag      Mode = "drag"
	ModeResize    Mode = "resize"
	ModeSelect    Mode = "select"
	ModeGroupDrag Mode = "groupDrag"
)

type DragState struct {
	ID string
	// Offset is the pointer position minus the component's screen top-left.
	Offset geom.Point
	// Start is the component's canvas position when the drag began.
	Start geom.Point
}

type ResizeState struct {
	ID         string
	Handle     Handle
	StartPoint geom.Point
	StartPos   geom.Point
	StartSize  geom.Size
}

type MarqueeState struct {
	Start   geom.Point
	Current geom.Point
}

type GroupDragState struct {
	Start geom.Point
	Delta geom.Point
}

// Interaction tracks the single active gesture. A gesture can only begin from
// ModeNone, and End always returns there with every payload zeroed.
type Interaction struct {
	mode      Mode
	drag      DragState
	resize    ResizeState
	marquee   MarqueeState
	groupDrag GroupDragState
}

func (in Interaction) Mode() Mode {
	if in.mode == "" {
		return ModeNone
	}
	return in.mode
}

func (in Interaction) Active() bool { return in.Mode() != ModeNone }

func (in *Interaction) BeginDrag(s DragState) bool {
	if in.Active() {
		return false
	}
	in.mode, in.drag = ModeDrag, s
	return true
}

func (in *Interaction) BeginResize(s ResizeState) bool {
	if in.Active() {
		return false
	}
	in.mode, in.resize = ModeResize, s
	return true
}

func (in *Interaction) BeginMarquee(start geom.Point) bool {
	if in.Active() {
		return false
	}
	in.mode, in.marquee = ModeSelect, MarqueeState{Start: start, Current: start}
	return true
}

func (in *Interaction) BeginGroupDrag(start geom.Point) bool {
	if in.Active() {
		return false
	}
	in.mode, in.groupDrag = ModeGroupDrag, GroupDragState{Start: start}
	return true
}

// Drag returns the drag payload when a drag is active.
func (in Interaction) Drag() (DragState, bool) {
	return in.drag, in.mode == ModeDrag
}

func (in Interaction) Resize() (ResizeState, bool) {
	return in.resize, in.mode == ModeResize
}

func (in Interaction) Marquee() (MarqueeState, bool) {
	return in.marquee, in.mode == ModeSelect
}

func (in Interaction) GroupDrag() (GroupDragState, bool) {
	return in.groupDrag, in.mode == ModeGroupDrag
}

func (in *Interaction) updateMarquee(p geom.Point) {
	if in.mode == ModeSelect {
		in.marquee.Current = p
	}
}

func (in *Interaction) updateGroupDrag(p geom.Point) {
	if in.mode == ModeGroupDrag {
		in.groupDrag.Delta = p.Sub(in.groupDrag.Start)
	}
}

func (in *Interaction) End() {
	*in = Interaction{mode: ModeNone}
}
