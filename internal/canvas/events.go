package canvas

import "github.com/tweakcn/tweakcn/backend-go/internal/geom"

type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

type Modifiers struct {
	Shift bool `json:"shift"`
	Ctrl  bool `json:"ctrl"`
	Meta  bool `json:"meta"`
	Alt   bool `json:"alt"`
}

// Command reports whether ctrl (or cmd on macOS) is held.
func (m Modifiers) Command() bool { return m.Ctrl || m.Meta }

// PointerEvent is a pointer sample in screen space, relative to the canvas root.
type PointerEvent struct {
	Position  geom.Point `json:"position"`
	Button    Button     `json:"button"`
	Modifiers Modifiers  `json:"modifiers"`
}

type WheelEvent struct {
	Position  geom.Point `json:"position"`
	DeltaX    float64    `json:"deltaX"`
	DeltaY    float64    `json:"deltaY"`
	DeltaMode DeltaMode  `json:"deltaMode"`
	Modifiers Modifiers  `json:"modifiers"`
}

type KeyEvent struct {
	Key       string    `json:"key"`
	Modifiers Modifiers `json:"modifiers"`
}

// Listeners installs and removes the document-level listeners that must be
// present while a gesture is active (selectstart, dragstart, contextmenu,
// non-passive wheel). Calls are always paired.
type Listeners interface {
	Install()
	Remove()
}

type noopListeners struct{}

func (noopListeners) Install() {}
func (noopListeners) Remove()  {}
