package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/tweakcn/tweakcn/backend-go/internal/geom"
)

var ErrUnknownComponentType = errors.New("unknown component type")

type ComponentType string

const (
	ComponentButton   ComponentType = "button"
	ComponentInput    ComponentType = "input"
	ComponentCard     ComponentType = "card"
	ComponentTextarea ComponentType = "textarea"
	ComponentCheckbox ComponentType = "checkbox"
	ComponentLabel    ComponentType = "label"
	ComponentSelect   ComponentType = "select"
	ComponentSwitch   ComponentType = "switch"
	ComponentBadge    ComponentType = "badge"
	ComponentAvatar   ComponentType = "avatar"
	ComponentProgress ComponentType = "progress"
)

// ComponentTypes lists every placeable type in palette order.
var ComponentTypes = []ComponentType{
	ComponentButton,
	ComponentInput,
	ComponentCard,
	ComponentTextarea,
	ComponentCheckbox,
	ComponentLabel,
	ComponentSelect,
	ComponentSwitch,
	ComponentBadge,
	ComponentAvatar,
	ComponentProgress,
}

func (t ComponentType) Valid() bool {
	for _, known := range ComponentTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t *ComponentType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ct := ComponentType(s)
	if !ct.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownComponentType, s)
	}
	*t = ct
	return nil
}

// Component is a UI widget placed on the canvas. Geometry is in canvas space.
type Component struct {
	ID     string        `json:"id"`
	Type   ComponentType `json:"type"`
	X      float64       `json:"x"`
	Y      float64       `json:"y"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	ZIndex int           `json:"zIndex"`
	Props  Props         `json:"props"`
}

// Rect returns the component bounds in canvas space.
func (c Component) Rect() geom.Rect {
	return geom.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

// Clone returns a copy that shares no props storage with c.
func (c Component) Clone() Component {
	c.Props = c.Props.Clone()
	return c
}

// ComponentPatch carries the fields to overwrite in Update. Nil fields are left alone.
type ComponentPatch struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	ZIndex *int     `json:"zIndex,omitempty"`
}

// MovePatch builds a patch that only changes position.
func MovePatch(p geom.Point) ComponentPatch {
	return ComponentPatch{X: &p.X, Y: &p.Y}
}

// BoundsPatch builds a patch that changes position and size.
func BoundsPatch(r geom.Rect) ComponentPatch {
	return ComponentPatch{X: &r.X, Y: &r.Y, Width: &r.Width, Height: &r.Height}
}

func (c *Component) apply(p ComponentPatch) {
	if p.X != nil {
		c.X = *p.X
	}
	if p.Y != nil {
		c.Y = *p.Y
	}
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Height != nil {
		c.Height = *p.Height
	}
	if p.ZIndex != nil {
		c.ZIndex = *p.ZIndex
	}
}

type ValueKind uint8

const (
	KindString ValueKind = iota + 1
	KindNumber
	KindBool
)

// Value is a primitive prop value: exactly one of string, number or bool.
type Value struct {
	kind ValueKind
	s    string
	n    float64
	b    bool
}

func String(s string) Value  { return Value{kind: KindString, s: s} }
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }

func (v Value) Kind() ValueKind { return v.kind }

// Str returns the string value, or "" when v is not a string.
func (v Value) Str() string { return v.s }

// Num returns the number value, or 0 when v is not a number.
func (v Value) Num() float64 { return v.n }

// Truth returns the bool value, or false when v is not a bool.
func (v Value) Truth() bool { return v.b }

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindNumber:
		return json.Marshal(v.n)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case string:
		*v = String(x)
	case float64:
		*v = Number(x)
	case bool:
		*v = Bool(x)
	default:
		return fmt.Errorf("prop value must be a string, number or bool, got %s", data)
	}
	return nil
}

// Props holds type-specific rendering options such as a button label.
type Props map[string]Value

func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Merge returns a new map with patch applied over p: new keys are added,
// existing keys overwritten, untouched keys preserved.
func (p Props) Merge(patch Props) Props {
	out := make(Props, len(p)+len(patch))
	maps.Copy(out, p)
	maps.Copy(out, patch)
	return out
}

func (p Props) String(key, fallback string) string {
	if v, ok := p[key]; ok && v.kind == KindString {
		return v.s
	}
	return fallback
}

func (p Props) Number(key string, fallback float64) float64 {
	if v, ok := p[key]; ok && v.kind == KindNumber {
		return v.n
	}
	return fallback
}

func (p Props) Bool(key string, fallback bool) bool {
	if v, ok := p[key]; ok && v.kind == KindBool {
		return v.b
	}
	return fallback
}
