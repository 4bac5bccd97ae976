package render

import (
	"strconv"

	"github.com/tweakcn/tweakcn/backend-go/internal/canvas"
)

// Element is the type-specific content the frontend draws inside a component box.
type Element struct {
	Text        string   `json:"text,omitempty"`
	Secondary   string   `json:"secondary,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Variant     string   `json:"variant,omitempty"`
	Checked     *bool    `json:"checked,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// RenderFunc builds the element for one component.
type RenderFunc func(c canvas.Component) Element

// Registry maps component types to their render functions.
type Registry struct {
	funcs map[canvas.ComponentType]RenderFunc
}

func NewRegistry() *Registry {
	return &Registry{funcs: make(map[canvas.ComponentType]RenderFunc)}
}

func (r *Registry) Register(t canvas.ComponentType, fn RenderFunc) {
	r.funcs[t] = fn
}

// Render falls back to the bare type name for types with no registered function.
func (r *Registry) Render(c canvas.Component) Element {
	if fn, ok := r.funcs[c.Type]; ok {
		return fn(c)
	}
	return Element{Text: string(c.Type)}
}

// DefaultRegistry covers every built-in component type.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(canvas.ComponentButton, func(c canvas.Component) Element {
		return Element{
			Text:    c.Props.String("label", "Button"),
			Variant: c.Props.String("variant", "default"),
		}
	})
	r.Register(canvas.ComponentInput, func(c canvas.Component) Element {
		return Element{Placeholder: c.Props.String("placeholder", ""), Variant: c.Props.String("type", "text")}
	})
	r.Register(canvas.ComponentCard, func(c canvas.Component) Element {
		return Element{
			Text:      c.Props.String("title", ""),
			Secondary: c.Props.String("description", ""),
		}
	})
	r.Register(canvas.ComponentTextarea, func(c canvas.Component) Element {
		rows := c.Props.Number("rows", 4)
		return Element{Placeholder: c.Props.String("placeholder", ""), Value: &rows}
	})
	r.Register(canvas.ComponentCheckbox, toggleElement)
	r.Register(canvas.ComponentSwitch, toggleElement)
	r.Register(canvas.ComponentLabel, func(c canvas.Component) Element {
		return Element{Text: c.Props.String("text", "Label")}
	})
	r.Register(canvas.ComponentSelect, func(c canvas.Component) Element {
		return Element{Placeholder: c.Props.String("placeholder", "")}
	})
	r.Register(canvas.ComponentBadge, func(c canvas.Component) Element {
		return Element{Text: c.Props.String("text", "Badge"), Variant: c.Props.String("variant", "default")}
	})
	r.Register(canvas.ComponentAvatar, func(c canvas.Component) Element {
		return Element{Image: c.Props.String("src", ""), Text: c.Props.String("fallback", "")}
	})
	r.Register(canvas.ComponentProgress, func(c canvas.Component) Element {
		v := min(max(c.Props.Number("value", 0), 0), 100)
		return Element{Value: &v, Text: strconv.FormatFloat(v, 'f', -1, 64) + "%"}
	})
	return r
}

func toggleElement(c canvas.Component) Element {
	checked := c.Props.Bool("checked", false)
	return Element{Text: c.Props.String("label", ""), Checked: &checked}
}
