package canvas

import "github.com/tweakcn/tweakcn/backend-go/internal/geom"

// PaletteEntry describes how a component type is inserted: its defaults and
// the smallest size a resize may shrink it to.
type PaletteEntry struct {
	Type         ComponentType `json:"type"`
	Label        string        `json:"label"`
	DefaultProps Props         `json:"defaultProps"`
	DefaultSize  geom.Size     `json:"defaultSize"`
	MinSize      geom.Size     `json:"minSize"`
}

type Palette struct {
	entries map[ComponentType]PaletteEntry
}

func NewPalette(entries ...PaletteEntry) *Palette {
	p := &Palette{entries: make(map[ComponentType]PaletteEntry, len(entries))}
	for _, e := range entries {
		p.entries[e.Type] = e
	}
	return p
}

// Lookup returns the entry for t.
func (p *Palette) Lookup(t ComponentType) (PaletteEntry, bool) {
	e, ok := p.entries[t]
	return e, ok
}

// MinSize returns the resize floor for t, or a zero size for unknown types.
func (p *Palette) MinSize(t ComponentType) geom.Size {
	return p.entries[t].MinSize
}

// Entries returns the entries in ComponentTypes order.
func (p *Palette) Entries() []PaletteEntry {
	out := make([]PaletteEntry, 0, len(p.entries))
	for _, t := range ComponentTypes {
		if e, ok := p.entries[t]; ok {
			out = append(out, e)
		}
	}
	return out
}

func DefaultPalette() *Palette {
	return NewPalette(
		PaletteEntry{
			Type:         ComponentButton,
			Label:        "Button",
			DefaultProps: Props{"label": String("Button"), "variant": String("default"), "size": String("default")},
			DefaultSize:  geom.Size{Width: 120, Height: 40},
			MinSize:      geom.Size{Width: 40, Height: 20},
		},
		PaletteEntry{
			Type:         ComponentInput,
			Label:        "Input",
			DefaultProps: Props{"placeholder": String("Enter text..."), "type": String("text")},
			DefaultSize:  geom.Size{Width: 240, Height: 40},
			MinSize:      geom.Size{Width: 80, Height: 30},
		},
		PaletteEntry{
			Type:         ComponentCard,
			Label:        "Card",
			DefaultProps: Props{"title": String("Card Title"), "description": String("Card description"), "content": String("Card content")},
			DefaultSize:  geom.Size{Width: 320, Height: 200},
			MinSize:      geom.Size{Width: 100, Height: 80},
		},
		PaletteEntry{
			Type:         ComponentTextarea,
			Label:        "Textarea",
			DefaultProps: Props{"placeholder": String("Type your message here."), "rows": Number(4)},
			DefaultSize:  geom.Size{Width: 240, Height: 100},
			MinSize:      geom.Size{Width: 80, Height: 60},
		},
		PaletteEntry{
			Type:         ComponentCheckbox,
			Label:        "Checkbox",
			DefaultProps: Props{"label": String("Accept terms"), "checked": Bool(false)},
			DefaultSize:  geom.Size{Width: 140, Height: 24},
			MinSize:      geom.Size{Width: 20, Height: 20},
		},
		PaletteEntry{
			Type:         ComponentLabel,
			Label:        "Label",
			DefaultProps: Props{"text": String("Label")},
			DefaultSize:  geom.Size{Width: 100, Height: 24},
			MinSize:      geom.Size{Width: 20, Height: 16},
		},
		PaletteEntry{
			Type:         ComponentSelect,
			Label:        "Select",
			DefaultProps: Props{"placeholder": String("Select an option")},
			DefaultSize:  geom.Size{Width: 200, Height: 40},
			MinSize:      geom.Size{Width: 80, Height: 30},
		},
		PaletteEntry{
			Type:         ComponentSwitch,
			Label:        "Switch",
			DefaultProps: Props{"label": String("Airplane mode"), "checked": Bool(false)},
			DefaultSize:  geom.Size{Width: 160, Height: 24},
			MinSize:      geom.Size{Width: 40, Height: 20},
		},
		PaletteEntry{
			Type:         ComponentBadge,
			Label:        "Badge",
			DefaultProps: Props{"text": String("Badge"), "variant": String("default")},
			DefaultSize:  geom.Size{Width: 80, Height: 24},
			MinSize:      geom.Size{Width: 30, Height: 20},
		},
		PaletteEntry{
			Type:         ComponentAvatar,
			Label:        "Avatar",
			DefaultProps: Props{"src": String(""), "fallback": String("CN")},
			DefaultSize:  geom.Size{Width: 48, Height: 48},
			MinSize:      geom.Size{Width: 24, Height: 24},
		},
		PaletteEntry{
			Type:         ComponentProgress,
			Label:        "Progress",
			DefaultProps: Props{"value": Number(60)},
			DefaultSize:  geom.Size{Width: 240, Height: 16},
			MinSize:      geom.Size{Width: 60, Height: 8},
		},
	)
}
