package canvas

import (
	"github.com/tweakcn/tweakcn/backend-go/internal/geom"
	"github.com/tweakcn/tweakcn/backend-go/internal/typeid"
)

// Editor is the freeform canvas editor. It owns the scene, viewport and
// gesture state, turns normalized input events into scene actions, and
// answers queries for the render layer.
type Editor struct {
	scene       Scene
	viewport    Viewport
	interaction Interaction
	settings    Settings
	palette     *Palette

	selectionMode bool
	container     geom.Size

	// mounted is false while the host has no canvas root; input is ignored then.
	mounted   bool
	listeners Listeners
	listening bool

	newID func() string
}

type Option func(*Editor)

func WithPalette(p *Palette) Option {
	return func(e *Editor) { e.palette = p }
}

// WithIDGenerator replaces the typeid-based component id source.
func WithIDGenerator(fn func() string) Option {
	return func(e *Editor) { e.newID = fn }
}

func WithListeners(l Listeners) Option {
	return func(e *Editor) { e.listeners = l }
}

// NewEditor creates a mounted, empty editor in selection mode.
func NewEditor(settings Settings, opts ...Option) *Editor {
	settings = settings.withDefaults()
	e := &Editor{
		settings:      settings,
		viewport:      NewViewport(settings.MinScale, settings.MaxScale, settings.ZoomFactor),
		palette:       DefaultPalette(),
		selectionMode: true,
		mounted:       true,
		listeners:     noopListeners{},
		newID:         typeid.NewComponentID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// --- Lifecycle ---

func (e *Editor) Mount() {
	e.mounted = true
}

// Unmount cancels any gesture and tears down global listeners.
func (e *Editor) Unmount() {
	e.cancelGesture()
	e.mounted = false
}

func (e *Editor) Mounted() bool { return e.mounted }

// syncListeners installs the global listeners while any gesture or pan is
// active and removes them as soon as none is.
func (e *Editor) syncListeners() {
	active := e.interaction.Active() || e.viewport.Panning()
	switch {
	case active && !e.listening:
		e.listeners.Install()
		e.listening = true
	case !active && e.listening:
		e.listeners.Remove()
		e.listening = false
	}
}

// --- Commands ---

// Dispatch applies a scene action.
func (e *Editor) Dispatch(a Action) {
	e.scene = Reduce(e.scene, a)
}

// SetGridUnit changes the snapping step; later snaps use the new value.
func (e *Editor) SetGridUnit(unit float64) {
	e.settings.GridUnit = max(unit, 0)
}

func (e *Editor) SetSelectionMode(on bool) {
	e.selectionMode = on
}

// SetContainerSize records the on-screen size of the canvas root, used to
// zoom around the center and to fit content.
func (e *Editor) SetContainerSize(s geom.Size) {
	e.container = s
}

// Drop inserts a new component of type t at a screen position. The position
// and default size are grid-snapped. It returns the new id.
func (e *Editor) Drop(t ComponentType, screen geom.Point) (string, bool) {
	if !e.mounted {
		return "", false
	}
	entry, ok := e.palette.Lookup(t)
	if !ok {
		return "", false
	}
	grid := e.settings.Grid()
	pos := grid.SnapPoint(e.viewport.ToCanvas(screen))
	size := grid.SnapRectSize(entry.DefaultSize, entry.MinSize)

	c := Component{
		ID:     e.newID(),
		Type:   t,
		X:      pos.X,
		Y:      pos.Y,
		Width:  size.Width,
		Height: size.Height,
		Props:  entry.DefaultProps.Clone(),
	}
	e.Dispatch(AddComponent{Component: c})
	return c.ID, true
}

// Duplicate copies id, shifted by DuplicateGridMultiple grid units, and selects the copy.
func (e *Editor) Duplicate(id string) (string, bool) {
	if !e.scene.Has(id) {
		return "", false
	}
	shift := e.settings.GridUnit * e.settings.DuplicateGridMultiple
	newID := e.newID()
	e.Dispatch(DuplicateComponent{ID: id, NewID: newID, Offset: geom.Point{X: shift, Y: shift}})
	return newID, true
}

func (e *Editor) DeleteSelected() {
	e.Dispatch(DeleteSelected{})
}

func (e *Editor) ZoomIn(origin *geom.Point)    { e.viewport.ZoomIn(origin) }
func (e *Editor) ZoomOut(origin *geom.Point)   { e.viewport.ZoomOut(origin) }
func (e *Editor) ResetZoom(origin *geom.Point) { e.viewport.ResetZoom(origin) }
func (e *Editor) ResetPan()                    { e.viewport.ResetPan() }

// ZoomToFit fits every component into the container. It does nothing on an
// empty canvas or before the container size is known.
func (e *Editor) ZoomToFit() {
	if len(e.scene.Components) == 0 {
		return
	}
	rects := make([]geom.Rect, len(e.scene.Components))
	for i, c := range e.scene.Components {
		rects[i] = c.Rect()
	}
	e.viewport.ZoomToFit(geom.BoundingRect(rects), e.container)
}

// center returns the container center, or nil before the size is known.
func (e *Editor) center() *geom.Point {
	if e.container.Width <= 0 || e.container.Height <= 0 {
		return nil
	}
	return &geom.Point{X: e.container.Width / 2, Y: e.container.Height / 2}
}

// --- Persistence ---

func (e *Editor) Snapshot() Snapshot {
	sc := e.scene.Clone()
	if sc.Components == nil {
		sc.Components = []Component{}
	}
	if sc.Selection == nil {
		sc.Selection = []string{}
	}
	return Snapshot{
		Components:           sc.Components,
		SelectedComponentIDs: sc.Selection,
		Offset:               e.viewport.Offset,
		ZoomState: ZoomState{
			Scale:    e.viewport.Scale,
			MinScale: e.viewport.MinScale,
			MaxScale: e.viewport.MaxScale,
		},
		IsSelectionMode: e.selectionMode,
	}
}

// Restore replaces the editor state with a snapshot. Zero or inconsistent
// zoom values fall back to the editor settings, and the scale is clamped.
func (e *Editor) Restore(s Snapshot) {
	e.cancelGesture()

	e.scene = s.Scene()

	vp := NewViewport(e.settings.MinScale, e.settings.MaxScale, e.settings.ZoomFactor)
	if z := s.ZoomState; z.MinScale > 0 && z.MaxScale >= z.MinScale {
		vp.MinScale, vp.MaxScale = z.MinScale, z.MaxScale
	}
	if s.ZoomState.Scale > 0 {
		vp.Scale = vp.clamp(s.ZoomState.Scale)
	} else {
		vp.Scale = vp.clamp(1)
	}
	vp.Offset = s.Offset
	e.viewport = vp
	e.selectionMode = s.IsSelectionMode
}

// --- Queries ---

// Scene returns a copy of the component and selection state.
func (e *Editor) Scene() Scene { return e.scene.Clone() }

func (e *Editor) Component(id string) (Component, bool) {
	c, ok := e.scene.Get(id)
	if !ok {
		return Component{}, false
	}
	return c.Clone(), true
}

func (e *Editor) Selection() []string {
	return append([]string(nil), e.scene.Selection...)
}

func (e *Editor) SelectedComponents() []Component {
	return e.scene.SelectedComponents()
}

func (e *Editor) Viewport() Viewport       { return e.viewport }
func (e *Editor) Interaction() Interaction { return e.interaction }
func (e *Editor) Settings() Settings       { return e.settings }
func (e *Editor) Palette() *Palette        { return e.palette }
func (e *Editor) SelectionMode() bool      { return e.selectionMode }

// ScreenRect returns a component's on-screen rect.
func (e *Editor) ScreenRect(id string) (geom.Rect, bool) {
	c, ok := e.scene.Get(id)
	if !ok {
		return geom.Rect{}, false
	}
	return e.viewport.RectToScreen(c.Rect()), true
}

// View is the read-only state the render layer draws from.
type View struct {
	Scene       Scene
	Viewport    Viewport
	Interaction Interaction
	Grid        geom.Grid
	Container   geom.Size
}

func (e *Editor) View() View {
	return View{
		Scene:       e.scene.Clone(),
		Viewport:    e.viewport,
		Interaction: e.interaction,
		Grid:        e.settings.Grid(),
		Container:   e.container,
	}
}
