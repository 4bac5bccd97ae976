// Package board serves stored canvases over HTTP.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tweakcn/tweakcn/backend-go/internal/canvas"
	"github.com/tweakcn/tweakcn/backend-go/internal/store"
	"github.com/tweakcn/tweakcn/backend-go/internal/typeid"
)

var (
	ErrNotFound  = errors.New("canvas not found")
	ErrInvalidID = errors.New("invalid canvas id")
	ErrInvalid   = errors.New("invalid snapshot")
	// ErrLive is returned when a write would race a collaboration room that
	// owns the canvas.
	ErrLive = errors.New("canvas has connected clients")
)

type Service struct {
	store    store.Store
	settings canvas.Settings
	palette  *canvas.Palette
	live     func(canvasID string) bool
}

type Option func(*Service)

// WithLiveCheck reports canvases currently held by the collaboration hub.
func WithLiveCheck(live func(canvasID string) bool) Option {
	return func(s *Service) { s.live = live }
}

func WithPalette(p *canvas.Palette) Option {
	return func(s *Service) { s.palette = p }
}

func NewService(st store.Store, settings canvas.Settings, opts ...Option) *Service {
	s := &Service{
		store:    st,
		settings: settings,
		palette:  canvas.DefaultPalette(),
		live:     func(string) bool { return false },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Canvas struct {
	ID       string          `json:"id"`
	Snapshot canvas.Snapshot `json:"snapshot"`
}

func (s *Service) Palette() []canvas.PaletteEntry {
	return s.palette.Entries()
}

func (s *Service) Create(ctx context.Context) (*Canvas, error) {
	id := typeid.NewCanvasID()
	snap := canvas.EmptySnapshot(s.settings)
	if err := s.store.Save(ctx, id, snap); err != nil {
		return nil, fmt.Errorf("create canvas: %w", err)
	}
	return &Canvas{ID: id, Snapshot: snap}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Canvas, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	snap, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &Canvas{ID: id, Snapshot: *snap}, nil
}

// Put validates a raw snapshot document and stores it.
func (s *Service) Put(ctx context.Context, id string, data []byte) (*Canvas, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if s.live(id) {
		return nil, ErrLive
	}
	snap, err := s.Validate(data)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, id, snap); err != nil {
		return nil, fmt.Errorf("save canvas: %w", err)
	}
	return &Canvas{ID: id, Snapshot: snap}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if s.live(id) {
		return ErrLive
	}
	return mapStoreError(s.store.Delete(ctx, id))
}

func (s *Service) List(ctx context.Context) ([]store.Summary, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list canvases: %w", err)
	}
	return list, nil
}

// Validate decodes a snapshot and normalizes it: duplicate component ids
// keep their first occurrence, the selection only names existing
// components and the zoom state falls back to the configured range.
func (s *Service) Validate(data []byte) (canvas.Snapshot, error) {
	var snap canvas.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return canvas.Snapshot{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for i, c := range snap.Components {
		if c.ID == "" {
			return canvas.Snapshot{}, fmt.Errorf("%w: component %d has no id", ErrInvalid, i)
		}
		if c.Type == "" {
			return canvas.Snapshot{}, fmt.Errorf("%w: component %s has no type", ErrInvalid, c.ID)
		}
		if c.Width <= 0 || c.Height <= 0 {
			return canvas.Snapshot{}, fmt.Errorf("%w: component %s has an empty size", ErrInvalid, c.ID)
		}
	}

	sc := snap.Scene()
	out := canvas.EmptySnapshot(s.settings)
	out.Components = sc.Components
	out.SelectedComponentIDs = append(out.SelectedComponentIDs, sc.Selection...)
	out.Offset = snap.Offset
	out.IsSelectionMode = snap.IsSelectionMode

	z := snap.ZoomState
	if z.MinScale > 0 && z.MaxScale >= z.MinScale {
		out.ZoomState.MinScale, out.ZoomState.MaxScale = z.MinScale, z.MaxScale
	}
	if z.Scale > 0 {
		out.ZoomState.Scale = min(max(z.Scale, out.ZoomState.MinScale), out.ZoomState.MaxScale)
	}
	return out, nil
}

func checkID(id string) error {
	if err := typeid.Validate(id, typeid.PrefixCanvas); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return nil
}

func mapStoreError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
