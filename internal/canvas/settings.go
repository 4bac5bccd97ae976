package canvas

import "github.com/tweakcn/tweakcn/backend-go/internal/geom"

// Settings are the tunables of one editor instance.
type Settings struct {
	GridUnit   float64 `json:"gridUnit"`
	MinScale   float64 `json:"minScale"`
	MaxScale   float64 `json:"maxScale"`
	ZoomFactor float64 `json:"zoomFactor"`
	// DuplicateGridMultiple is how many grid units a duplicate is shifted by on each axis.
	DuplicateGridMultiple float64 `json:"duplicateGridMultiple"`
	// GroupDragThreshold is the snapped canvas delta below which a group drag counts as a click.
	GroupDragThreshold float64 `json:"groupDragThreshold"`
}

func DefaultSettings() Settings {
	return Settings{
		GridUnit:              10,
		MinScale:              0.1,
		MaxScale:              3,
		ZoomFactor:            1.2,
		DuplicateGridMultiple: 2,
		GroupDragThreshold:    0.5,
	}
}

// withDefaults fills zero or inconsistent fields from DefaultSettings.
// A zero GridUnit is kept: it disables snapping.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.MinScale <= 0 {
		s.MinScale = d.MinScale
	}
	if s.MaxScale < s.MinScale {
		s.MaxScale = max(d.MaxScale, s.MinScale)
	}
	if s.ZoomFactor <= 1 {
		s.ZoomFactor = d.ZoomFactor
	}
	if s.GroupDragThreshold <= 0 {
		s.GroupDragThreshold = d.GroupDragThreshold
	}
	if s.DuplicateGridMultiple <= 0 {
		s.DuplicateGridMultiple = d.DuplicateGridMultiple
	}
	if s.GridUnit < 0 {
		s.GridUnit = 0
	}
	return s
}

func (s Settings) Grid() geom.Grid {
	return geom.Grid{Unit: s.GridUnit}
}
