package canvas

import "github.com/tweakcn/tweakcn/backend-go/internal/geom"

type ZoomState struct {
	Scale    float64 `json:"scale"`
	MinScale float64 `json:"minScale"`
	MaxScale float64 `json:"maxScale"`
}

// Snapshot is the persisted form of an editor.
type Snapshot struct {
	Components           []Component `json:"components"`
	SelectedComponentIDs []string    `json:"selectedComponentIds"`
	Offset               geom.Point  `json:"offset"`
	ZoomState            ZoomState   `json:"zoomState"`
	IsSelectionMode      bool        `json:"isSelectionMode"`
}

// EmptySnapshot is what a brand-new canvas persists as.
func EmptySnapshot(s Settings) Snapshot {
	s = s.withDefaults()
	return Snapshot{
		Components:           []Component{},
		SelectedComponentIDs: []string{},
		ZoomState:            ZoomState{Scale: 1, MinScale: s.MinScale, MaxScale: s.MaxScale},
		IsSelectionMode:      true,
	}
}

// Scene rebuilds the component/selection state held by the snapshot.
// Selection ids without a component are dropped.
func (s Snapshot) Scene() Scene {
	sc := Scene{Components: make([]Component, 0, len(s.Components))}
	seen := make(map[string]bool, len(s.Components))
	for _, c := range s.Components {
		if c.ID == "" || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		sc.Components = append(sc.Components, c.Clone())
	}
	sc.SelectMany(s.SelectedComponentIDs)
	return sc
}
