package collab

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tweakcn/tweakcn/backend-go/internal/canvas"
)

var (
	ErrLocalAction       = errors.New("action only applies to a local editor")
	ErrComponentNotFound = errors.New("component not found")
	ErrComponentExists   = errors.New("component already exists")
	ErrInvalidComponent  = errors.New("invalid component")
)

// SceneState holds the authoritative component list for a room. Selection is
// per-user and travels as presence, so the shared scene never has one.
type SceneState struct {
	mu        sync.RWMutex
	palette   *canvas.Palette
	scene     canvas.Scene
	base      canvas.Snapshot
	serverSeq int64
	dirty     bool
}

// NewSceneState starts from a stored snapshot. The snapshot's viewport is
// kept as-is for the next save.
func NewSceneState(snap canvas.Snapshot) *SceneState {
	sc := snap.Scene()
	sc.Selection = nil
	base := snap
	base.Components = nil
	base.SelectedComponentIDs = []string{}
	return &SceneState{palette: canvas.DefaultPalette(), scene: sc, base: base}
}

// Scene returns a copy of the current scene.
func (ss *SceneState) Scene() canvas.Scene {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.scene.Clone()
}

func (ss *SceneState) ServerSeq() int64 {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.serverSeq
}

// SyncPayload returns the components and sequence under one lock.
func (ss *SceneState) SyncPayload() SceneSyncPayload {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	comps := ss.scene.Clone().Components
	if comps == nil {
		comps = []canvas.Component{}
	}
	return SceneSyncPayload{Components: comps, ServerSeq: ss.serverSeq}
}

// Snapshot returns what should be persisted for this room.
func (ss *SceneState) Snapshot() canvas.Snapshot {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	snap := ss.base
	snap.Components = ss.scene.Clone().Components
	if snap.Components == nil {
		snap.Components = []canvas.Component{}
	}
	return snap
}

// Dirty reports whether operations were applied since the last MarkClean.
func (ss *SceneState) Dirty() bool {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.dirty
}

// MarkClean clears the dirty flag if no operation was applied after seq.
func (ss *SceneState) MarkClean(seq int64) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.serverSeq == seq {
		ss.dirty = false
	}
}

// ApplyOperation decodes and applies the operation's action and returns the server sequence.
func (ss *SceneState) ApplyOperation(op Operation) (int64, error) {
	action, err := canvas.DecodeAction(op.Action)
	if err != nil {
		return 0, err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if err := ss.validateLocked(action); err != nil {
		return 0, err
	}
	next := canvas.Reduce(ss.scene, action)
	next.Selection = nil
	ss.scene = next

	ss.serverSeq++
	ss.dirty = true
	return ss.serverSeq, nil
}

// validateLocked rejects actions that would be silent no-ops on the shared
// scene, so the submitter gets a nack instead of a phantom ack.
func (ss *SceneState) validateLocked(a canvas.Action) error {
	switch a := a.(type) {
	case canvas.AddComponent:
		if a.Component.ID == "" || !a.Component.Type.Valid() {
			return ErrInvalidComponent
		}
		if ss.scene.Has(a.Component.ID) {
			return fmt.Errorf("%w: %s", ErrComponentExists, a.Component.ID)
		}
	case canvas.DuplicateComponent:
		if a.NewID == "" {
			return ErrInvalidComponent
		}
		if ss.scene.Has(a.NewID) {
			return fmt.Errorf("%w: %s", ErrComponentExists, a.NewID)
		}
		return ss.requireLocked(a.ID)
	case canvas.UpdateComponent:
		if err := ss.requireLocked(a.ID); err != nil {
			return err
		}
		return ss.checkSizeLocked(a.ID, a.Patch)
	case canvas.UpdateProps:
		return ss.requireLocked(a.ID)
	case canvas.DeleteComponent:
		return ss.requireLocked(a.ID)
	case canvas.BringToFront:
		return ss.requireLocked(a.ID)
	case canvas.SendToBack:
		return ss.requireLocked(a.ID)
	case canvas.BringForward:
		return ss.requireLocked(a.ID)
	case canvas.SendBackward:
		return ss.requireLocked(a.ID)
	case canvas.MoveComponents:
		for _, id := range a.IDs {
			if err := ss.requireLocked(id); err != nil {
				return err
			}
		}
	default:
		// Selection changes and DeleteSelected depend on a selection the
		// shared scene does not have.
		return fmt.Errorf("%w: %s", ErrLocalAction, a.Kind())
	}
	return nil
}

// checkSizeLocked rejects a patch that would shrink the component below the
// palette minimum for its type.
func (ss *SceneState) checkSizeLocked(id string, p canvas.ComponentPatch) error {
	c, _ := ss.scene.Get(id)
	floor := ss.palette.MinSize(c.Type)
	if p.Width != nil && *p.Width < floor.Width {
		return fmt.Errorf("%w: width %v below minimum %v", ErrInvalidComponent, *p.Width, floor.Width)
	}
	if p.Height != nil && *p.Height < floor.Height {
		return fmt.Errorf("%w: height %v below minimum %v", ErrInvalidComponent, *p.Height, floor.Height)
	}
	return nil
}

func (ss *SceneState) requireLocked(id string) error {
	if !ss.scene.Has(id) {
		return fmt.Errorf("%w: %s", ErrComponentNotFound, id)
	}
	return nil
}

// GetServerTimestamp returns the current server timestamp
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
