package canvas

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tweakcn/tweakcn/backend-go/internal/geom"
)

var ErrUnknownAction = errors.New("unknown action")

// Action is a scene mutation. Actions carry everything they need (including
// freshly generated ids) so that applying one is deterministic.
type Action interface {
	Kind() string
	apply(s *Scene)
}

// Reduce returns the scene that results from applying a to s. s is not modified.
func Reduce(s Scene, a Action) Scene {
	next := s.Clone()
	a.apply(&next)
	return next
}

const (
	ActionAdd            = "component.add"
	ActionUpdate         = "component.update"
	ActionUpdateProps    = "component.props"
	ActionDelete         = "component.delete"
	ActionDeleteSelected = "selection.delete"
	ActionDuplicate      = "component.duplicate"
	ActionBringToFront   = "order.front"
	ActionSendToBack     = "order.back"
	ActionBringForward   = "order.forward"
	ActionSendBackward   = "order.backward"
	ActionMove           = "components.move"
	ActionSelect         = "selection.set"
	ActionSelectMany     = "selection.many"
	ActionToggle         = "selection.toggle"
	ActionAddToSelection = "selection.add"
	ActionClearSelection = "selection.clear"
	ActionSelectAll      = "selection.all"
)

type AddComponent struct {
	Component Component `json:"component"`
}

type UpdateComponent struct {
	ID    string         `json:"id"`
	Patch ComponentPatch `json:"patch"`
}

type UpdateProps struct {
	ID    string `json:"id"`
	Props Props  `json:"props"`
}

type DeleteComponent struct {
	ID string `json:"id"`
}

type DeleteSelected struct{}

type DuplicateComponent struct {
	ID     string     `json:"id"`
	NewID  string     `json:"newId"`
	Offset geom.Point `json:"offset"`
}

type BringToFront struct {
	ID string `json:"id"`
}

type SendToBack struct {
	ID string `json:"id"`
}

type BringForward struct {
	ID string `json:"id"`
}

type SendBackward struct {
	ID string `json:"id"`
}

type MoveComponents struct {
	IDs   []string   `json:"ids"`
	Delta geom.Point `json:"delta"`
}

type Select struct {
	ID string `json:"id"`
}

type SelectMany struct {
	IDs []string `json:"ids"`
}

type ToggleSelection struct {
	ID string `json:"id"`
}

type AddToSelection struct {
	ID string `json:"id"`
}

type ClearSelection struct{}

type SelectAll struct{}

func (AddComponent) Kind() string       { return ActionAdd }
func (UpdateComponent) Kind() string    { return ActionUpdate }
func (UpdateProps) Kind() string        { return ActionUpdateProps }
func (DeleteComponent) Kind() string    { return ActionDelete }
func (DeleteSelected) Kind() string     { return ActionDeleteSelected }
func (DuplicateComponent) Kind() string { return ActionDuplicate }
func (BringToFront) Kind() string       { return ActionBringToFront }
func (SendToBack) Kind() string         { return ActionSendToBack }
func (BringForward) Kind() string       { return ActionBringForward }
func (SendBackward) Kind() string       { return ActionSendBackward }
func (MoveComponents) Kind() string     { return ActionMove }
func (Select) Kind() string             { return ActionSelect }
func (SelectMany) Kind() string         { return ActionSelectMany }
func (ToggleSelection) Kind() string    { return ActionToggle }
func (AddToSelection) Kind() string     { return ActionAddToSelection }
func (ClearSelection) Kind() string     { return ActionClearSelection }
func (SelectAll) Kind() string          { return ActionSelectAll }

func (a AddComponent) apply(s *Scene)       { s.Add(a.Component) }
func (a UpdateComponent) apply(s *Scene)    { s.Update(a.ID, a.Patch) }
func (a UpdateProps) apply(s *Scene)        { s.UpdateProps(a.ID, a.Props) }
func (a DeleteComponent) apply(s *Scene)    { s.Delete(a.ID) }
func (DeleteSelected) apply(s *Scene)       { s.DeleteSelected() }
func (a DuplicateComponent) apply(s *Scene) { s.Duplicate(a.ID, a.NewID, a.Offset) }
func (a BringToFront) apply(s *Scene)       { s.BringToFront(a.ID) }
func (a SendToBack) apply(s *Scene)         { s.SendToBack(a.ID) }
func (a BringForward) apply(s *Scene)       { s.BringForward(a.ID) }
func (a SendBackward) apply(s *Scene)       { s.SendBackward(a.ID) }
func (a MoveComponents) apply(s *Scene)     { s.MoveBy(a.IDs, a.Delta) }
func (a Select) apply(s *Scene)             { s.Select(a.ID) }
func (a SelectMany) apply(s *Scene)         { s.SelectMany(a.IDs) }
func (a ToggleSelection) apply(s *Scene)    { s.Toggle(a.ID) }
func (a AddToSelection) apply(s *Scene)     { s.AddToSelection(a.ID) }
func (ClearSelection) apply(s *Scene)       { s.ClearSelection() }
func (SelectAll) apply(s *Scene)            { s.SelectAll() }

// Envelope is the wire form of an action.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// EncodeAction wraps a in an Envelope.
func EncodeAction(a Action) (Envelope, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s: %w", a.Kind(), err)
	}
	return Envelope{Type: a.Kind(), Payload: payload}, nil
}

// DecodeAction turns an Envelope back into an Action.
func DecodeAction(env Envelope) (Action, error) {
	switch env.Type {
	case ActionAdd:
		return decodePayload[AddComponent](env)
	case ActionUpdate:
		return decodePayload[UpdateComponent](env)
	case ActionUpdateProps:
		return decodePayload[UpdateProps](env)
	case ActionDelete:
		return decodePayload[DeleteComponent](env)
	case ActionDeleteSelected:
		return DeleteSelected{}, nil
	case ActionDuplicate:
		return decodePayload[DuplicateComponent](env)
	case ActionBringToFront:
		return decodePayload[BringToFront](env)
	case ActionSendToBack:
		return decodePayload[SendToBack](env)
	case ActionBringForward:
		return decodePayload[BringForward](env)
	case ActionSendBackward:
		return decodePayload[SendBackward](env)
	case ActionMove:
		return decodePayload[MoveComponents](env)
	case ActionSelect:
		return decodePayload[Select](env)
	case ActionSelectMany:
		return decodePayload[SelectMany](env)
	case ActionToggle:
		return decodePayload[ToggleSelection](env)
	case ActionAddToSelection:
		return decodePayload[AddToSelection](env)
	case ActionClearSelection:
		return ClearSelection{}, nil
	case ActionSelectAll:
		return SelectAll{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, env.Type)
	}
}

func decodePayload[T Action](env Envelope) (Action, error) {
	var a T
	if len(env.Payload) == 0 {
		return nil, fmt.Errorf("%s: missing payload", env.Type)
	}
	if err := json.Unmarshal(env.Payload, &a); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", env.Type, err)
	}
	return a, nil
}
