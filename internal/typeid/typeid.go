package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixComponent = "cmp"
	PrefixCanvas    = "cnv"
	PrefixOp        = "op"
	PrefixImage     = "img"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewComponentID() string { return New(PrefixComponent) }
func NewCanvasID() string    { return New(PrefixCanvas) }
func NewOpID() string        { return New(PrefixOp) }
func NewImageID() string     { return New(PrefixImage) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
