// Package store persists canvas snapshots keyed by canvas id.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tweakcn/tweakcn/backend-go/internal/canvas"
)

var ErrNotFound = errors.New("canvas not found")

// Summary describes a stored canvas without its contents.
type Summary struct {
	ID             string    `json:"id"`
	Version        int       `json:"version"`
	ComponentCount int       `json:"componentCount"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Store saves and loads snapshots. Save creates the canvas if needed and
// bumps its version on every write.
type Store interface {
	Load(ctx context.Context, id string) (*canvas.Snapshot, error)
	Save(ctx context.Context, id string, snap canvas.Snapshot) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Summary, error)
	Close() error
}

func encodeSnapshot(snap canvas.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (*canvas.Snapshot, error) {
	var snap canvas.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
