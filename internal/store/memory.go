package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tweakcn/tweakcn/backend-go/internal/canvas"
)

type memoryEntry struct {
	data    []byte
	summary Summary
}

// Memory is an in-process Store. Snapshots are kept encoded so callers never
// share component slices with it.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Load(_ context.Context, id string) (*canvas.Snapshot, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodeSnapshot(e.data)
}

func (m *Memory) Save(_ context.Context, id string, snap canvas.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.entries[id]
	m.entries[id] = memoryEntry{
		data: data,
		summary: Summary{
			ID:             id,
			Version:        prev.summary.Version + 1,
			ComponentCount: len(snap.Components),
			UpdatedAt:      time.Now().UTC(),
		},
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *Memory) List(_ context.Context) ([]Summary, error) {
	m.mu.RLock()
	out := make([]Summary, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.summary)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b Summary) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (m *Memory) Close() error { return nil }
