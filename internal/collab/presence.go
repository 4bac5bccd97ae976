package collab

import (
	"log/slog"
	"slices"
	"sync"
)

// PresenceManager tracks cursor and selection per connected client.
type PresenceManager struct {
	mu        sync.RWMutex
	presences map[string]*PresencePayload // clientID -> presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		presences: make(map[string]*PresencePayload),
	}
}

func (pm *PresenceManager) Update(clientID string, p *PresencePayload) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.presences[clientID] = p
}

func (pm *PresenceManager) Remove(clientID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.presences, clientID)
}

// PruneSelections drops deleted component ids from every presence selection.
func (pm *PresenceManager) PruneSelections(exists func(id string) bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for _, p := range pm.presences {
		kept := p.Selection[:0:0]
		for _, id := range p.Selection {
			if exists(id) {
				kept = append(kept, id)
			}
		}
		p.Selection = kept
	}
}

func (pm *PresenceManager) GetAll() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	result := make(map[string]*PresencePayload, len(pm.presences))
	for k, v := range pm.presences {
		cp := *v
		cp.Selection = slices.Clone(v.Selection)
		result[k] = &cp
	}
	return result
}

func (pm *PresenceManager) StateMessage() *Message {
	all := pm.GetAll()
	msg := newMessage(TypePresenceState, PresenceStatePayload{Presences: all})
	if string(msg.Payload) == "null" {
		slog.Error("marshal presence state")
		return nil
	}
	return msg
}
