package collab

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/tweakcn/tweakcn/backend-go/internal/canvas"
	"github.com/tweakcn/tweakcn/backend-go/internal/typeid"
)

// LoadFunc fetches a canvas snapshot. A nil snapshot with a nil error, or an
// error matched by the hub's notFound check, starts the room empty.
type LoadFunc func(ctx context.Context, canvasID string) (*canvas.Snapshot, error)

// SaveFunc persists a canvas snapshot.
type SaveFunc func(ctx context.Context, canvasID string, snap canvas.Snapshot) error

type Room struct {
	canvasID string
	clients  map[string]*Client // clientID -> client
	presence *PresenceManager
	state    *SceneState
}

func NewRoom(canvasID string, state *SceneState) *Room {
	return &Room{
		canvasID: canvasID,
		clients:  make(map[string]*Client),
		presence: NewPresenceManager(),
		state:    state,
	}
}

type HubOptions struct {
	Load LoadFunc
	Save SaveFunc
	// NotFound reports whether a load error means the canvas does not exist yet.
	NotFound     func(error) bool
	SaveInterval time.Duration
	Settings     canvas.Settings
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // canvasID -> room
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once

	load         LoadFunc
	save         SaveFunc
	notFound     func(error) bool
	saveInterval time.Duration
	settings     canvas.Settings
}

func NewHub(opts HubOptions) *Hub {
	if opts.NotFound == nil {
		opts.NotFound = func(error) bool { return false }
	}
	return &Hub{
		rooms:        make(map[string]*Room),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
		load:         opts.Load,
		save:         opts.Save,
		notFound:     opts.NotFound,
		saveInterval: opts.SaveInterval,
		settings:     opts.Settings,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	var tick <-chan time.Time
	if h.saveInterval > 0 {
		ticker := time.NewTicker(h.saveInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-tick:
			h.saveDirty()
		case <-h.stop:
			h.saveDirty()
			return
		}
	}
}

// Stop saves every dirty room and ends Run. It blocks until Run has returned.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.closeSend()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// RoomCount returns the number of canvases with connected clients.
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// Active reports whether canvasID has a room with connected clients.
func (h *Hub) Active(canvasID string) bool {
	_, ok := h.room(canvasID)
	return ok
}

func (h *Hub) openRoom(canvasID string) (*Room, error) {
	h.mu.RLock()
	room, ok := h.rooms[canvasID]
	h.mu.RUnlock()
	if ok {
		return room, nil
	}

	snap := canvas.EmptySnapshot(h.settings)
	if h.load != nil {
		// Use a background context since this runs in the hub goroutine
		loaded, err := h.load(context.Background(), canvasID)
		switch {
		case err != nil && !h.notFound(err):
			return nil, err
		case err == nil && loaded != nil:
			snap = *loaded
		}
	}

	room = NewRoom(canvasID, NewSceneState(snap))
	h.mu.Lock()
	h.rooms[canvasID] = room
	h.mu.Unlock()
	return room, nil
}

func (h *Hub) addClient(client *Client) {
	room, err := h.openRoom(client.CanvasID)
	if err != nil {
		slog.Error("load canvas", "error", err, "canvas", client.CanvasID)
		client.Send(newMessage(TypeError, ErrorPayload{Message: "failed to load canvas"}))
		client.closeSend()
		return
	}

	h.mu.Lock()
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	client.Send(newMessage(TypeWelcome, WelcomePayload{
		ClientID:    client.ClientID,
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
		CanvasID:    client.CanvasID,
	}))
	client.Send(newMessage(TypeSceneSync, room.state.SyncPayload()))

	// Send current presence state to new client
	if stateMsg := room.presence.StateMessage(); stateMsg != nil {
		client.Send(stateMsg)
	}

	// Broadcast join to other clients
	joinMsg := newMessage(TypePresenceJoin, PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg.UserID = client.UserID
	h.broadcastToRoom(client.CanvasID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "canvas", client.CanvasID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.CanvasID]
	if !ok {
		h.mu.Unlock()
		client.closeSend()
		return
	}
	if _, member := room.clients[client.ClientID]; !member {
		h.mu.Unlock()
		client.closeSend()
		return
	}

	delete(room.clients, client.ClientID)
	client.closeSend()
	room.presence.Remove(client.ClientID)

	empty := len(room.clients) == 0
	if empty {
		delete(h.rooms, client.CanvasID)
	}
	h.mu.Unlock()

	if empty {
		h.saveRoom(room)
	} else {
		// Broadcast leave to remaining clients
		leaveMsg := newMessage(TypePresenceLeave, PresenceLeavePayload{UserID: client.UserID})
		leaveMsg.UserID = client.UserID
		leaveMsg.ClientID = client.ClientID
		h.broadcastToRoom(client.CanvasID, leaveMsg, "")
	}

	slog.Info("client left", "user", client.UserID, "canvas", client.CanvasID)
}

func (h *Hub) saveDirty() {
	h.mu.RLock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.RUnlock()

	for _, r := range rooms {
		h.saveRoom(r)
	}
}

func (h *Hub) saveRoom(room *Room) {
	if h.save == nil || !room.state.Dirty() {
		return
	}
	seq := room.state.ServerSeq()
	snap := room.state.Snapshot()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.save(ctx, room.canvasID, snap); err != nil {
		slog.Error("save canvas", "error", err, "canvas", room.canvasID)
		return
	}
	room.state.MarkClean(seq)
	slog.Info("canvas saved", "canvas", room.canvasID, "seq", seq, "components", len(snap.Components))
}

func (h *Hub) room(canvasID string) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[canvasID]
	return room, ok
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	case TypeSceneRequest:
		if room, ok := h.room(sender.CanvasID); ok {
			sender.Send(newMessage(TypeSceneSync, room.state.SyncPayload()))
		}
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	var submit OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &submit); err != nil {
		slog.Warn("invalid op payload", "error", err, "user", sender.UserID)
		sender.Send(newMessage(TypeError, ErrorPayload{Message: "invalid operation payload"}))
		return
	}
	op := submit.Operation
	if op.ID == "" {
		op.ID = typeid.NewOpID()
	}

	room, ok := h.room(sender.CanvasID)
	if !ok {
		return
	}

	seq, err := room.state.ApplyOperation(op)
	if err != nil {
		slog.Debug("operation rejected", "error", err, "op", op.ID, "user", sender.UserID)
		sender.Send(newMessage(TypeOpNack, OperationNackPayload{OperationID: op.ID, Reason: err.Error()}))
		return
	}

	if op.Action.Type == canvas.ActionDelete {
		scene := room.state.Scene()
		room.presence.PruneSelections(scene.Has)
	}

	ack := newMessage(TypeOpAck, OperationAckPayload{
		OperationID:     op.ID,
		ServerSeq:       seq,
		ServerTimestamp: GetServerTimestamp(),
	})
	ack.Seq = seq
	sender.Send(ack)

	broadcast := newMessage(TypeOpBroadcast, OperationBroadcastPayload{
		Operation: op,
		UserID:    sender.UserID,
		ServerSeq: seq,
	})
	broadcast.Seq = seq
	broadcast.UserID = sender.UserID
	h.broadcastToRoom(sender.CanvasID, broadcast, sender.ClientID)
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	room, ok := h.room(sender.CanvasID)
	if !ok {
		return
	}

	room.presence.Update(sender.ClientID, &presence)

	// Broadcast to other clients in room
	outMsg := newMessage(TypePresenceUpdate, presence)
	outMsg.UserID = sender.UserID
	outMsg.ClientID = sender.ClientID
	h.broadcastToRoom(sender.CanvasID, outMsg, sender.ClientID)
}

func (h *Hub) broadcastToRoom(canvasID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[canvasID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
