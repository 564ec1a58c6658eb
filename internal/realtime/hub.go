// internal/realtime/hub.go
//
// Connection hub: live bidirectional channels keyed by
// (room code, player identity). Supports unicast and room-wide
// broadcast with optional sender exclusion.
//
// Delivery is best-effort: a send failure (closed or congested
// connection) is swallowed and treated as "player not currently
// reachable". It never aborts a state transition or the delivery to
// other players.

package realtime

import (
	"sync"

	"github.com/rs/zerolog"
)

// Sender is the narrow connection handle the hub stores. The concrete
// implementation is the websocket client; tests plug in fakes.
type Sender interface {
	Send(e Event) error
}

// Hub is the process-wide connection registry.
type Hub struct {
	log zerolog.Logger

	mu    sync.RWMutex
	rooms map[string]map[string]Sender
}

// NewHub constructs an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:   log,
		rooms: make(map[string]map[string]Sender),
	}
}

// Register stores the connection for (room, player). Registering the
// same key again replaces the previous handle, which is how a
// reconnect takes over a stale connection.
func (h *Hub) Register(room, player string, s Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.rooms[room]
	if !ok {
		conns = make(map[string]Sender)
		h.rooms[room] = conns
	}
	conns[player] = s
}

// Unregister drops the connection for (room, player) and reports
// whether anything was removed. When it was the room's last connection
// the room entry is removed too. The stored handle is only removed
// when it matches s, so a reconnect that already replaced the handle
// is not torn down by the old connection's deferred cleanup.
func (h *Hub) Unregister(room, player string, s Sender) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.rooms[room]
	if !ok {
		return false
	}
	if cur, ok := conns[player]; !ok || cur != s {
		return false
	}
	delete(conns, player)
	if len(conns) == 0 {
		delete(h.rooms, room)
	}
	return true
}

// Unicast delivers one event to one player. Reports whether the
// player was reachable; a failed send counts as unreachable.
func (h *Hub) Unicast(room, player string, e Event) bool {
	h.mu.RLock()
	s, ok := h.rooms[room][player]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	if err := s.Send(e); err != nil {
		h.log.Debug().Err(err).Str("room", room).Str("player", player).Msg("unicast dropped")
		return false
	}
	return true
}

// Broadcast delivers one event to every connection in a room, skipping
// exclude when non-empty. Recipients are snapshotted before sending so
// a disconnect during the fan-out cannot mutate the map being iterated.
func (h *Hub) Broadcast(room string, e Event, exclude string) {
	h.mu.RLock()
	targets := make([]Sender, 0, len(h.rooms[room]))
	for player, s := range h.rooms[room] {
		if exclude != "" && player == exclude {
			continue
		}
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		if err := s.Send(e); err != nil {
			h.log.Debug().Err(err).Str("room", room).Msg("broadcast send dropped")
		}
	}
}
