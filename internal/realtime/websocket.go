// internal/realtime/websocket.go
//
// Websocket entry point: upgrades the HTTP request, validates the
// (room code, player identity) pair, registers the connection with
// the hub and runs the read/write pumps.
//
// A refused connection is closed with a distinct code so clients can
// tell "room gone" from "identity not validated".

package realtime

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Close codes for refused connections.
const (
	CloseUnknownPlayer = 4001 // identity not validated
	CloseNotMember     = 4003 // validated, but not a member of the room
	CloseUnknownRoom   = 4004 // room code does not exist
)

// UserDirectory is the identity validity check consumed at connect
// time.
type UserDirectory interface {
	Exists(ctx context.Context, email string) (bool, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origins are filtered by the HTTP layer's CORS policy;
	// the token requirement guards the upgrade itself.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSServer upgrades connections for the room realtime protocol.
type WSServer struct {
	coord   *Coordinator
	lobbies LobbyDirectory
	users   UserDirectory
	log     zerolog.Logger
}

// NewWSServer wires the connection entry point.
func NewWSServer(coord *Coordinator, lobbies LobbyDirectory, users UserDirectory, log zerolog.Logger) *WSServer {
	return &WSServer{coord: coord, lobbies: lobbies, users: users, log: log}
}

// ServeWS upgrades the request and runs the connection until it drops.
// email/displayName come from the already-verified auth token; the
// room code from the URL. Blocks for the lifetime of the connection.
func (s *WSServer) ServeWS(w http.ResponseWriter, r *http.Request, code, email, displayName string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	ok, err := s.users.Exists(r.Context(), email)
	if err != nil || !ok {
		refuse(conn, CloseUnknownPlayer, "unknown player")
		return
	}
	lobby, err := s.lobbies.Get(code)
	if err != nil {
		refuse(conn, CloseUnknownRoom, "unknown room")
		return
	}
	member := false
	for _, m := range lobby.Joueurs {
		if m.Email == email {
			member, displayName = true, m.Nom
			break
		}
	}
	if !member {
		refuse(conn, CloseNotMember, "join the lobby first")
		return
	}

	c := newClient(code, email, displayName, conn, s.coord, s.log)
	s.coord.Hub().Register(code, email, c)
	go c.writePump()

	s.coord.Connected(code, email, displayName)
	s.log.Info().Str("room", code).Str("player", email).Msg("connected")

	c.readPump()

	s.coord.Disconnected(code, email, displayName, c)
	s.log.Info().Str("room", code).Str("player", email).Msg("disconnected")
}

func refuse(conn *websocket.Conn, code int, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeWait))
	_ = conn.Close()
}
