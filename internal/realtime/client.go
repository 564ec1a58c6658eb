// internal/realtime/client.go
//
// One client per open websocket connection. The read pump is the
// connection's logical task: it suspends on the next inbound message
// and dispatches it to the coordinator. The write pump owns the
// connection for writes and keeps the peer alive with pings.
//
// Outbound delivery goes through a buffered channel; a full buffer
// fails the send, which the hub treats as "not currently reachable".

package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Outbound event buffer per connection.
	sendBuffer = 64
)

var (
	errConnClosed   = errors.New("connection closed")
	errSendBackedUp = errors.New("send buffer full")
)

type client struct {
	room        string
	identity    string
	displayName string

	conn    *websocket.Conn
	coord   *Coordinator
	limiter *rate.Limiter
	log     zerolog.Logger

	send      chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(room, identity, displayName string, conn *websocket.Conn, coord *Coordinator, log zerolog.Logger) *client {
	return &client{
		room:        room,
		identity:    identity,
		displayName: displayName,
		conn:        conn,
		coord:       coord,
		limiter:     rate.NewLimiter(rate.Limit(5), 10),
		log:         log.With().Str("room", room).Str("player", identity).Logger(),
		send:        make(chan Event, sendBuffer),
		done:        make(chan struct{}),
	}
}

// Send queues an event for delivery. Never blocks: a closed connection
// or a backed-up buffer fails the send instead.
func (c *client) Send(e Event) error {
	select {
	case <-c.done:
		return errConnClosed
	default:
	}
	select {
	case c.send <- e:
		return nil
	case <-c.done:
		return errConnClosed
	default:
		return errSendBackedUp
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump consumes inbound messages until the connection drops and
// dispatches them to the coordinator. Runs on the connection's
// goroutine; exactly one per client.
func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("connection dropped")
			}
			return
		}
		if !c.limiter.Allow() {
			_ = c.Send(Event{Type: EventError, Payload: ErrorPayload{Message: "too many messages"}})
			continue
		}

		switch msg.Type {
		case MsgStartRound:
			c.coord.StartRound(c.room, c.identity)
		case MsgGuess:
			c.coord.SubmitGuess(context.Background(), c.room, c.identity, msg.Word)
		case MsgChat:
			c.coord.Chat(c.room, c.identity, c.displayName, msg.Message)
		default:
			_ = c.Send(Event{Type: EventError, Payload: ErrorPayload{Message: "unknown message type"}})
		}
	}
}

// writePump owns all writes on the connection: queued events, the
// ping keepalive, and the final close frame.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case e := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(e); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
