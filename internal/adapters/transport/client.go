/*
 * file: client.go
 * package: transport
 * description:
 *     One task per accepted socket, transport-agnostic over FrameConn so
 *     the TCP and WebSocket listeners share a single actor implementation.
 *     Runs a readPump/writePump pair per connection through the
 *     AwaitingHandshake -> Active -> Closing state machine.
 */
package transport

import (
	"time"

	"github.com/juan10024/sternhalma-server/internal/core/domain"
	"github.com/juan10024/sternhalma-server/internal/core/services/codec"
	"github.com/juan10024/sternhalma-server/internal/core/services/hub"
	"github.com/juan10024/sternhalma-server/internal/core/services/registry"
	"github.com/juan10024/sternhalma-server/internal/platform/logging"
)

// FrameConn is the minimal per-message transport both the TCP and
// WebSocket adapters implement: read exactly one decoded message payload,
// write exactly one, and support a read deadline.
type FrameConn interface {
	ReadFrame() ([]byte, error)
	WriteFrame(data []byte) error
	SetReadDeadline(t time.Time) error
	Close() error
}

// Client drives one socket through AwaitingHandshake -> Active -> Closing.
type Client struct {
	conn             FrameConn
	hub              *hub.Hub
	reg              *registry.Registry
	handshakeTimeout time.Duration
	idleTimeout      time.Duration
}

/*
 * NewClient constructs a Client actor bound to one accepted socket.
 *
 * Parameters:
 *   - conn (FrameConn): the transport-specific frame reader/writer.
 *   - h (*hub.Hub): the game hub to admit into.
 *   - reg (*registry.Registry): the session registry, for marking a slot
 *     disconnected on socket loss.
 *   - handshakeTimeout, idleTimeout (time.Duration): the per-handshake and
 *     per-connection idle bounds.
 */
func NewClient(conn FrameConn, h *hub.Hub, reg *registry.Registry, handshakeTimeout, idleTimeout time.Duration) *Client {
	return &Client{conn: conn, hub: h, reg: reg, handshakeTimeout: handshakeTimeout, idleTimeout: idleTimeout}
}

// Serve runs the full actor lifecycle to completion, closing the socket on
// return.
func (c *Client) Serve() {
	defer c.conn.Close()

	p, session, inbox, outbox, ok := c.handshake()
	if !ok {
		return
	}
	c.active(p, session, inbox, outbox)
}

func (c *Client) handshake() (domain.Player, domain.SessionId, chan domain.Choice, chan domain.ServerEvent, bool) {
	if c.handshakeTimeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(c.handshakeTimeout))
	}

	data, err := c.conn.ReadFrame()
	if err != nil {
		logging.Warn("handshake read failed: %v", err)
		return 0, domain.SessionId{}, nil, nil, false
	}

	msg, err := codec.Decode(data)
	if err != nil {
		logging.Warn("handshake decode failed: %v", err)
		c.reject("protocol")
		return 0, domain.SessionId{}, nil, nil, false
	}

	outbox := make(chan domain.ServerEvent, 8)

	switch m := msg.(type) {
	case codec.Hello:
		player, session, inbox, err := c.hub.Hello(outbox)
		if err != nil {
			c.reject(reasonFor(err))
			return 0, domain.SessionId{}, nil, nil, false
		}
		c.sendWelcome(session, player)
		return player, session, inbox, outbox, true

	case codec.Reconnect:
		player, inbox, err := c.hub.Reconnect(m.SessionID, outbox)
		if err != nil {
			c.reject(reasonFor(err))
			return 0, domain.SessionId{}, nil, nil, false
		}
		c.sendWelcome(m.SessionID, player)
		return player, m.SessionID, inbox, outbox, true

	default:
		c.reject("protocol")
		return 0, domain.SessionId{}, nil, nil, false
	}
}

func reasonFor(err error) string {
	switch err {
	case domain.ErrServerFull:
		return "server full"
	case domain.ErrUnknownSession:
		return "unknown session"
	case domain.ErrSessionBusy:
		return "session busy"
	default:
		return "protocol"
	}
}

func (c *Client) reject(reason string) {
	data, err := codec.Encode(codec.Reject{Reason: reason})
	if err != nil {
		logging.Error("failed to encode reject: %v", err)
		return
	}
	_ = c.conn.WriteFrame(data)
}

// sendDisconnect notifies the peer of a decode or protocol-violation
// recovery before the socket closes; a raw socket error skips this since
// the connection is already gone.
func (c *Client) sendDisconnect() {
	data, err := codec.Encode(codec.DisconnectMsg{})
	if err != nil {
		logging.Error("failed to encode disconnect: %v", err)
		return
	}
	_ = c.conn.WriteFrame(data)
}

func (c *Client) sendWelcome(session domain.SessionId, player domain.Player) {
	data, err := codec.Encode(codec.Welcome{SessionID: session, Player: player})
	if err != nil {
		logging.Error("failed to encode welcome: %v", err)
		return
	}
	if err := c.conn.WriteFrame(data); err != nil {
		logging.Warn("failed to write welcome: %v", err)
	}
}

func (c *Client) active(p domain.Player, session domain.SessionId, inbox chan domain.Choice, outbox chan domain.ServerEvent) {
	done := make(chan struct{})
	go c.writePump(outbox, done)
	c.readPump(p, session, inbox, done)
}

func (c *Client) readPump(p domain.Player, session domain.SessionId, inbox chan domain.Choice, done chan struct{}) {
	defer close(done)

	for {
		if c.idleTimeout > 0 {
			c.conn.SetReadDeadline(time.Now().Add(c.idleTimeout))
		}

		data, err := c.conn.ReadFrame()
		if err != nil {
			logging.Warn("socket error for session %s: %v", session, err)
			c.reg.MarkDisconnected(session)
			c.hub.NotifyDisconnect(p)
			return
		}

		msg, err := codec.Decode(data)
		if err != nil {
			logging.Warn("decode error for session %s: %v", session, err)
			c.sendDisconnect()
			c.reg.MarkDisconnected(session)
			c.hub.NotifyDisconnect(p)
			return
		}

		choice, ok := msg.(codec.ChoiceMsg)
		if !ok {
			logging.Warn("protocol violation: unexpected message from session %s", session)
			c.sendDisconnect()
			c.reg.MarkDisconnected(session)
			c.hub.NotifyDisconnect(p)
			return
		}

		select {
		case inbox <- domain.Choice{Index: int(choice.MovementIndex)}:
		case <-done:
			return
		}
	}
}

func (c *Client) writePump(outbox chan domain.ServerEvent, done chan struct{}) {
	for {
		select {
		case ev, ok := <-outbox:
			if !ok {
				c.conn.Close()
				return
			}
			data, err := codec.Encode(eventToMessage(ev))
			if err != nil {
				logging.Error("failed to encode outbound event: %v", err)
				continue
			}
			if err := c.conn.WriteFrame(data); err != nil {
				logging.Warn("write error: %v", err)
				c.conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}

func eventToMessage(ev domain.ServerEvent) codec.Message {
	switch ev.Kind {
	case domain.EventTurn:
		return codec.TurnMsg{Movements: ev.Turn}
	case domain.EventMovement:
		return codec.MovementMsg{Player: ev.Movement.Player, Movement: ev.Movement.Movement, Scores: ev.Movement.Scores}
	case domain.EventGameFinished:
		return codec.GameFinishedMsg{Result: ev.Result}
	default:
		return codec.DisconnectMsg{}
	}
}
