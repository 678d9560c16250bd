/*
 * file: ws.go
 * package: ws
 * description:
 *     WebSocket binary-frame codec and listener: one CBOR payload per
 *     binary frame, upgraded on a fixed /ws path and handed off to a
 *     single-game Client actor.
 */
package ws

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/juan10024/sternhalma-server/internal/adapters/transport"
	"github.com/juan10024/sternhalma-server/internal/core/domain"
	"github.com/juan10024/sternhalma-server/internal/core/services/hub"
	"github.com/juan10024/sternhalma-server/internal/core/services/registry"
	"github.com/juan10024/sternhalma-server/internal/platform/logging"
)

const maxMessageSize = 1 << 20 // 1 MiB, mirrors tcp.MaxFrameSize

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Conn adapts a *websocket.Conn to transport.FrameConn, accepting only
// binary frames.
type Conn struct {
	ws *websocket.Conn
}

// NewConn wraps an upgraded WebSocket connection.
func NewConn(ws *websocket.Conn) *Conn {
	ws.SetReadLimit(maxMessageSize)
	return &Conn{ws: ws}
}

/*
 * ReadFrame reads the next frame, rejecting anything but a binary frame.
 *
 * Returns:
 *   - []byte: the payload.
 *   - error: domain.ErrUnexpectedFrameKind for a text frame, the
 *     underlying error otherwise.
 */
func (c *Conn) ReadFrame() ([]byte, error) {
	kind, data, err := c.ws.ReadMessage()
	if err != nil {
		return nil, err
	}
	if kind != websocket.BinaryMessage {
		return nil, domain.ErrUnexpectedFrameKind
	}
	return data, nil
}

// WriteFrame writes data as one binary frame.
func (c *Conn) WriteFrame(data []byte) error {
	return c.ws.WriteMessage(websocket.BinaryMessage, data)
}

// SetReadDeadline forwards to the underlying connection.
func (c *Conn) SetReadDeadline(t time.Time) error { return c.ws.SetReadDeadline(t) }

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.ws.Close() }

/*
 * Handle registers the /ws upgrade route on mux, so a caller can attach
 * other routes (such as the stats endpoint) to the same server before
 * calling Listen.
 */
func Handle(mux *http.ServeMux, h *hub.Hub, reg *registry.Registry, handshakeTimeout, idleTimeout time.Duration) {
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Error("websocket upgrade failed: %v", err)
			return
		}
		client := transport.NewClient(NewConn(conn), h, reg, handshakeTimeout, idleTimeout)
		go client.Serve()
	})
}

/*
 * Listen binds addr and serves mux, returning once the listener is bound
 * successfully; serving itself continues in a background goroutine.
 *
 * Returns:
 *   - error: a bind failure; callers exit non-zero on this.
 */
func Listen(addr string, mux *http.ServeMux) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logging.Info("websocket listener bound on %s/ws", addr)

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			logging.Error("websocket server stopped: %v", err)
		}
	}()
	return nil
}
