/*
 * file: tcp.go
 * package: tcp
 * description:
 *     Length-prefixed framing over a raw net.Conn: 4-byte big-endian
 *     length, then payload. Grounded on the header-then-body read loop in
 *     nwaples-tacplus's conn.go (readPacketHeader/readPacketBody), adapted
 *     from a fixed 12-byte TACACS+ header to a bare uint32 length prefix.
 */
package tcp

import (
	"encoding/binary"
	"io"
	"net"
	"time"

	"github.com/juan10024/sternhalma-server/internal/adapters/transport"
	"github.com/juan10024/sternhalma-server/internal/core/domain"
	"github.com/juan10024/sternhalma-server/internal/core/services/hub"
	"github.com/juan10024/sternhalma-server/internal/core/services/registry"
	"github.com/juan10024/sternhalma-server/internal/platform/logging"
)

const lengthPrefixSize = 4

// MaxFrameSize caps the length prefix to guard against unbounded
// allocation from an untrusted or malformed length field.
const MaxFrameSize = 1 << 20 // 1 MiB

// Conn adapts a net.Conn to transport.FrameConn.
type Conn struct {
	nc net.Conn
}

// NewConn wraps an accepted net.Conn.
func NewConn(nc net.Conn) *Conn { return &Conn{nc: nc} }

/*
 * ReadFrame reads one length-prefixed frame.
 *
 * Returns:
 *   - []byte: the payload.
 *   - error: domain.ErrFrameTooLarge if the declared length exceeds
 *     MaxFrameSize, or the underlying I/O error otherwise.
 */
func (c *Conn) ReadFrame() ([]byte, error) {
	header := make([]byte, lengthPrefixSize)
	if _, err := io.ReadFull(c.nc, header); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint32(header)
	if length > MaxFrameSize {
		return nil, domain.ErrFrameTooLarge
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(c.nc, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// WriteFrame writes data as one length-prefixed frame.
func (c *Conn) WriteFrame(data []byte) error {
	header := make([]byte, lengthPrefixSize)
	binary.BigEndian.PutUint32(header, uint32(len(data)))
	if _, err := c.nc.Write(header); err != nil {
		return err
	}
	_, err := c.nc.Write(data)
	return err
}

// SetReadDeadline forwards to the underlying net.Conn.
func (c *Conn) SetReadDeadline(t time.Time) error { return c.nc.SetReadDeadline(t) }

// Close closes the underlying net.Conn.
func (c *Conn) Close() error { return c.nc.Close() }

/*
 * Listen binds addr and serves accepted connections as Client actors until
 * the listener is closed.
 *
 * Parameters:
 *   - addr (string): host:port to bind.
 *   - h (*hub.Hub): the hub new connections are admitted into.
 *   - reg (*registry.Registry): the shared session registry.
 *   - handshakeTimeout, idleTimeout (time.Duration): forwarded to every
 *     accepted Client.
 *
 * Returns:
 *   - error: a bind failure; callers exit non-zero on this.
 */
func Listen(addr string, h *hub.Hub, reg *registry.Registry, handshakeTimeout, idleTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logging.Info("tcp listener bound on %s", addr)

	go func() {
		for {
			nc, err := ln.Accept()
			if err != nil {
				logging.Error("tcp accept failed: %v", err)
				return
			}
			client := transport.NewClient(NewConn(nc), h, reg, handshakeTimeout, idleTimeout)
			go client.Serve()
		}
	}()
	return nil
}
