package transport

import (
	"io"
	"testing"
	"time"

	"github.com/juan10024/sternhalma-server/internal/core/services/codec"
	"github.com/juan10024/sternhalma-server/internal/core/services/hub"
	"github.com/juan10024/sternhalma-server/internal/core/services/registry"
)

// fakeConn is an in-memory FrameConn: outbound frames written by the
// Client go onto out, and inbound frames are fed from in.
type fakeConn struct {
	in     chan []byte
	out    chan []byte
	closed chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan []byte, 8), out: make(chan []byte, 8), closed: make(chan struct{})}
}

func (f *fakeConn) ReadFrame() ([]byte, error) {
	select {
	case data, ok := <-f.in:
		if !ok {
			return nil, io.EOF
		}
		return data, nil
	case <-f.closed:
		return nil, io.EOF
	}
}

func (f *fakeConn) WriteFrame(data []byte) error {
	select {
	case f.out <- data:
		return nil
	case <-f.closed:
		return io.ErrClosedPipe
	}
}

func (f *fakeConn) SetReadDeadline(time.Time) error { return nil }

func (f *fakeConn) Close() error {
	select {
	case <-f.closed:
	default:
		close(f.closed)
	}
	return nil
}

func (f *fakeConn) sendFromPeer(t *testing.T, msg codec.Message) {
	t.Helper()
	data, err := codec.Encode(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.in <- data
}

func (f *fakeConn) recvToPeer(t *testing.T, timeout time.Duration) codec.Message {
	t.Helper()
	select {
	case data := <-f.out:
		msg, err := codec.Decode(data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		return msg
	case <-time.After(timeout):
		t.Fatal("timed out waiting for outbound frame")
		return nil
	}
}

func TestClientHandshakeHelloReceivesWelcome(t *testing.T) {
	reg := registry.New()
	h := hub.New(300, time.Second, reg, nil)
	go h.Run()

	conn := newFakeConn()
	client := NewClient(conn, h, reg, time.Second, time.Second)
	go client.Serve()

	conn.sendFromPeer(t, codec.Hello{})
	msg := conn.recvToPeer(t, time.Second)
	if _, ok := msg.(codec.Welcome); !ok {
		t.Fatalf("expected a welcome message, got %#v", msg)
	}
}

func TestClientHandshakeRejectsGarbage(t *testing.T) {
	reg := registry.New()
	h := hub.New(300, time.Second, reg, nil)
	go h.Run()

	conn := newFakeConn()
	client := NewClient(conn, h, reg, time.Second, time.Second)
	go client.Serve()

	conn.in <- []byte("not cbor")
	msg := conn.recvToPeer(t, time.Second)
	reject, ok := msg.(codec.Reject)
	if !ok {
		t.Fatalf("expected a reject message, got %#v", msg)
	}
	if reject.Reason == "" {
		t.Fatal("expected a non-empty rejection reason")
	}
}

func TestClientForwardsChoiceToInbox(t *testing.T) {
	reg := registry.New()
	h := hub.New(300, time.Second, reg, nil)
	go h.Run()

	connA := newFakeConn()
	clientA := NewClient(connA, h, reg, time.Second, time.Second)
	go clientA.Serve()
	connA.sendFromPeer(t, codec.Hello{})
	connA.recvToPeer(t, time.Second) // welcome

	connB := newFakeConn()
	clientB := NewClient(connB, h, reg, time.Second, time.Second)
	go clientB.Serve()
	connB.sendFromPeer(t, codec.Hello{})
	connB.recvToPeer(t, time.Second) // welcome

	turnMsg := connA.recvToPeer(t, time.Second)
	turn, ok := turnMsg.(codec.TurnMsg)
	if !ok || len(turn.Movements) == 0 {
		t.Fatalf("expected a non-empty turn for player A, got %#v", turnMsg)
	}

	connA.sendFromPeer(t, codec.ChoiceMsg{MovementIndex: 0})

	moveMsg := connB.recvToPeer(t, time.Second)
	if _, ok := moveMsg.(codec.MovementMsg); !ok {
		t.Fatalf("expected player B to observe the movement broadcast, got %#v", moveMsg)
	}
}

func TestClientSendsDisconnectOnDecodeError(t *testing.T) {
	reg := registry.New()
	h := hub.New(300, time.Second, reg, nil)
	go h.Run()

	connA := newFakeConn()
	clientA := NewClient(connA, h, reg, time.Second, time.Second)
	go clientA.Serve()
	connA.sendFromPeer(t, codec.Hello{})
	connA.recvToPeer(t, time.Second) // welcome

	connB := newFakeConn()
	clientB := NewClient(connB, h, reg, time.Second, time.Second)
	go clientB.Serve()
	connB.sendFromPeer(t, codec.Hello{})
	connB.recvToPeer(t, time.Second) // welcome

	connA.recvToPeer(t, time.Second) // initial turn

	connA.in <- []byte("not cbor")

	msg := connA.recvToPeer(t, time.Second)
	if _, ok := msg.(codec.DisconnectMsg); !ok {
		t.Fatalf("expected a disconnect message after a decode error, got %#v", msg)
	}
}

func TestClientSendsDisconnectOnProtocolViolation(t *testing.T) {
	reg := registry.New()
	h := hub.New(300, time.Second, reg, nil)
	go h.Run()

	connA := newFakeConn()
	clientA := NewClient(connA, h, reg, time.Second, time.Second)
	go clientA.Serve()
	connA.sendFromPeer(t, codec.Hello{})
	connA.recvToPeer(t, time.Second) // welcome

	connB := newFakeConn()
	clientB := NewClient(connB, h, reg, time.Second, time.Second)
	go clientB.Serve()
	connB.sendFromPeer(t, codec.Hello{})
	connB.recvToPeer(t, time.Second) // welcome

	connA.recvToPeer(t, time.Second) // initial turn

	connA.sendFromPeer(t, codec.Hello{}) // unexpected message type while Active

	msg := connA.recvToPeer(t, time.Second)
	if _, ok := msg.(codec.DisconnectMsg); !ok {
		t.Fatalf("expected a disconnect message after a protocol violation, got %#v", msg)
	}
}
