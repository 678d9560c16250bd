package tcp

import (
	"net"
	"testing"
	"time"
)

func TestWriteFrameReadFrameRoundTrip(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	serverConn := NewConn(server)
	clientConn := NewConn(client)

	payload := []byte("hello sternhalma")
	errCh := make(chan error, 1)
	go func() { errCh <- serverConn.WriteFrame(payload) }()

	got, err := clientConn.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("got %q, want %q", got, payload)
	}
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	serverConn := NewConn(server)
	clientConn := NewConn(client)

	oversized := make([]byte, MaxFrameSize+1)
	errCh := make(chan error, 1)
	go func() { errCh <- serverConn.WriteFrame(oversized) }()

	_, err := clientConn.ReadFrame()
	if err == nil {
		t.Fatal("expected an error for an oversized frame")
	}
}

func TestSetReadDeadlineForwardsToConn(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	c := NewConn(client)
	if err := c.SetReadDeadline(time.Now().Add(time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
}
