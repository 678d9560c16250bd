package registry

import (
	"testing"

	"github.com/juan10024/sternhalma-server/internal/core/domain"
)

func newSlot(p domain.Player) *domain.PlayerSlot {
	return &domain.PlayerSlot{
		ID:     p,
		Inbox:  make(chan domain.Choice, 1),
		Outbox: make(chan domain.ServerEvent, 1),
	}
}

func TestCreateAssignsSessionAndMarksConnected(t *testing.T) {
	r := New()
	slot := newSlot(domain.P1)
	id := r.Create(slot)

	if slot.Session != id {
		t.Errorf("slot.Session = %v, want %v", slot.Session, id)
	}
	if !slot.Connected {
		t.Error("expected slot to be marked connected after Create")
	}

	got, ok := r.Lookup(id)
	if !ok {
		t.Fatal("expected Lookup to find the newly created session")
	}
	if got != slot {
		t.Error("Lookup returned a different slot than the one created")
	}
}

func TestRebindUnknownSession(t *testing.T) {
	r := New()
	_, err := r.Rebind(NewSessionId(), make(chan domain.ServerEvent, 1))
	if err != domain.ErrUnknownSession {
		t.Errorf("Rebind() error = %v, want ErrUnknownSession", err)
	}
}

func TestRebindBusySession(t *testing.T) {
	r := New()
	slot := newSlot(domain.P1)
	id := r.Create(slot)

	_, err := r.Rebind(id, make(chan domain.ServerEvent, 1))
	if err != domain.ErrSessionBusy {
		t.Errorf("Rebind() error = %v, want ErrSessionBusy", err)
	}
}

func TestRebindAfterDisconnect(t *testing.T) {
	r := New()
	slot := newSlot(domain.P1)
	id := r.Create(slot)
	r.MarkDisconnected(id)

	newOutbox := make(chan domain.ServerEvent, 1)
	rebound, err := r.Rebind(id, newOutbox)
	if err != nil {
		t.Fatalf("Rebind() error = %v", err)
	}
	if rebound.Outbox != newOutbox {
		t.Error("Rebind did not swap in the new outbox")
	}
	if !rebound.Connected {
		t.Error("expected slot to be reconnected after Rebind")
	}
}

func TestReleaseRemovesSession(t *testing.T) {
	r := New()
	slot := newSlot(domain.P1)
	id := r.Create(slot)
	r.Release(id)

	if _, ok := r.Lookup(id); ok {
		t.Error("expected Lookup to fail after Release")
	}
}

func TestNewSessionIdUnique(t *testing.T) {
	a := NewSessionId()
	b := NewSessionId()
	if a == b {
		t.Error("expected two generated session ids to differ")
	}
}
