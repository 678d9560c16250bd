package hub

import (
	"testing"
	"time"

	"github.com/juan10024/sternhalma-server/internal/core/domain"
	"github.com/juan10024/sternhalma-server/internal/core/services/registry"
)

func drain(t *testing.T, outbox chan domain.ServerEvent, timeout time.Duration) domain.ServerEvent {
	t.Helper()
	select {
	case ev, ok := <-outbox:
		if !ok {
			t.Fatal("outbox closed unexpectedly")
		}
		return ev
	case <-time.After(timeout):
		t.Fatal("timed out waiting for server event")
		return domain.ServerEvent{}
	}
}

func TestHelloAssignsBothSeatsThenRejectsThird(t *testing.T) {
	reg := registry.New()
	h := New(300, time.Second, reg, nil)
	go h.Run()

	out1 := make(chan domain.ServerEvent, 8)
	p1, _, _, err := h.Hello(out1)
	if err != nil || p1 != domain.P1 {
		t.Fatalf("first hello: p=%v err=%v", p1, err)
	}

	out2 := make(chan domain.ServerEvent, 8)
	p2, _, _, err := h.Hello(out2)
	if err != nil || p2 != domain.P2 {
		t.Fatalf("second hello: p=%v err=%v", p2, err)
	}

	// A turn must be issued to P1 as soon as both seats are filled.
	ev := drain(t, out1, time.Second)
	if ev.Kind != domain.EventTurn || len(ev.Turn) == 0 {
		t.Fatalf("expected a non-empty turn for P1, got %+v", ev)
	}

	out3 := make(chan domain.ServerEvent, 8)
	if _, _, _, err := h.Hello(out3); err != domain.ErrServerFull {
		t.Fatalf("expected ErrServerFull, got %v", err)
	}
}

func TestChoiceAdvancesTurnToOpponent(t *testing.T) {
	reg := registry.New()
	h := New(300, time.Second, reg, nil)
	go h.Run()

	out1 := make(chan domain.ServerEvent, 8)
	_, _, inbox1, _ := h.Hello(out1)
	out2 := make(chan domain.ServerEvent, 8)
	_, _, _, _ = h.Hello(out2)

	turnEv := drain(t, out1, time.Second)
	inbox1 <- domain.Choice{Index: 0}

	moveEv := drain(t, out2, time.Second)
	if moveEv.Kind != domain.EventMovement {
		t.Fatalf("expected a movement broadcast, got %+v", moveEv)
	}
	if moveEv.Movement.Player != domain.P1 {
		t.Fatalf("expected the movement to be attributed to P1, got %v", moveEv.Movement.Player)
	}
	_ = turnEv

	nextTurn := drain(t, out2, time.Second)
	if nextTurn.Kind != domain.EventTurn {
		t.Fatalf("expected the next turn to go to P2, got %+v", nextTurn)
	}
}

func TestOutOfRangeChoiceDropsTheOffendingPlayer(t *testing.T) {
	reg := registry.New()
	h := New(300, time.Second, reg, nil)
	go h.Run()

	out1 := make(chan domain.ServerEvent, 8)
	_, session1, inbox1, _ := h.Hello(out1)
	out2 := make(chan domain.ServerEvent, 8)
	_, _, _, _ = h.Hello(out2)

	drain(t, out1, time.Second) // initial turn

	inbox1 <- domain.Choice{Index: 999}

	ev := drain(t, out1, time.Second)
	if ev.Kind != domain.EventDisconnect {
		t.Fatalf("expected the violating player to be disconnected, got %+v", ev)
	}
	slot, ok := reg.Lookup(session1)
	if !ok {
		t.Fatal("expected the violating session to remain reservable for reconnection")
	}
	if slot.Connected {
		t.Fatal("expected the violating session to be marked disconnected")
	}
}

func TestMaxTurnsZeroEndsImmediately(t *testing.T) {
	reg := registry.New()
	h := New(0, time.Second, reg, nil)
	go h.Run()

	out1 := make(chan domain.ServerEvent, 8)
	_, _, _, _ = h.Hello(out1)
	out2 := make(chan domain.ServerEvent, 8)
	_, _, _, _ = h.Hello(out2)

	ev := drain(t, out1, time.Second)
	if ev.Kind != domain.EventGameFinished {
		t.Fatalf("expected an immediate game_finished with max_turns=0, got %+v", ev)
	}
	if ev.Result.Kind != domain.ResultMaxTurns {
		t.Fatalf("expected ResultMaxTurns, got %v", ev.Result.Kind)
	}
}

func TestDisconnectGraceExpiryForfeits(t *testing.T) {
	reg := registry.New()
	h := New(300, 10*time.Millisecond, reg, nil)
	go h.Run()

	out1 := make(chan domain.ServerEvent, 8)
	_, _, _, _ = h.Hello(out1)
	out2 := make(chan domain.ServerEvent, 8)
	_, _, _, _ = h.Hello(out2)

	drain(t, out1, time.Second) // initial turn goes to P1

	h.NotifyDisconnect(domain.P1)

	ev := drain(t, out2, 500*time.Millisecond)
	if ev.Kind != domain.EventGameFinished {
		t.Fatalf("expected game_finished after grace expiry, got %+v", ev)
	}
	if ev.Result.Kind != domain.ResultForfeit || ev.Result.Winner != domain.P2 {
		t.Fatalf("expected P2 to win by forfeit, got %+v", ev.Result)
	}
}
