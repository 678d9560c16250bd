/*
 * file: hub.go
 * package: hub
 * description:
 *     The single authoritative task owning Occupancy, TurnState, and both
 *     PlayerSlots for one game. Client Connection Actors talk to it only
 *     through Hello/Reconnect/NotifyDisconnect and the slot Inbox channels
 *     returned from admission — every other field is private to Run's
 *     goroutine and touched nowhere else.
 */
package hub

import (
	"time"

	"github.com/google/uuid"
	"github.com/juan10024/sternhalma-server/internal/core/domain"
	"github.com/juan10024/sternhalma-server/internal/core/ports"
	"github.com/juan10024/sternhalma-server/internal/core/services/engine"
	"github.com/juan10024/sternhalma-server/internal/core/services/registry"
	"github.com/juan10024/sternhalma-server/internal/platform/logging"
)

type helloRequest struct {
	outbox chan domain.ServerEvent
	reply  chan helloReply
}

type helloReply struct {
	player  domain.Player
	session domain.SessionId
	inbox   chan domain.Choice
	err     error
}

type reconnectRequest struct {
	sessionID domain.SessionId
	outbox    chan domain.ServerEvent
	reply     chan reconnectReply
}

type reconnectReply struct {
	player domain.Player
	inbox  chan domain.Choice
	err    error
}

// Hub is one running game. Construct with New, launch Run in its own
// goroutine, and drive admission exclusively through Hello/Reconnect/
// NotifyDisconnect.
type Hub struct {
	reg            *registry.Registry
	matchRepo      ports.MatchRepository
	maxTurns       uint
	reconnectGrace time.Duration

	helloCh      chan *helloRequest
	reconnectCh  chan *reconnectRequest
	disconnectCh chan domain.Player

	slots    [2]*domain.PlayerSlot
	assigned [2]bool

	occ     domain.Occupancy
	turn    domain.TurnState
	started bool
	moveLog []domain.MovementEvent

	graceTimer *time.Timer
	graceFor   domain.Player
	terminal   bool
}

/*
 * New constructs a Hub ready to accept admission requests. Call Run in its
 * own goroutine to start serving them.
 *
 * Parameters:
 *   - maxTurns (uint): the turn cap at which an undecided game ends MaxTurns.
 *   - reconnectGrace (time.Duration): how long the hub waits for the current
 *     player to reconnect before declaring a Forfeit.
 *   - reg (*registry.Registry): the shared session registry.
 *   - repo (ports.MatchRepository): the match-history sink; may be a no-op.
 */
func New(maxTurns uint, reconnectGrace time.Duration, reg *registry.Registry, repo ports.MatchRepository) *Hub {
	h := &Hub{
		reg:            reg,
		matchRepo:      repo,
		maxTurns:       maxTurns,
		reconnectGrace: reconnectGrace,
		helloCh:        make(chan *helloRequest),
		reconnectCh:    make(chan *reconnectRequest),
		disconnectCh:   make(chan domain.Player, 2),
	}
	h.slots[domain.P1] = &domain.PlayerSlot{ID: domain.P1, Inbox: make(chan domain.Choice, 4)}
	h.slots[domain.P2] = &domain.PlayerSlot{ID: domain.P2, Inbox: make(chan domain.Choice, 4)}
	return h
}

/*
 * Hello registers a brand-new connection. Blocks until the hub's Run loop
 * processes the request.
 *
 * Returns:
 *   - domain.Player: the assigned seat.
 *   - domain.SessionId: the newly minted session id.
 *   - chan domain.Choice: the inbox the caller must forward Choice messages
 *     into.
 *   - error: domain.ErrServerFull if both seats are already taken.
 */
func (h *Hub) Hello(outbox chan domain.ServerEvent) (domain.Player, domain.SessionId, chan domain.Choice, error) {
	reply := make(chan helloReply, 1)
	h.helloCh <- &helloRequest{outbox: outbox, reply: reply}
	r := <-reply
	return r.player, r.session, r.inbox, r.err
}

/*
 * Reconnect rebinds an existing session to a new outbox.
 *
 * Returns:
 *   - domain.Player: the seat the session belongs to.
 *   - chan domain.Choice: the session's original inbox.
 *   - error: domain.ErrUnknownSession or domain.ErrSessionBusy on failure.
 */
func (h *Hub) Reconnect(sessionID domain.SessionId, outbox chan domain.ServerEvent) (domain.Player, chan domain.Choice, error) {
	reply := make(chan reconnectReply, 1)
	h.reconnectCh <- &reconnectRequest{sessionID: sessionID, outbox: outbox, reply: reply}
	r := <-reply
	return r.player, r.inbox, r.err
}

// NotifyDisconnect tells the hub a player's socket was lost. Non-blocking;
// safe to call from the Client Connection Actor's own goroutine.
func (h *Hub) NotifyDisconnect(p domain.Player) {
	select {
	case h.disconnectCh <- p:
	default:
	}
}

// Run is the hub's single event loop. It returns once the game reaches a
// terminal GameResult or is aborted.
func (h *Hub) Run() {
	for {
		var graceC <-chan time.Time
		if h.graceTimer != nil {
			graceC = h.graceTimer.C
		}

		select {
		case req := <-h.helloCh:
			h.handleHello(req)
		case req := <-h.reconnectCh:
			h.handleReconnect(req)
		case p := <-h.disconnectCh:
			h.handleDisconnect(p)
		case <-graceC:
			h.graceTimer = nil
			h.forfeit()
		case c := <-h.slots[domain.P1].Inbox:
			h.handleChoice(domain.P1, c)
		case c := <-h.slots[domain.P2].Inbox:
			h.handleChoice(domain.P2, c)
		}

		if h.terminal {
			return
		}
	}
}

func (h *Hub) handleHello(req *helloRequest) {
	var p domain.Player
	switch {
	case !h.assigned[domain.P1]:
		p = domain.P1
	case !h.assigned[domain.P2]:
		p = domain.P2
	default:
		req.reply <- helloReply{err: domain.ErrServerFull}
		return
	}

	slot := h.slots[p]
	slot.Outbox = req.outbox
	id := h.reg.Create(slot)
	h.assigned[p] = true
	req.reply <- helloReply{player: p, session: id, inbox: slot.Inbox}

	if h.assigned[domain.P1] && h.assigned[domain.P2] {
		h.startGame()
	}
}

func (h *Hub) handleReconnect(req *reconnectRequest) {
	slot, err := h.reg.Rebind(req.sessionID, req.outbox)
	if err != nil {
		req.reply <- reconnectReply{err: err}
		return
	}
	p := slot.ID
	req.reply <- reconnectReply{player: p, inbox: slot.Inbox}

	if h.graceTimer != nil && h.graceFor == p {
		h.graceTimer.Stop()
		h.graceTimer = nil
	}
	if h.started && h.turn.Current == p && len(h.turn.PendingMoves) > 0 {
		h.send(p, domain.ServerEvent{Kind: domain.EventTurn, Turn: h.turn.PendingMoves})
	}
}

func (h *Hub) handleDisconnect(p domain.Player) {
	if h.started && h.turn.Current == p && h.graceTimer == nil {
		h.graceFor = p
		h.graceTimer = time.NewTimer(h.reconnectGrace)
	}
}

func (h *Hub) handleChoice(p domain.Player, c domain.Choice) {
	if !h.started || h.turn.Current != p || c.Index < 0 || c.Index >= len(h.turn.PendingMoves) {
		logging.Warn("protocol violation from %s: choice %+v against %d pending moves", p, c, len(h.turn.PendingMoves))
		h.dropForViolation(p)
		return
	}

	move := h.turn.PendingMoves[c.Index]
	if err := engine.Apply(h.occ, p, move); err != nil {
		logging.Error("engine rejected a move drawn from pending_moves: %v", err)
		h.abortBoth()
		return
	}

	h.turn.TurnsElapsed++
	scores := engine.Scores(h.occ)
	ev := domain.MovementEvent{Player: p, Movement: move, Scores: scores}
	h.moveLog = append(h.moveLog, ev)
	h.broadcast(domain.ServerEvent{Kind: domain.EventMovement, Movement: ev})

	if result, ok := engine.CheckResult(h.occ, h.turn.TurnsElapsed, h.maxTurns); ok {
		h.finish(result)
		return
	}
	h.turn.Current = p.Opponent()
	h.issueTurn()
}

func (h *Hub) startGame() {
	h.started = true
	h.occ = domain.NewInitialOccupancy()
	h.turn = domain.TurnState{Current: domain.P1, TurnsElapsed: 0}

	if result, ok := engine.CheckResult(h.occ, 0, h.maxTurns); ok {
		h.finish(result)
		return
	}
	h.issueTurn()
}

// issueTurn computes and sends the next Turn, forcing a pass (a player with
// zero legal moves auto-skips) if the board geometry somehow leaves the
// current player with none. Capped at three rotations as a last-resort
// guard against a true stalemate, which the board's piece count is
// believed never to produce.
func (h *Hub) issueTurn() {
	for i := 0; i < 3; i++ {
		moves := engine.LegalMoves(h.occ, h.turn.Current)
		if len(moves) > 0 {
			h.turn.PendingMoves = moves
			h.send(h.turn.Current, domain.ServerEvent{Kind: domain.EventTurn, Turn: moves})
			return
		}

		logging.Warn("player %s has no legal moves, forcing a pass", h.turn.Current)
		h.turn.TurnsElapsed++
		if result, ok := engine.CheckResult(h.occ, h.turn.TurnsElapsed, h.maxTurns); ok {
			h.finish(result)
			return
		}
		h.turn.Current = h.turn.Current.Opponent()
	}

	logging.Error("both players stalemated with no legal moves; ending the game")
	h.finish(domain.MaxTurns(h.turn.TurnsElapsed, engine.Scores(h.occ)))
}

func (h *Hub) forfeit() {
	winner := h.turn.Current.Opponent()
	scores := engine.Scores(h.occ)
	h.finish(domain.Forfeit(winner, h.turn.TurnsElapsed, scores))
}

func (h *Hub) dropForViolation(p domain.Player) {
	slot := h.slots[p]
	h.reg.MarkDisconnected(slot.Session)
	h.send(p, domain.ServerEvent{Kind: domain.EventDisconnect})
	if slot.Outbox != nil {
		close(slot.Outbox)
		slot.Outbox = nil
	}
	h.handleDisconnect(p)
}

func (h *Hub) abortBoth() {
	h.broadcast(domain.ServerEvent{Kind: domain.EventDisconnect})
	for _, p := range [2]domain.Player{domain.P1, domain.P2} {
		slot := h.slots[p]
		if slot.Outbox != nil {
			close(slot.Outbox)
			slot.Outbox = nil
		}
		h.reg.Release(slot.Session)
	}
	h.terminal = true
}

func (h *Hub) finish(result domain.GameResult) {
	h.broadcast(domain.ServerEvent{Kind: domain.EventGameFinished, Result: result})
	for _, p := range [2]domain.Player{domain.P1, domain.P2} {
		slot := h.slots[p]
		if slot.Outbox != nil {
			close(slot.Outbox)
			slot.Outbox = nil
		}
		h.reg.Release(slot.Session)
	}

	if h.matchRepo != nil {
		sp1 := uuid.UUID(h.slots[domain.P1].Session).String()
		sp2 := uuid.UUID(h.slots[domain.P2].Session).String()
		if err := h.matchRepo.RecordMatch(sp1, sp2, result, h.moveLog); err != nil {
			logging.Error("failed to record match history: %v", err)
		}
	}
	h.terminal = true
}

func (h *Hub) send(p domain.Player, ev domain.ServerEvent) {
	slot := h.slots[p]
	if slot.Outbox == nil {
		return
	}
	select {
	case slot.Outbox <- ev:
	default:
		logging.Warn("outbox full for %s, dropping event kind %d", p, ev.Kind)
	}
}

func (h *Hub) broadcast(ev domain.ServerEvent) {
	h.send(domain.P1, ev)
	h.send(domain.P2, ev)
}
