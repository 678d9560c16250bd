/*
 * file: registry.go
 * package: registry
 * description:
 *     Process-wide mapping from session identifier to the logical player
 *     slot and its current connection status. Never owns game state — only
 *     enough of the PlayerSlot to let a reconnect rebind the outbox.
 */
package registry

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juan10024/sternhalma-server/internal/core/domain"
)

// Registry is a mutex-guarded SessionId -> *domain.PlayerSlot index: one
// coarse lock over a plain map.
type Registry struct {
	mu       sync.Mutex
	sessions map[domain.SessionId]*domain.PlayerSlot
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{sessions: make(map[domain.SessionId]*domain.PlayerSlot)}
}

// NewSessionId generates a fresh, process-unique session identifier.
func NewSessionId() domain.SessionId {
	var id domain.SessionId
	copy(id[:], uuid.New()[:])
	return id
}

/*
 * Create registers slot under a freshly generated session id and returns
 * it. The caller has already populated slot.ID/Inbox/Outbox.
 */
func (r *Registry) Create(slot *domain.PlayerSlot) domain.SessionId {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := NewSessionId()
	slot.Session = id
	slot.Connected = true
	slot.LastSeen = time.Now()
	r.sessions[id] = slot
	return id
}

/*
 * Rebind attaches a new outbox to an existing, currently-disconnected
 * session.
 *
 * Returns:
 *   - *domain.PlayerSlot: the slot, with its outbox swapped to newOutbox
 *     and Connected set true.
 *   - error: domain.ErrUnknownSession if no such session exists,
 *     domain.ErrSessionBusy if it is currently connected.
 */
func (r *Registry) Rebind(id domain.SessionId, newOutbox chan domain.ServerEvent) (*domain.PlayerSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrUnknownSession
	}
	if slot.Connected {
		return nil, domain.ErrSessionBusy
	}
	slot.Outbox = newOutbox
	slot.Connected = true
	slot.LastSeen = time.Now()
	return slot, nil
}

// MarkDisconnected flips a slot's Connected flag without releasing it —
// the session remains reservable for reconnection.
func (r *Registry) MarkDisconnected(id domain.SessionId) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slot, ok := r.sessions[id]; ok {
		slot.Connected = false
		slot.LastSeen = time.Now()
	}
}

// Release removes a session entirely. Called once by the hub when the
// game ends.
func (r *Registry) Release(id domain.SessionId) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Lookup returns the slot for id, if any, without altering its state.
func (r *Registry) Lookup(id domain.SessionId) (*domain.PlayerSlot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.sessions[id]
	return slot, ok
}
