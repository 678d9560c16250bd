/*
 * file: ports.go
 * package: ports
 * description:
 * 			This file defines the interfaces that form the boundaries of the application's core logic (hexagon).
 * 			These ports allow the core services to be decoupled from specific infrastructure implementations
 */

package ports

import "github.com/juan10024/sternhalma-server/internal/core/domain"

// MatchRepository defines the contract for the best-effort match-history
// sink. A finished game is recorded once, after the hub reaches a terminal
// GameResult; nothing reads this back to reconstruct live game state.
type MatchRepository interface {
	RecordMatch(sessionP1, sessionP2 string, result domain.GameResult, moves []domain.MovementEvent) error
	CountMatches() (int64, error)
	SumTurns() (int64, error)
}
