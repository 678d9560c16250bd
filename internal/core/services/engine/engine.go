/*
 * file: engine.go
 * package: engine
 * description:
 *     Pure board logic: legal move enumeration, move application, and
 *     scoring. Holds no state of its own — every function takes the
 *     occupancy it operates on; Apply mutates it in place, the others only
 *     read it and return a derived value.
 */
package engine

import "github.com/juan10024/sternhalma-server/internal/core/domain"

/*
 * LegalMoves enumerates, in deterministic order, every Movement available
 * to player p given the current occupancy.
 *
 * Parameters:
 *   - occ (domain.Occupancy): the board to enumerate moves over.
 *   - p (domain.Player): the player whose pieces may move.
 *
 * Returns:
 *   - []domain.Movement: sources in board order; for each source, its step
 *     moves (directions in canonical order) before its jump landings (in
 *     the order the jump recursion first visits them); deduplicated by
 *     (start, end).
 */
func LegalMoves(occ domain.Occupancy, p domain.Player) []domain.Movement {
	var moves []domain.Movement
	seen := make(map[domain.Movement]bool)
	want := domain.StateFor(p)

	emit := func(m domain.Movement) {
		if !seen[m] {
			seen[m] = true
			moves = append(moves, m)
		}
	}

	for _, src := range domain.BoardCells {
		if occ[src] != want {
			continue
		}
		for _, off := range domain.NeighborOffsets {
			nb := src.Add(off, 1)
			if state, ok := occ[nb]; ok && state == domain.Empty {
				emit(domain.Movement{Start: src, End: nb})
			}
		}
		visited := map[domain.HexIdx]bool{src: true}
		enumerateJumps(occ, src, src, visited, func(landing domain.HexIdx) {
			emit(domain.Movement{Start: src, End: landing})
		})
	}
	return moves
}

// enumerateJumps explores every jump chain reachable from "from" (the
// piece's original position is "origin" and is treated as still occupied
// throughout), calling report once per newly reached landing cell, in the
// order first discovered.
//
// For each direction, the first non-empty cell m at distance k is the
// blocker; the jump lands on the cell t at distance 2k in the same
// direction, provided t is valid, empty, and every cell strictly between m
// and t is also empty.
func enumerateJumps(occ domain.Occupancy, origin, from domain.HexIdx, visited map[domain.HexIdx]bool, report func(domain.HexIdx)) {
	for _, off := range domain.NeighborOffsets {
		k := 1
		var blockerDist int
		found := false
		for {
			probe := from.Add(off, k)
			state, ok := occ[probe]
			if !ok {
				break
			}
			if state != domain.Empty {
				blockerDist = k
				found = true
				break
			}
			k++
		}
		if !found {
			continue
		}

		landing := from.Add(off, 2*blockerDist)
		landState, ok := occ[landing]
		if !ok || landState != domain.Empty || landing == origin {
			continue
		}

		clear := true
		for d := blockerDist + 1; d < 2*blockerDist; d++ {
			mid := from.Add(off, d)
			if occ[mid] != domain.Empty {
				clear = false
				break
			}
		}
		if !clear || visited[landing] {
			continue
		}

		visited[landing] = true
		report(landing)
		enumerateJumps(occ, origin, landing, visited, report)
	}
}

/*
 * Apply transfers a piece from move.Start to move.End. The caller must have
 * already validated move against the list LegalMoves produced for the
 * current occupancy and player; Apply itself only checks piece ownership.
 *
 * Parameters:
 *   - occ (domain.Occupancy): mutated in place.
 *   - p (domain.Player): the player making the move.
 *   - move (domain.Movement): the chosen move.
 *
 * Returns:
 *   - error: domain.ErrNotYourPiece if occ[move.Start] isn't p's piece.
 */
func Apply(occ domain.Occupancy, p domain.Player, move domain.Movement) error {
	if occ[move.Start] != domain.StateFor(p) {
		return domain.ErrNotYourPiece
	}
	occ.Apply(move)
	return nil
}

/*
 * Scores reports, for each player, how many of their pieces currently sit
 * in their own goal region (the opponent's starting camp).
 */
func Scores(occ domain.Occupancy) [2]int {
	return [2]int{
		occ.CountIn(domain.P1, domain.GoalRegion(domain.P1)),
		occ.CountIn(domain.P2, domain.GoalRegion(domain.P2)),
	}
}

/*
 * CheckResult evaluates whether the game has ended after turnsElapsed turns:
 * a win if either player has filled their goal region, otherwise MaxTurns
 * once the cap is reached, otherwise no result yet (ok is false).
 */
func CheckResult(occ domain.Occupancy, turnsElapsed uint, maxTurns uint) (domain.GameResult, bool) {
	scores := Scores(occ)
	if scores[domain.P1] == len(domain.GoalRegion(domain.P1)) {
		return domain.Finished(domain.P1, turnsElapsed, scores), true
	}
	if scores[domain.P2] == len(domain.GoalRegion(domain.P2)) {
		return domain.Finished(domain.P2, turnsElapsed, scores), true
	}
	if turnsElapsed >= maxTurns {
		return domain.MaxTurns(turnsElapsed, scores), true
	}
	return domain.GameResult{}, false
}
