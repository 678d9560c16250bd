/*
 * file: repository.go
 * package: repository
 * description:
 *     Provides the concrete GORM implementation of the MatchRepository port.
 *     This adapter translates finished-game domain events into a single
 *     append-only row plus its move log, decoupling the hub from storage
 *     details. It is wired as a best-effort sink: a failed write is logged
 *     and swallowed, never propagated back into the game loop.
 */

package repository

import (
	"github.com/juan10024/sternhalma-server/internal/core/domain"

	"gorm.io/gorm"
)

/*
 * GormMatchRepository is the GORM implementation of the MatchRepository port.
 *
 * Responsibilities:
 *   - Persist one MatchRecord per finished game.
 *   - Persist the ordered MatchMoveRecord log backing it.
 *   - Serve the two aggregate counts the stats service reports.
 */
type GormMatchRepository struct {
	db *gorm.DB
}

/*
 * NewGormMatchRepository constructs a new GormMatchRepository instance.
 *
 * Parameters:
 *   - db (*gorm.DB): A GORM database connection instance.
 *
 * Returns:
 *   - *GormMatchRepository: A repository instance bound to the database.
 */
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

/*
 * AutoMigrate creates or updates the match-history tables.
 *
 * Returns:
 *   - error: An error if migration fails.
 */
func (r *GormMatchRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.MatchRecord{}, &domain.MatchMoveRecord{})
}

/*
 * RecordMatch persists one finished game and its move log in a single
 * transaction.
 *
 * Parameters:
 *   - sessionP1, sessionP2 (string): canonical UUID text of each session.
 *   - result (domain.GameResult): the terminal outcome.
 *   - moves ([]domain.MovementEvent): every movement applied, in order.
 *
 * Returns:
 *   - error: An error if the transaction fails, otherwise nil.
 */
func (r *GormMatchRepository) RecordMatch(sessionP1, sessionP2 string, result domain.GameResult, moves []domain.MovementEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		record := domain.MatchRecord{
			SessionP1:  sessionP1,
			SessionP2:  sessionP2,
			Winner:     winnerLabel(result),
			ResultKind: resultKindLabel(result.Kind),
			TotalTurns: result.TotalTurns,
			ScoreP1:    result.Scores[domain.P1],
			ScoreP2:    result.Scores[domain.P2],
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		entries := make([]domain.MatchMoveRecord, len(moves))
		for i, mv := range moves {
			entries[i] = domain.MatchMoveRecord{
				MatchID: record.ID,
				Seq:     i,
				Player:  mv.Player.String(),
				StartQ:  mv.Movement.Start.Q,
				StartR:  mv.Movement.Start.R,
				EndQ:    mv.Movement.End.Q,
				EndR:    mv.Movement.End.R,
			}
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

// winnerLabel renders the seat that won, or "" for a MaxTurns draw where
// GameResult.Winner carries no meaning.
func winnerLabel(result domain.GameResult) string {
	if result.Kind == domain.ResultMaxTurns {
		return ""
	}
	return result.Winner.String()
}

func resultKindLabel(k domain.ResultKind) string {
	switch k {
	case domain.ResultFinished:
		return "finished"
	case domain.ResultMaxTurns:
		return "max_turns"
	case domain.ResultForfeit:
		return "forfeit"
	default:
		return "unknown"
	}
}

/*
 * CountMatches returns the total number of recorded matches.
 *
 * Returns:
 *   - int64: The total number of matches.
 *   - error: An error if the query fails.
 */
func (r *GormMatchRepository) CountMatches() (int64, error) {
	var count int64
	err := r.db.Model(&domain.MatchRecord{}).Count(&count).Error
	return count, err
}

/*
 * SumTurns returns the sum of TotalTurns across every recorded match.
 *
 * Returns:
 *   - int64: The summed turn count.
 *   - error: An error if the query fails.
 */
func (r *GormMatchRepository) SumTurns() (int64, error) {
	var sum int64
	err := r.db.Model(&domain.MatchRecord{}).Select("COALESCE(SUM(total_turns), 0)").Row().Scan(&sum)
	return sum, err
}

// NullMatchRepository is the no-database fallback (DB_HOST unset, or the
// connection or migration failed): it drops every
// write, and reports zero aggregates. The hub and stats service never need
// to know which implementation they're holding.
type NullMatchRepository struct{}

func (NullMatchRepository) RecordMatch(string, string, domain.GameResult, []domain.MovementEvent) error {
	return nil
}

func (NullMatchRepository) CountMatches() (int64, error) { return 0, nil }
func (NullMatchRepository) SumTurns() (int64, error)     { return 0, nil }
