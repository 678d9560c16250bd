/*
 * file: stats.go
 * package: stats
 * description:
 *     Aggregated match statistics: a StatsService/StatsRepository shape
 *     trimmed down to the single /api/stats/general report this game
 *     tracks.
 */

package stats

import "github.com/juan10024/sternhalma-server/internal/core/ports"

/*
 * Service provides read-only access to aggregated match history.
 *
 * Fields:
 *   - repo (ports.MatchRepository): Repository used to access match data.
 */
type Service struct {
	repo ports.MatchRepository
}

// New creates a Service backed by repo.
func New(repo ports.MatchRepository) *Service {
	return &Service{repo: repo}
}

/*
 * GeneralReport is the response DTO for /api/stats/general.
 *
 * Fields:
 *   - TotalGames (int64): Total number of recorded matches.
 *   - TotalTurnsSum (int64): Sum of total_turns across all recorded matches.
 */
type GeneralReport struct {
	TotalGames    int64 `json:"total_games"`
	TotalTurnsSum int64 `json:"total_turns_sum"`
}

/*
 * GetGeneralReport aggregates the match-count and turn-sum figures.
 *
 * Returns:
 *   - *GeneralReport: the aggregated counts.
 *   - error: propagated from the underlying repository.
 */
func (s *Service) GetGeneralReport() (*GeneralReport, error) {
	totalGames, err := s.repo.CountMatches()
	if err != nil {
		return nil, err
	}
	totalTurns, err := s.repo.SumTurns()
	if err != nil {
		return nil, err
	}
	return &GeneralReport{TotalGames: totalGames, TotalTurnsSum: totalTurns}, nil
}
