package stats

import (
	"errors"
	"testing"

	"github.com/juan10024/sternhalma-server/internal/core/domain"
)

type fakeRepo struct {
	games, turns int64
	err          error
}

func (f *fakeRepo) RecordMatch(string, string, domain.GameResult, []domain.MovementEvent) error {
	return nil
}
func (f *fakeRepo) CountMatches() (int64, error) { return f.games, f.err }
func (f *fakeRepo) SumTurns() (int64, error)     { return f.turns, f.err }

func TestGetGeneralReport(t *testing.T) {
	s := New(&fakeRepo{games: 4, turns: 120})
	report, err := s.GetGeneralReport()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalGames != 4 || report.TotalTurnsSum != 120 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestGetGeneralReportPropagatesError(t *testing.T) {
	s := New(&fakeRepo{err: errors.New("db down")})
	if _, err := s.GetGeneralReport(); err == nil {
		t.Fatal("expected error to propagate")
	}
}
