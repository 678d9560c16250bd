/*
 * file: game.go
 * package: domain
 * description:
 *     GORM-backed persistence models for the optional match-history sink.
 *     These are write-once records of a finished game; they never back live
 *     game state, which lives only in Occupancy/TurnState inside the hub.
 */

package domain

import "gorm.io/gorm"

// MatchRecord is a single finished Sternhalma game, persisted after the hub
// reaches a GameResult. There is no persistent player identity across
// matches, so the winner is recorded as a bare seat label (P1/P2/empty),
// not a foreign key.
type MatchRecord struct {
	gorm.Model
	SessionP1  string `gorm:"size:36;not null" json:"sessionP1"`
	SessionP2  string `gorm:"size:36;not null" json:"sessionP2"`
	Winner     string `gorm:"size:10" json:"winner"`
	ResultKind string `gorm:"size:20;not null" json:"resultKind"`
	TotalTurns uint   `gorm:"not null" json:"totalTurns"`
	ScoreP1    int    `gorm:"not null" json:"scoreP1"`
	ScoreP2    int    `gorm:"not null" json:"scoreP2"`
}

// MatchMoveRecord is a single applied movement within a MatchRecord, kept
// for replay/audit purposes.
type MatchMoveRecord struct {
	gorm.Model
	MatchID uint
	Match   MatchRecord `gorm:"foreignKey:MatchID"`
	Seq     int         `gorm:"not null"`
	Player  string      `gorm:"size:10;not null"`
	StartQ  int         `gorm:"not null"`
	StartR  int         `gorm:"not null"`
	EndQ    int         `gorm:"not null"`
	EndR    int         `gorm:"not null"`
}
