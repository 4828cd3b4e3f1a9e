package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MatchPending  = "pending"
	MatchFinished = "finished"
)

// MatchResult is the recorded final score for a match, written either by the
// admin settle endpoint or by the results-feed poller. Settlement refuses to
// grade legs for a match that has no finished row here.
type MatchResult struct {
	gorm.Model

	MatchID   string `gorm:"uniqueIndex;size:64" json:"match_id"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Status    string `gorm:"size:16;default:pending;index" json:"status"`

	MarketLines datatypes.JSON `gorm:"type:jsonb" json:"market_lines,omitempty"`
}

func (m *MatchResult) Finished() bool {
	return m.Status == MatchFinished
}
