package models

import "fmt"

// GameStatus represents the current state of a game
type GameStatus string

const (
	GameStatusScheduled  GameStatus = "scheduled"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusCompleted  GameStatus = "completed"
)

// SeasonType distinguishes the three phases of an NFL season
type SeasonType string

const (
	SeasonTypePreseason SeasonType = "preseason"
	SeasonTypeRegular   SeasonType = "regular"
	SeasonTypePlayoffs  SeasonType = "playoffs"
)

// TeamID identifies a team by its abbreviation (e.g. "KC", "DEN")
type TeamID string

// Game represents one scheduled contest. Games are created and mutated by the
// external score ingestion component; the scoring engine only reads them.
type Game struct {
	ID         int        `json:"id" bson:"id"`
	Season     int        `json:"season" bson:"season"`
	SeasonType SeasonType `json:"season_type" bson:"season_type"`
	Week       int        `json:"week" bson:"week"`
	HomeTeam   TeamID     `json:"home_team" bson:"home_team"`
	AwayTeam   TeamID     `json:"away_team" bson:"away_team"`
	HomeScore  *int       `json:"home_score" bson:"home_score"`
	AwayScore  *int       `json:"away_score" bson:"away_score"`
	Status     GameStatus `json:"status" bson:"status"`
}

// IsCompleted returns true if the game is finished
func (g *Game) IsCompleted() bool {
	return g.Status == GameStatusCompleted
}

// IsInProgress returns true if the game is currently being played
func (g *Game) IsInProgress() bool {
	return g.Status == GameStatusInProgress
}

// HasStarted returns true once kickoff has happened and the pick set for the
// game can no longer change
func (g *Game) HasStarted() bool {
	return g.Status != GameStatusScheduled
}

// HasFinalScore returns true when the game is completed with both scores known
func (g *Game) HasFinalScore() bool {
	return g.IsCompleted() && g.HomeScore != nil && g.AwayScore != nil
}

// Winner returns the winning team and true, or ("", false) when there is no
// winner: game not completed, a score missing, or a tie. A tie voids the game
// for scoring purposes, so "no winner" is an expected outcome, not an error.
func (g *Game) Winner() (TeamID, bool) {
	if !g.HasFinalScore() {
		return "", false
	}
	if *g.HomeScore > *g.AwayScore {
		return g.HomeTeam, true
	}
	if *g.AwayScore > *g.HomeScore {
		return g.AwayTeam, true
	}
	return "", false // tie
}

// Description returns a short matchup string like "DEN @ KC"
func (g *Game) Description() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam)
}
