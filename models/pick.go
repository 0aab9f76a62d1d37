package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserID identifies a user
type UserID int

// Pick represents one user's choice of winner for one game.
//
// PickedTeam and IsLock are owned by the pick-management component and are
// never rewritten here. The five computed fields (SoloPick through PickPoints)
// are owned by the scoring engine and rewritten on every recomputation.
// Season and week are denormalized from the game for multi-year storage and
// leaderboard queries.
type Pick struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     UserID             `bson:"user_id" json:"user_id"`
	GameID     int                `bson:"game_id" json:"game_id"`
	Season     int                `bson:"season" json:"season"`
	SeasonType SeasonType         `bson:"season_type" json:"season_type"`
	Week       int                `bson:"week" json:"week"`
	PickedTeam TeamID             `bson:"picked_team" json:"picked_team"`
	IsLock     bool               `bson:"is_lock" json:"is_lock"`

	// Computed by the scoring engine
	SoloPick    bool `bson:"solo_pick" json:"solo_pick"`
	SoloLock    bool `bson:"solo_lock" json:"solo_lock"`
	SuperBonus  bool `bson:"super_bonus" json:"super_bonus"`
	BonusPoints int  `bson:"bonus_points" json:"bonus_points"`
	PickPoints  int  `bson:"pick_points" json:"pick_points"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PickScoring holds the five engine-owned computed fields for one pick
type PickScoring struct {
	SoloPick    bool `bson:"solo_pick" json:"solo_pick"`
	SoloLock    bool `bson:"solo_lock" json:"solo_lock"`
	SuperBonus  bool `bson:"super_bonus" json:"super_bonus"`
	BonusPoints int  `bson:"bonus_points" json:"bonus_points"`
	PickPoints  int  `bson:"pick_points" json:"pick_points"`
}

// Scoring returns the pick's current computed fields
func (p *Pick) Scoring() PickScoring {
	return PickScoring{
		SoloPick:    p.SoloPick,
		SoloLock:    p.SoloLock,
		SuperBonus:  p.SuperBonus,
		BonusPoints: p.BonusPoints,
		PickPoints:  p.PickPoints,
	}
}

// ApplyScoring overwrites the computed fields with a fresh result
func (p *Pick) ApplyScoring(s PickScoring) {
	p.SoloPick = s.SoloPick
	p.SoloLock = s.SoloLock
	p.SuperBonus = s.SuperBonus
	p.BonusPoints = s.BonusPoints
	p.PickPoints = s.PickPoints
	p.UpdatedAt = time.Now()
}
