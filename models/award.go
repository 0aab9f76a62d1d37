package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AwardType represents a weekly distinction
type AwardType string

const (
	AwardTopScorer    AwardType = "top_scorer"
	AwardLowestScorer AwardType = "lowest_scorer"
	AwardPerfectWeek  AwardType = "perfect_week"
	AwardColdWeek     AwardType = "cold_week"
)

// Award is a derived record of a weekly distinction. Awards are created only
// by the weekly awards aggregator; re-processing a week replaces the full set
// for that (week, season, season_type), so individual rows are never updated.
type Award struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     UserID             `bson:"user_id" json:"user_id"`
	Season     int                `bson:"season" json:"season"`
	SeasonType SeasonType         `bson:"season_type" json:"season_type"`
	Week       int                `bson:"week" json:"week"`
	AwardType  AwardType          `bson:"award_type" json:"award_type"`
	Points     int                `bson:"points" json:"points"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
