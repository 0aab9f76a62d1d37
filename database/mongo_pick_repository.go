package database

import (
	"context"
	"fmt"
	"time"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPickRepository implements pick storage over MongoDB. The scoring
// engine only ever rewrites the five computed fields; picked_team and is_lock
// belong to the pick-management component upstream.
type MongoPickRepository struct {
	collection *mongo.Collection
}

// NewMongoPickRepository creates a new MongoDB pick repository
func NewMongoPickRepository(db *MongoDB) *MongoPickRepository {
	collection := db.GetCollection("picks")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "game_id", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "game_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "season", Value: 1},
				{Key: "season_type", Value: 1},
				{Key: "week", Value: 1},
			},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create pick indexes: %v", err)
	}

	return &MongoPickRepository{collection: collection}
}

// FindByGame retrieves all picks for a specific game
func (r *MongoPickRepository) FindByGame(ctx context.Context, gameID int) ([]*models.Pick, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"game_id": gameID})
	if err != nil {
		return nil, fmt.Errorf("failed to find picks by game: %w", err)
	}
	defer cursor.Close(ctx)

	var picks []*models.Pick
	if err := cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("failed to decode picks: %w", err)
	}

	return picks, nil
}

// FindByGameIDs retrieves all picks across a set of games
func (r *MongoPickRepository) FindByGameIDs(ctx context.Context, gameIDs []int) ([]*models.Pick, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"game_id": bson.M{"$in": gameIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find picks by games: %w", err)
	}
	defer cursor.Close(ctx)

	var picks []*models.Pick
	if err := cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("failed to decode picks: %w", err)
	}

	return picks, nil
}

// FindByWeek retrieves all picks for a specific (season, week, season type)
func (r *MongoPickRepository) FindByWeek(ctx context.Context, season, week int, seasonType models.SeasonType) ([]*models.Pick, error) {
	filter := bson.M{
		"season":      season,
		"season_type": seasonType,
		"week":        week,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find picks by week: %w", err)
	}
	defer cursor.Close(ctx)

	var picks []*models.Pick
	if err := cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("failed to decode picks: %w", err)
	}

	return picks, nil
}

// UpdateScoring rewrites the five computed scoring fields of one pick. This
// is a single atomic document update keyed by pick id, so concurrent
// recomputations of the same game converge on identical state.
func (r *MongoPickRepository) UpdateScoring(ctx context.Context, id primitive.ObjectID, scoring models.PickScoring) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"solo_pick":    scoring.SoloPick,
			"solo_lock":    scoring.SoloLock,
			"super_bonus":  scoring.SuperBonus,
			"bonus_points": scoring.BonusPoints,
			"pick_points":  scoring.PickPoints,
			"updated_at":   time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update pick scoring: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("pick not found")
	}

	return nil
}

// LeaderboardEntry is one user's season standing from summed pick points
type LeaderboardEntry struct {
	UserID      models.UserID `bson:"_id" json:"user_id"`
	TotalPoints int           `bson:"total_points" json:"total_points"`
	TotalPicks  int           `bson:"total_picks" json:"total_picks"`
}

// GetSeasonLeaderboard sums persisted pick points per user for a season,
// ordered by total points descending
func (r *MongoPickRepository) GetSeasonLeaderboard(ctx context.Context, season int, seasonType models.SeasonType) ([]*LeaderboardEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "season", Value: season},
			{Key: "season_type", Value: seasonType},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user_id"},
			{Key: "total_points", Value: bson.D{{Key: "$sum", Value: "$pick_points"}}},
			{Key: "total_picks", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_points", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*LeaderboardEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}

	return entries, nil
}

// Count returns the total number of picks
func (r *MongoPickRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
