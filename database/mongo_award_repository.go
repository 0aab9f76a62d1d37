package database

import (
	"context"
	"fmt"
	"time"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAwardRepository stores weekly award records. Awards are immutable:
// re-processing a week deletes the old set and inserts a fresh one.
type MongoAwardRepository struct {
	collection *mongo.Collection
}

// NewMongoAwardRepository creates a new MongoDB award repository
func NewMongoAwardRepository(db *MongoDB) *MongoAwardRepository {
	collection := db.GetCollection("awards")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "season", Value: 1},
				{Key: "season_type", Value: 1},
				{Key: "week", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "season", Value: 1},
			},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create award indexes: %v", err)
	}

	return &MongoAwardRepository{collection: collection}
}

// CreateMany inserts a batch of awards
func (r *MongoAwardRepository) CreateMany(ctx context.Context, awards []*models.Award) error {
	if len(awards) == 0 {
		return nil
	}

	docs := make([]interface{}, len(awards))
	for i, award := range awards {
		docs[i] = award
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create awards: %w", err)
	}

	return nil
}

// DeleteByWeek removes all awards for a (season, week, season type) key
func (r *MongoAwardRepository) DeleteByWeek(ctx context.Context, season, week int, seasonType models.SeasonType) error {
	filter := bson.M{
		"season":      season,
		"season_type": seasonType,
		"week":        week,
	}

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete awards by week: %w", err)
	}

	if result.DeletedCount > 0 {
		logging.Debugf("Deleted %d prior awards for season %d week %d (%s)",
			result.DeletedCount, season, week, seasonType)
	}
	return nil
}

// FindByWeek retrieves all awards for a (season, week, season type) key
func (r *MongoAwardRepository) FindByWeek(ctx context.Context, season, week int, seasonType models.SeasonType) ([]*models.Award, error) {
	filter := bson.M{
		"season":      season,
		"season_type": seasonType,
		"week":        week,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find awards by week: %w", err)
	}
	defer cursor.Close(ctx)

	var awards []*models.Award
	if err := cursor.All(ctx, &awards); err != nil {
		return nil, fmt.Errorf("failed to decode awards: %w", err)
	}

	return awards, nil
}

// FindBySeason retrieves all awards for a season, ordered by week
func (r *MongoAwardRepository) FindBySeason(ctx context.Context, season int) ([]*models.Award, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "week", Value: 1},
		{Key: "user_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"season": season}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find awards by season: %w", err)
	}
	defer cursor.Close(ctx)

	var awards []*models.Award
	if err := cursor.All(ctx, &awards); err != nil {
		return nil, fmt.Errorf("failed to decode awards: %w", err)
	}

	return awards, nil
}
