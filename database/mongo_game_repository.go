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

// MongoGameRepository provides read access to the games collection. Games are
// written by the external score ingestion component; the scoring engine never
// mutates them.
type MongoGameRepository struct {
	collection *mongo.Collection
}

// NewMongoGameRepository creates a new MongoDB game repository
func NewMongoGameRepository(db *MongoDB) *MongoGameRepository {
	collection := db.GetCollection("games")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
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
		logging.Warnf("Could not create game indexes: %v", err)
	}

	return &MongoGameRepository{collection: collection}
}

// FindByID retrieves a game by its numeric ID, returning (nil, nil) when it
// does not exist
func (r *MongoGameRepository) FindByID(ctx context.Context, id int) (*models.Game, error) {
	var game models.Game
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&game)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find game by ID: %w", err)
	}
	return &game, nil
}

// FindByWeek retrieves all games for a specific (season, week, season type)
func (r *MongoGameRepository) FindByWeek(ctx context.Context, season, week int, seasonType models.SeasonType) ([]*models.Game, error) {
	filter := bson.M{
		"season":      season,
		"season_type": seasonType,
		"week":        week,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find games by week: %w", err)
	}
	defer cursor.Close(ctx)

	var games []*models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}

	return games, nil
}

// FindBySeason retrieves all games for a season, ordered by week
func (r *MongoGameRepository) FindBySeason(ctx context.Context, season int) ([]*models.Game, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "week", Value: 1},
		{Key: "id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"season": season}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find games by season: %w", err)
	}
	defer cursor.Close(ctx)

	var games []*models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}

	return games, nil
}

// Count returns the total number of games
func (r *MongoGameRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
