package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/tco/internal/domain/models"
	"github.com/mamadbah2/tco/internal/repository"
)

// MongoDBRepository implements repository.ScenarioRepository for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	r := &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "tco_scenarios",
	}

	_, err = r.collection().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario indexes: %w", err)
	}

	return r, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// CreateScenario inserts a scenario document.
func (r *MongoDBRepository) CreateScenario(ctx context.Context, scenario models.Scenario) error {
	if _, err := r.collection().InsertOne(ctx, scenario); err != nil {
		return fmt.Errorf("failed to insert scenario: %w", err)
	}
	return nil
}

// GetScenario loads a scenario by ID.
func (r *MongoDBRepository) GetScenario(ctx context.Context, id string) (models.Scenario, error) {
	var scenario models.Scenario
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&scenario)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Scenario{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Scenario{}, fmt.Errorf("failed to load scenario %s: %w", id, err)
	}
	return scenario, nil
}

// ListScenarios returns one page ordered by updated_at descending.
func (r *MongoDBRepository) ListScenarios(ctx context.Context, filter models.ScenarioFilter) ([]models.Scenario, int64, error) {
	query := bson.M{}
	if filter.Search != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
	}

	total, err := r.collection().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count scenarios: %w", err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(filter.Offset())).
		SetLimit(int64(filter.PerPage))

	cursor, err := r.collection().Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.Scenario{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("failed to decode scenarios: %w", err)
	}
	return items, total, nil
}

// UpdateScenario replaces the stored document.
func (r *MongoDBRepository) UpdateScenario(ctx context.Context, scenario models.Scenario) error {
	res, err := r.collection().ReplaceOne(ctx, bson.M{"_id": scenario.ID}, scenario)
	if err != nil {
		return fmt.Errorf("failed to update scenario %s: %w", scenario.ID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteScenario removes the stored document.
func (r *MongoDBRepository) DeleteScenario(ctx context.Context, id string) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ScenarioStats aggregates monthly costs with a $group stage.
func (r *MongoDBRepository) ScenarioStats(ctx context.Context) (models.ScenarioStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_scenarios", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avg_monthly_cost", Value: bson.D{{Key: "$avg", Value: "$monthly_cost"}}},
			{Key: "min_monthly_cost", Value: bson.D{{Key: "$min", Value: "$monthly_cost"}}},
			{Key: "max_monthly_cost", Value: bson.D{{Key: "$max", Value: "$monthly_cost"}}},
		}}},
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return models.ScenarioStats{}, fmt.Errorf("failed to aggregate scenarios: %w", err)
	}
	defer cursor.Close(ctx)

	var stats models.ScenarioStats
	if cursor.Next(ctx) {
		if err := cursor.Decode(&stats); err != nil {
			return models.ScenarioStats{}, fmt.Errorf("failed to decode scenario stats: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return models.ScenarioStats{}, fmt.Errorf("failed to read scenario stats: %w", err)
	}
	return stats, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
