package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the services.
const (
	UsersCollection           = "users"
	MissionsCollection        = "missions"
	SurveysCollection         = "surveys"
	SurveyResponsesCollection = "survey_responses"
	TeamNewsCollection        = "team_news"
	PlayerNewsCollection      = "player_news"
)

// extractDBName parses the database name from the URI, defaulting to "fanhub"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "fanhub"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "fanhub"
}

// Connect establishes a connection to MongoDB using the provided URI and
// ensures the indexes the services rely on. The returned client is owned by
// the caller and must be disconnected at shutdown.
func Connect(uri string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	database := client.Database(dbName)
	if err := ensureIndexes(ctx, database); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return client, database, nil
}

// ensureIndexes creates the unique keys backing the dedup invariants: one
// user per telegram id, one team post per (source, post_id), one player post
// per (player_id, post_id).
func ensureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := database.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "telegram_id", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = database.Collection(TeamNewsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "source", Value: 1}, {Key: "post_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = database.Collection(PlayerNewsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "player_id", Value: 1}, {Key: "post_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = database.Collection(SurveysCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "active", Value: 1}, {Key: "requirements.min_level", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = database.Collection(TeamNewsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	return err
}

// Disconnect closes the MongoDB connection, logging rather than returning
// the error since it runs on the shutdown path.
func Disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
	}
}
