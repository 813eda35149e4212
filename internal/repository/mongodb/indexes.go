package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the repositories.
const (
	EventsCollection      = "events"
	UsersCollection       = "users"
	MembershipsCollection = "memberships"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// indexes are the store-level guard that keeps duplicate registrations and
// duplicate joins out even under concurrent identical requests.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	_, err = db.Collection(MembershipsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "event_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create memberships user/event index: %w", err)
	}

	_, err = db.Collection(EventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "event_date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create events date index: %w", err)
	}
	return nil
}
