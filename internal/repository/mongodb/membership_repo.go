package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bettertomorrow/internal/domain"
)

type membershipDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail string             `bson:"user_email"`
	EventID   string             `bson:"event_id"`
	JoinedAt  time.Time          `bson:"joined_at"`
}

func (d *membershipDoc) toDomain() *domain.Membership {
	return &domain.Membership{
		ID:        d.ID.Hex(),
		UserEmail: d.UserEmail,
		EventID:   d.EventID,
		JoinedAt:  d.JoinedAt,
	}
}

type membershipRepository struct {
	col *mongo.Collection
}

// NewMembershipRepository returns a MongoDB-backed MembershipRepository using the given collection.
func NewMembershipRepository(col *mongo.Collection) domain.MembershipRepository {
	return &membershipRepository{col: col}
}

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	doc := membershipDoc{
		UserEmail: m.UserEmail,
		EventID:   m.EventID,
		JoinedAt:  m.JoinedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		// The unique (user_email, event_id) index closes the check-then-insert
		// race: a concurrent duplicate surfaces here as a conflict.
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid.Hex()
	}
	return nil
}

func (r *membershipRepository) GetByUserAndEvent(ctx context.Context, userEmail, eventID string) (*domain.Membership, error) {
	var doc membershipDoc
	err := r.col.FindOne(ctx, bson.M{"user_email": userEmail, "event_id": eventID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *membershipRepository) List(ctx context.Context, userEmail string) ([]*domain.Membership, error) {
	filter := bson.M{}
	if userEmail != "" {
		filter["user_email"] = userEmail
	}
	opts := options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	memberships := make([]*domain.Membership, 0)
	for cur.Next(ctx) {
		var doc membershipDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		memberships = append(memberships, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return memberships, nil
}
