package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bettertomorrow/internal/domain"
)

// eventDoc is the stored shape of an event. The repository maps between the
// ObjectID _id and the domain's opaque string id.
type eventDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CreatorEmail string             `bson:"creator_email"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	EventType    string             `bson:"event_type"`
	ThumbnailURL string             `bson:"thumbnail_url"`
	Location     string             `bson:"location"`
	EventDate    time.Time          `bson:"event_date"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *eventDoc) toDomain() *domain.Event {
	return &domain.Event{
		ID:           d.ID.Hex(),
		CreatorEmail: d.CreatorEmail,
		Title:        d.Title,
		Description:  d.Description,
		EventType:    d.EventType,
		ThumbnailURL: d.ThumbnailURL,
		Location:     d.Location,
		EventDate:    d.EventDate,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type eventRepository struct {
	col *mongo.Collection
}

// NewEventRepository returns a MongoDB-backed EventRepository using the given collection.
func NewEventRepository(col *mongo.Collection) domain.EventRepository {
	return &eventRepository{col: col}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	doc := eventDoc{
		CreatorEmail: e.CreatorEmail,
		Title:        e.Title,
		Description:  e.Description,
		EventType:    e.EventType,
		ThumbnailURL: e.ThumbnailURL,
		Location:     e.Location,
		EventDate:    e.EventDate,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid.Hex()
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never match a stored document.
		return nil, domain.ErrNotFound
	}
	var doc eventDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "event_date", Value: 1}})
	cur, err := r.col.Find(ctx, buildEventFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	return decodeEvents(ctx, cur)
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Event, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*domain.Event{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "event_date", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, err
	}
	return decodeEvents(ctx, cur)
}

func (r *eventRepository) Update(ctx context.Context, id string, update domain.EventUpdate, updatedAt time.Time) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc eventDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, buildEventUpdate(update, updatedAt), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// buildEventFilter translates an EventFilter into a Mongo filter document.
// The title search is a case-insensitive substring match; the needle is
// quoted so regex metacharacters in user input match literally.
func buildEventFilter(f domain.EventFilter) bson.M {
	filter := bson.M{}
	if f.CreatorEmail != "" {
		filter["creator_email"] = f.CreatorEmail
	}
	if f.EventType != "" {
		filter["event_type"] = f.EventType
	}
	if f.TitleSearch != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(f.TitleSearch), "$options": "i"}
	}
	if f.UpcomingAfter != nil {
		filter["event_date"] = bson.M{"$gte": *f.UpcomingAfter}
	}
	return filter
}

// buildEventUpdate translates a sparse EventUpdate into a $set document.
// Only fields present in the update are written; updated_at is always set.
func buildEventUpdate(u domain.EventUpdate, updatedAt time.Time) bson.M {
	set := bson.M{"updated_at": updatedAt}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.EventType != nil {
		set["event_type"] = *u.EventType
	}
	if u.ThumbnailURL != nil {
		set["thumbnail_url"] = *u.ThumbnailURL
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.EventDate != nil {
		set["event_date"] = *u.EventDate
	}
	return bson.M{"$set": set}
}

func decodeEvents(ctx context.Context, cur *mongo.Cursor) ([]*domain.Event, error) {
	defer cur.Close(ctx)
	events := make([]*domain.Event, 0)
	for cur.Next(ctx) {
		var doc eventDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		events = append(events, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
