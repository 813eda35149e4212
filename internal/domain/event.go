package domain

import (
	"context"
	"time"
)

// EventTypeAll is the sentinel event type meaning "no type filter".
const EventTypeAll = "all"

// Event represents a community event.
// swagger:model Event
type Event struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	CreatorEmail string    `json:"creator_email" bson:"creator_email"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	EventType    string    `json:"event_type" bson:"event_type"`
	ThumbnailURL string    `json:"thumbnail_url" bson:"thumbnail_url"`
	Location     string    `json:"location" bson:"location"`
	EventDate    time.Time `json:"event_date" bson:"event_date"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// NewEvent returns a new Event owned by creatorEmail. ID is set by the repository on create.
func NewEvent(creatorEmail, title, description, eventType, thumbnailURL, location string, eventDate, createdAt time.Time) *Event {
	return &Event{
		CreatorEmail: creatorEmail,
		Title:        title,
		Description:  description,
		EventType:    eventType,
		ThumbnailURL: thumbnailURL,
		Location:     location,
		EventDate:    eventDate,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// EventFilter narrows event listings. Zero values mean "no filter".
type EventFilter struct {
	CreatorEmail string
	EventType    string
	TitleSearch  string
	// UpcomingAfter, when set, keeps only events whose date is at or after it.
	UpcomingAfter *time.Time
}

// EventUpdate is a sparse update: nil fields are left unchanged, never cleared.
type EventUpdate struct {
	Title        *string
	Description  *string
	EventType    *string
	ThumbnailURL *string
	Location     *string
	EventDate    *time.Time
}

// EventRepository defines the interface for event storage. Listings are
// sorted ascending by event date.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	// ListByIDs returns the events matching the given ids in one batch query.
	// Unknown ids are silently dropped from the result.
	ListByIDs(ctx context.Context, ids []string) ([]*Event, error)
	Update(ctx context.Context, id string, update EventUpdate, updatedAt time.Time) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for creating, browsing, and
// managing events. Mutating operations take the verified principal email and
// enforce the ownership rule: only the creator may update or delete.
type EventService interface {
	CreateEvent(ctx context.Context, principal string, event *Event) error
	ListEvents(ctx context.Context, creatorEmail string) ([]*Event, error)
	ListUpcomingEvents(ctx context.Context, eventType, titleSearch string) ([]*Event, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
	UpdateEvent(ctx context.Context, id, principal string, update EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id, principal string) error
	// ListMyEvents returns the principal's events. If requestedEmail is
	// non-empty it must equal the principal.
	ListMyEvents(ctx context.Context, principal, requestedEmail string) ([]*Event, error)
}
