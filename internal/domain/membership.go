package domain

import (
	"context"
	"time"
)

// Membership records that a user has joined an event. Exactly one document
// exists per (user_email, event_id) pair; the collection carries a unique
// compound index so a racing duplicate insert fails at the store.
// swagger:model Membership
type Membership struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserEmail string    `json:"user_email" bson:"user_email"`
	EventID   string    `json:"event_id" bson:"event_id"`
	JoinedAt  time.Time `json:"joined_at" bson:"joined_at"`
}

// NewMembership returns a new Membership. ID is set by the repository on create.
func NewMembership(userEmail, eventID string, joinedAt time.Time) *Membership {
	return &Membership{
		UserEmail: userEmail,
		EventID:   eventID,
		JoinedAt:  joinedAt,
	}
}

// MembershipRepository defines storage operations for join records.
type MembershipRepository interface {
	// Create inserts the membership. Returns ErrConflict if the store's
	// uniqueness guard rejects a duplicate (user_email, event_id) pair.
	Create(ctx context.Context, membership *Membership) error
	GetByUserAndEvent(ctx context.Context, userEmail, eventID string) (*Membership, error)
	// List returns memberships, filtered by user email when non-empty.
	List(ctx context.Context, userEmail string) ([]*Membership, error)
}

// MembershipService defines joining events and reading join records.
type MembershipService interface {
	// JoinEvent creates a membership. Returns ErrInvalidInput when either
	// field is empty and ErrConflict when the pair already exists.
	JoinEvent(ctx context.Context, userEmail, eventID string) (*Membership, error)
	ListMemberships(ctx context.Context, userEmail string) ([]*Membership, error)
	// ListJoinedEvents returns the events the user has joined, sorted
	// ascending by event date. Memberships whose event no longer exists are
	// dropped from the result.
	ListJoinedEvents(ctx context.Context, userEmail string) ([]*Event, error)
}
