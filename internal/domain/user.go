package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// User represents a registered user. Email is the natural key; at most one
// record exists per email. PasswordHash and Salt are empty for profile-only
// users registered without local credentials.
// swagger:model User
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	PhotoURL     string    `json:"photo_url" bson:"photo_url"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	Salt         string    `json:"-" bson:"salt,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// NewUser returns a new User with the given profile fields. ID is set by the repository on create.
func NewUser(email, name, photoURL string, createdAt time.Time) *User {
	return &User{
		Email:     email,
		Name:      name,
		PhotoURL:  photoURL,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues bearer tokens (e.g. JWT) for an authenticated principal.
type TokenIssuer interface {
	Issue(email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the principal email.
type TokenVerifier interface {
	Verify(token string) (email string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	SetCredentials(ctx context.Context, email, passwordHash, salt string, updatedAt time.Time) error
}

// UserService defines registration and listing of user profiles.
type UserService interface {
	// Register creates the user unless one with the same email exists.
	// Returns created=false (and the existing record untouched) on a repeat
	// registration; a repeat is informational, not an error.
	Register(ctx context.Context, user *User) (registered *User, created bool, err error)
	ListUsers(ctx context.Context) ([]*User, error)
}

// AuthService handles local credentials and token issuance. The rest of the
// system depends only on TokenVerifier for identity.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}
