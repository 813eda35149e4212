package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"bettertomorrow/internal/domain"
)

type mockUserRepository struct {
	byEmail     map[string]*domain.User
	created     []*domain.User
	createErr   error
	raceWinner  *domain.User
	credentials map[string][2]string
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		// Simulate a concurrent identical insert winning: the unique index
		// rejects ours and the winner's record becomes visible.
		if m.raceWinner != nil {
			if m.byEmail == nil {
				m.byEmail = map[string]*domain.User{}
			}
			m.byEmail[m.raceWinner.Email] = m.raceWinner
		}
		return m.createErr
	}
	user.ID = "generated-id"
	m.created = append(m.created, user)
	if m.byEmail == nil {
		m.byEmail = map[string]*domain.User{}
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range m.byEmail {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) SetCredentials(ctx context.Context, email, passwordHash, salt string, updatedAt time.Time) error {
	if _, ok := m.byEmail[email]; !ok {
		return domain.ErrUserNotFound
	}
	if m.credentials == nil {
		m.credentials = map[string][2]string{}
	}
	m.credentials[email] = [2]string{passwordHash, salt}
	return nil
}

func TestUserService_Register_NewUser(t *testing.T) {
	repo := &mockUserRepository{}
	svc := NewUserService(repo, nil, time.Second)

	user, created, err := svc.Register(context.Background(), &domain.User{Email: " A@X.com ", Name: "Ana"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected created=true for a new email")
	}
	if user.Email != "a@x.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.created))
	}
}

func TestUserService_Register_RepeatIsIdempotent(t *testing.T) {
	repo := &mockUserRepository{}
	svc := NewUserService(repo, nil, time.Second)

	first, created, err := svc.Register(context.Background(), &domain.User{Email: "a@x.com", Name: "Ana"})
	if err != nil || !created {
		t.Fatalf("first registration failed: created=%v err=%v", created, err)
	}

	second, created, err := svc.Register(context.Background(), &domain.User{Email: "a@x.com", Name: "Someone Else"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected created=false for a repeat registration")
	}
	if second.ID != first.ID || second.Name != "Ana" {
		t.Fatalf("expected the existing record untouched, got %+v", second)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected exactly one insert, got %d", len(repo.created))
	}
}

func TestUserService_Register_InvalidEmail(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, nil, time.Second)

	_, _, err := svc.Register(context.Background(), &domain.User{Email: "not-an-email"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_Register_DuplicateInsertRace(t *testing.T) {
	repo := &mockUserRepository{
		createErr:  domain.ErrDuplicateEmail,
		raceWinner: &domain.User{ID: "u1", Email: "a@x.com", Name: "Ana"},
	}
	svc := NewUserService(repo, nil, time.Second)

	user, created, err := svc.Register(context.Background(), &domain.User{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected created=false after duplicate-key insert")
	}
	if user.ID != "u1" {
		t.Fatalf("expected the winning record, got %+v", user)
	}
}
