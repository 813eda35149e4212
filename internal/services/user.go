package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"bettertomorrow/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewUserService creates a UserService. emailService may be nil; the welcome
// email is best-effort.
func NewUserService(userRepo domain.UserRepository, emailService domain.EmailService, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user.Email = strings.TrimSpace(strings.ToLower(user.Email))
	if !emailRegexp.MatchString(user.Email) {
		return nil, false, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	user.Name = strings.TrimSpace(user.Name)

	// Registration is idempotent by email: a repeat returns the existing
	// record untouched.
	existing, err := s.userRepo.GetByEmail(ctx, user.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// Lost a race against an identical registration; the unique
			// email index kept the collection to one record.
			existing, getErr := s.userRepo.GetByEmail(ctx, user.Email)
			if getErr != nil {
				return nil, false, fmt.Errorf("get user after duplicate insert: %w", getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeEmailData{Email: user.Email, Name: user.Name}
		if err := s.emailService.SendWelcome(ctx, data); err != nil {
			log.Printf("[EMAIL] Failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return user, true, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
