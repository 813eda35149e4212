package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bettertomorrow/internal/domain"
)

type membershipService struct {
	membershipRepo domain.MembershipRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewMembershipService creates a MembershipService. emailService may be nil;
// join confirmations are best-effort and never fail the request.
func NewMembershipService(
	membershipRepo domain.MembershipRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.MembershipService {
	return &membershipService{
		membershipRepo: membershipRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *membershipService) JoinEvent(ctx context.Context, userEmail, eventID string) (*domain.Membership, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	userEmail = strings.TrimSpace(strings.ToLower(userEmail))
	eventID = strings.TrimSpace(eventID)
	if userEmail == "" || eventID == "" {
		return nil, fmt.Errorf("%w: user email and event id are required", domain.ErrInvalidInput)
	}

	// Reject the common duplicate path with a friendly conflict. The unique
	// index on (user_email, event_id) catches the racing remainder.
	if _, err := s.membershipRepo.GetByUserAndEvent(ctx, userEmail, eventID); err == nil {
		return nil, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get membership: %w", err)
	}

	membership := domain.NewMembership(userEmail, eventID, time.Now())
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("create membership: %w", err)
	}

	s.sendJoinConfirmation(ctx, userEmail, eventID)
	return membership, nil
}

// sendJoinConfirmation emails the joining user about the event. Failures are
// logged and swallowed; the membership is already recorded.
func (s *membershipService) sendJoinConfirmation(ctx context.Context, userEmail, eventID string) {
	if s.emailService == nil {
		return
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		log.Printf("[EMAIL] Skipping join confirmation for %s: %v", userEmail, err)
		return
	}
	data := &domain.JoinConfirmationEmailData{
		Email:      userEmail,
		EventTitle: event.Title,
		EventDate:  event.EventDate.Format("Monday, 2 January 2006 15:04"),
		Location:   event.Location,
	}
	if err := s.emailService.SendJoinConfirmation(ctx, data); err != nil {
		log.Printf("[EMAIL] Failed to send join confirmation to %s: %v", userEmail, err)
	}
}

func (s *membershipService) ListMemberships(ctx context.Context, userEmail string) ([]*domain.Membership, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	memberships, err := s.membershipRepo.List(ctx, strings.TrimSpace(strings.ToLower(userEmail)))
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return memberships, nil
}

func (s *membershipService) ListJoinedEvents(ctx context.Context, userEmail string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	memberships, err := s.membershipRepo.List(ctx, strings.TrimSpace(strings.ToLower(userEmail)))
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	if len(memberships) == 0 {
		// No memberships means no event lookup at all.
		return []*domain.Event{}, nil
	}

	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.EventID)
	}
	// One batch query; ids whose event no longer exists simply produce
	// fewer documents and are dropped from the result.
	events, err := s.eventRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list joined events: %w", err)
	}
	return events, nil
}
