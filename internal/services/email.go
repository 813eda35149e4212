package services

import (
	"context"
	"fmt"
	"log"

	"bettertomorrow/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendWelcome sends the first-registration welcome email using the "welcome" template.
func (s *emailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("render welcome template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	log.Printf("[EMAIL] Welcome email sent to %s", data.Email)
	return nil
}

// SendJoinConfirmation sends the joined-an-event email using the "join_confirmation" template.
func (s *emailService) SendJoinConfirmation(ctx context.Context, data *domain.JoinConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("join confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("join_confirmation", data)
	if err != nil {
		return fmt.Errorf("render join_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send join confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Join confirmation sent to %s", data.Email)
	return nil
}
