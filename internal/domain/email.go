package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the welcome email sent on first registration.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// JoinConfirmationEmailData holds data for the email sent after joining an event.
type JoinConfirmationEmailData struct {
	Email      string
	EventTitle string
	EventDate  string
	Location   string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendJoinConfirmation(ctx context.Context, data *JoinConfirmationEmailData) error
}
