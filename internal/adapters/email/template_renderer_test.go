package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bettertomorrow/internal/domain"
)

func TestTemplateRenderer_Welcome(t *testing.T) {
	r := NewTemplateRenderer()

	subject, html, text, err := r.Render("welcome", &domain.WelcomeEmailData{
		Email: "a@x.com",
		Name:  "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Better Tomorrow", subject)
	assert.Contains(t, html, "Ana")
	assert.Contains(t, html, "a@x.com")
	assert.Contains(t, text, "a@x.com")
}

func TestTemplateRenderer_JoinConfirmation(t *testing.T) {
	r := NewTemplateRenderer()

	subject, html, text, err := r.Render("join_confirmation", &domain.JoinConfirmationEmailData{
		Email:      "a@x.com",
		EventTitle: "Beach Cleanup",
		EventDate:  "Saturday, 4 April 2026 09:00",
		Location:   "North Pier",
	})
	require.NoError(t, err)
	assert.Equal(t, "You joined Beach Cleanup", subject)
	assert.Contains(t, html, "North Pier")
	assert.Contains(t, text, "Beach Cleanup")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r := NewTemplateRenderer()

	_, _, _, err := r.Render("nope", nil)
	require.Error(t, err)
}
