package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bettertomorrow/internal/delivery/http/helpers"
	"bettertomorrow/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMembershipService implements domain.MembershipService for handler tests.
type fakeMembershipService struct {
	joinEventErr           error
	listMembershipsErr     error
	listMembershipsResult  []*domain.Membership
	listJoinedEventsErr    error
	listJoinedEventsResult []*domain.Event
	lastJoinUserEmail      string
	lastJoinEventID        string
	lastListUserEmail      string
	lastJoinedUserEmail    string
}

func (f *fakeMembershipService) JoinEvent(ctx context.Context, userEmail, eventID string) (*domain.Membership, error) {
	f.lastJoinUserEmail = userEmail
	f.lastJoinEventID = eventID
	if f.joinEventErr != nil {
		return nil, f.joinEventErr
	}
	return &domain.Membership{ID: "m-created", UserEmail: userEmail, EventID: eventID, JoinedAt: time.Now()}, nil
}

func (f *fakeMembershipService) ListMemberships(ctx context.Context, userEmail string) ([]*domain.Membership, error) {
	f.lastListUserEmail = userEmail
	if f.listMembershipsErr != nil {
		return nil, f.listMembershipsErr
	}
	return f.listMembershipsResult, nil
}

func (f *fakeMembershipService) ListJoinedEvents(ctx context.Context, userEmail string) ([]*domain.Event, error) {
	f.lastJoinedUserEmail = userEmail
	if f.listJoinedEventsErr != nil {
		return nil, f.listJoinedEventsErr
	}
	return f.listJoinedEventsResult, nil
}

func TestMembershipController_JoinEvent(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"user_email":"alice@example.com","event_id":"ev-1"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "duplicate join conflict",
			body:           `{"user_email":"alice@example.com","event_id":"ev-1"}`,
			fakeErr:        domain.ErrConflict,
			wantStatus:     http.StatusConflict,
			wantBodySubstr: "already joined",
		},
		{
			name:           "missing user_email",
			body:           `{"event_id":"ev-1"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "user_email is required",
		},
		{
			name:           "missing event_id",
			body:           `{"user_email":"alice@example.com"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "event_id is required",
		},
		{
			name:           "invalid email format",
			body:           `{"user_email":"not-an-email","event_id":"ev-1"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid email format",
		},
		{
			name:           "bad request invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "service error",
			body:           `{"user_email":"alice@example.com","event_id":"ev-1"}`,
			fakeErr:        errors.New("db down"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeMembershipService{joinEventErr: tt.fakeErr}
			ctrl := NewMembershipController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/memberships", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.JoinEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error, "success response must have error nil")
				assert.Equal(t, "alice@example.com", fake.lastJoinUserEmail)
				assert.Equal(t, "ev-1", fake.lastJoinEventID)
			}
			if tt.wantBodySubstr != "" {
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}

func TestMembershipController_ListMemberships(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		fakeErr       error
		wantStatus    int
		wantUserEmail string
	}{
		{"all memberships", "", nil, http.StatusOK, ""},
		{"filtered by user", "?user_email=alice@example.com", nil, http.StatusOK, "alice@example.com"},
		{"service error", "", errors.New("db down"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeMembershipService{
				listMembershipsErr:    tt.fakeErr,
				listMembershipsResult: []*domain.Membership{{ID: "m-1", UserEmail: "alice@example.com", EventID: "ev-1"}},
			}
			ctrl := NewMembershipController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "/memberships"+tt.query, nil)
			rr := httptest.NewRecorder()

			ctrl.ListMemberships(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantUserEmail, fake.lastListUserEmail)
		})
	}

	t.Run("nil result becomes empty array", func(t *testing.T) {
		fake := &fakeMembershipService{}
		ctrl := NewMembershipController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/memberships", nil)
		rr := httptest.NewRecorder()

		ctrl.ListMemberships(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"data":[]`)
	})
}

func TestMembershipController_ListJoinedEvents(t *testing.T) {
	tests := []struct {
		name           string
		userEmail      string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{"success", "alice@example.com", nil, http.StatusOK, ""},
		{"missing userEmail", "", nil, http.StatusBadRequest, "missing userEmail"},
		{"service error", "alice@example.com", errors.New("db down"), http.StatusInternalServerError, "db down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeMembershipService{
				listJoinedEventsErr:    tt.fakeErr,
				listJoinedEventsResult: []*domain.Event{{ID: "ev-1", Title: "Cleanup"}},
			}
			ctrl := NewMembershipController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "/memberships/"+tt.userEmail+"/events", nil)
			req.SetPathValue("userEmail", tt.userEmail)
			rr := httptest.NewRecorder()

			ctrl.ListJoinedEvents(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.userEmail, fake.lastJoinedUserEmail)
			}
			if tt.wantBodySubstr != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBodySubstr)
			}
		})
	}
}
