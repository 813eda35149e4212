package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bettertomorrow/internal/delivery/http/helpers"
	"bettertomorrow/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	registerErr     error
	registerCreated bool
	registerResult  *domain.User
	listUsersErr    error
	listUsersResult []*domain.User
	lastRegistered  *domain.User
}

func (f *fakeUserService) Register(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	f.lastRegistered = user
	if f.registerErr != nil {
		return nil, false, f.registerErr
	}
	if f.registerResult != nil {
		return f.registerResult, f.registerCreated, nil
	}
	user.ID = "u-created"
	return user, f.registerCreated, nil
}

func (f *fakeUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if f.listUsersErr != nil {
		return nil, f.listUsersErr
	}
	return f.listUsersResult, nil
}

func TestUserController_RegisterUser(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fake           *fakeUserService
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "new registration returns 201",
			body:       `{"email":"alice@example.com","name":"Alice","photo_url":"https://img.example/a.png"}`,
			fake:       &fakeUserService{registerCreated: true},
			wantStatus: http.StatusCreated,
		},
		{
			name: "repeat registration returns 200 with existing record",
			body: `{"email":"alice@example.com","name":"Someone Else"}`,
			fake: &fakeUserService{
				registerCreated: false,
				registerResult:  &domain.User{ID: "u-1", Email: "alice@example.com", Name: "Alice"},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:           "missing email",
			body:           `{"name":"Alice"}`,
			fake:           &fakeUserService{},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "email is required",
		},
		{
			name:           "invalid email format",
			body:           `{"email":"nope","name":"Alice"}`,
			fake:           &fakeUserService{},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid email format",
		},
		{
			name:           "service error",
			body:           `{"email":"alice@example.com","name":"Alice"}`,
			fake:           &fakeUserService{registerErr: errors.New("db down")},
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewUserController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.RegisterUser(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusOK || tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error, "success response must have error nil")
				require.NotNil(t, envelope.Data)
			}
			if tt.wantBodySubstr != "" {
				require.NotNil(t, envelope.Error, "error response must have error set")
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}

	t.Run("existing name wins on repeat registration", func(t *testing.T) {
		fake := &fakeUserService{
			registerCreated: false,
			registerResult:  &domain.User{ID: "u-1", Email: "alice@example.com", Name: "Alice"},
		}
		ctrl := NewUserController(testLogger, fake)
		body := `{"email":"alice@example.com","name":"Imposter"}`
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		ctrl.RegisterUser(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope helpers.APIResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		dataBytes, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var user domain.User
		require.NoError(t, json.Unmarshal(dataBytes, &user))
		assert.Equal(t, "Alice", user.Name, "existing record must be returned untouched")
	})
}

func TestUserController_ListUsers(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeUserService{
			listUsersResult: []*domain.User{{ID: "u-1", Email: "alice@example.com"}},
		}
		ctrl := NewUserController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rr := httptest.NewRecorder()

		ctrl.ListUsers(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "alice@example.com")
	})

	t.Run("nil result becomes empty array", func(t *testing.T) {
		fake := &fakeUserService{}
		ctrl := NewUserController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rr := httptest.NewRecorder()

		ctrl.ListUsers(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"data":[]`)
	})

	t.Run("service error", func(t *testing.T) {
		fake := &fakeUserService{listUsersErr: errors.New("db down")}
		ctrl := NewUserController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rr := httptest.NewRecorder()

		ctrl.ListUsers(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
