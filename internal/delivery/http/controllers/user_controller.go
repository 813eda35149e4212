package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bettertomorrow/internal/delivery/http/helpers"
	"bettertomorrow/internal/domain"
)

// RegisterUserRequest is the request body for POST /users.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

// Validate implements Validator.
func (u RegisterUserRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(u.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// RegisterUserSuccessResponse is the success response envelope for POST /users (200 or 201).
type RegisterUserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListUsersSuccessResponse is the success response envelope for GET /users (200).
type ListUsersSuccessResponse struct {
	Data  []*domain.User    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UserController handles user registration and listing.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterUser godoc
// @Summary Register a user profile
// @Description Creates a user profile keyed by email. Registration is idempotent: registering an email that already exists returns the existing record (200) and never duplicates it; a new registration returns 201.
// @Tags users
// @Accept json
// @Produce json
// @Param body body RegisterUserRequest true "User profile data"
// @Success 200 {object} controllers.RegisterUserSuccessResponse "data contains the existing user"
// @Success 201 {object} controllers.RegisterUserSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [post]
func (c *UserController) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	user := domain.NewUser(req.Email, req.Name, req.PhotoURL, now)
	registered, created, err := c.Service.Register(r.Context(), user)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, registered)
}

// ListUsers godoc
// @Summary List users
// @Description Returns all registered users sorted by registration time.
// @Tags users
// @Produce json
// @Success 200 {object} controllers.ListUsersSuccessResponse "data is an array of users"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [get]
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Service.ListUsers(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}
