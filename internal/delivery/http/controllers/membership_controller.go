package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"bettertomorrow/internal/delivery/http/helpers"
	"bettertomorrow/internal/domain"
)

// JoinEventRequest is the request body for POST /memberships.
type JoinEventRequest struct {
	UserEmail string `json:"user_email"`
	EventID   string `json:"event_id"`
}

// Validate implements Validator.
func (j JoinEventRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(j.UserEmail))
	if email == "" {
		errs = append(errs, "user_email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if strings.TrimSpace(j.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	return errs
}

// JoinEventSuccessResponse is the success response envelope for POST /memberships (201).
type JoinEventSuccessResponse struct {
	Data  *domain.Membership `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListMembershipsSuccessResponse is the success response envelope for GET /memberships (200).
type ListMembershipsSuccessResponse struct {
	Data  []*domain.Membership `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListJoinedEventsSuccessResponse is the success response envelope for GET /memberships/{userEmail}/events (200).
type ListJoinedEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MembershipController handles join records and joined-event listings.
type MembershipController struct {
	Logger  *slog.Logger
	Service domain.MembershipService
}

func NewMembershipController(logger *slog.Logger, svc domain.MembershipService) *MembershipController {
	return &MembershipController{
		Logger:  logger,
		Service: svc,
	}
}

// JoinEvent godoc
// @Summary Join an event
// @Description Records that a user joined an event. Each (user_email, event_id) pair can exist at most once; joining twice returns 409.
// @Tags memberships
// @Accept json
// @Produce json
// @Param body body JoinEventRequest true "User email and event ID"
// @Success 201 {object} controllers.JoinEventSuccessResponse "data contains the created membership"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already joined)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /memberships [post]
func (c *MembershipController) JoinEvent(w http.ResponseWriter, r *http.Request) {
	var req JoinEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	membership, err := c.Service.JoinEvent(r.Context(), req.UserEmail, req.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already joined this event")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, membership)
}

// ListMemberships godoc
// @Summary List memberships
// @Description Returns join records sorted ascending by join time. Optional user_email query param filters by user.
// @Tags memberships
// @Produce json
// @Param user_email query string false "Filter by user email"
// @Success 200 {object} controllers.ListMembershipsSuccessResponse "data is an array of memberships"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /memberships [get]
func (c *MembershipController) ListMemberships(w http.ResponseWriter, r *http.Request) {
	userEmail := strings.TrimSpace(r.URL.Query().Get("user_email"))
	memberships, err := c.Service.ListMemberships(r.Context(), userEmail)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if memberships == nil {
		memberships = []*domain.Membership{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, memberships)
}

// ListJoinedEvents godoc
// @Summary List events a user has joined
// @Description Returns the full event records for every event the user joined, sorted ascending by event date. Joins whose event no longer exists are dropped.
// @Tags memberships
// @Produce json
// @Param userEmail path string true "User email"
// @Success 200 {object} controllers.ListJoinedEventsSuccessResponse "data is an array of events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /memberships/{userEmail}/events [get]
func (c *MembershipController) ListJoinedEvents(w http.ResponseWriter, r *http.Request) {
	userEmail := r.PathValue("userEmail")
	if userEmail == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userEmail")
		return
	}
	events, err := c.Service.ListJoinedEvents(r.Context(), userEmail)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}
