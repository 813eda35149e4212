package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"bettertomorrow/internal/delivery/http/controllers"
	"bettertomorrow/internal/delivery/http/middleware"
	"bettertomorrow/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Routes that mutate events or read the caller's own events require a Bearer
// token; browsing, registration, and joining are public.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	eventController *controllers.EventController,
	membershipController *controllers.MembershipController,
	userController *controllers.UserController,
	authController *controllers.AuthController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Better Tomorrow server is running"))
	})

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/upcoming", eventController.ListUpcomingEvents)
	mux.HandleFunc("GET /events/mine", auth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))

	// Memberships
	mux.HandleFunc("POST /memberships", membershipController.JoinEvent)
	mux.HandleFunc("GET /memberships", membershipController.ListMemberships)
	mux.HandleFunc("GET /memberships/{userEmail}/events", membershipController.ListJoinedEvents)

	// Users
	mux.HandleFunc("POST /users", userController.RegisterUser)
	mux.HandleFunc("GET /users", userController.ListUsers)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
