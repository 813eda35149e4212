package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"bettertomorrow/config"
	_ "bettertomorrow/docs"
	"bettertomorrow/internal/adapters/auth"
	"bettertomorrow/internal/adapters/email"
	httpdelivery "bettertomorrow/internal/delivery/http"
	"bettertomorrow/internal/delivery/http/controllers"
	"bettertomorrow/internal/delivery/http/middleware"
	"bettertomorrow/internal/repository/mongodb"
	"bettertomorrow/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title Better Tomorrow API
// @version 1.0
// @description Event discovery backend: browse and create community events, join them, and read your joined events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Error("mongo connect failed", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("mongo disconnect failed", "err", err)
		}
	}()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("mongo ping failed", "err", err)
		os.Exit(1)
	}

	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.Error("ensure indexes failed", "err", err)
		os.Exit(1)
	}

	eventRepo := mongodb.NewEventRepository(db.Collection(mongodb.EventsCollection))
	userRepo := mongodb.NewUserRepository(db.Collection(mongodb.UsersCollection))
	membershipRepo := mongodb.NewMembershipRepository(db.Collection(mongodb.MembershipsCollection))

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("mailer init failed", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	hasher := auth.NewBcryptHasher(0) // 0 means bcrypt.DefaultCost
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	eventService := services.NewEventService(eventRepo, serviceTimeout)
	userService := services.NewUserService(userRepo, emailService, serviceTimeout)
	membershipService := services.NewMembershipService(membershipRepo, eventRepo, emailService, serviceTimeout)
	authService := services.NewAuthService(userRepo, hasher, issuer, cfg.JWTExpiry, serviceTimeout)

	mux := httpdelivery.NewRouter(
		logger,
		verifier,
		controllers.NewEventController(logger, eventService),
		controllers.NewMembershipController(logger, membershipService),
		controllers.NewUserController(logger, userService),
		controllers.NewAuthController(logger, authService),
	)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
	logger.Info("server stopped")
}
