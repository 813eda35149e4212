package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTExpiry time.Duration

	CORSAllowedOrigins []string

	// Email delivery. Provider is "ses" or "noop".
	EmailProvider      string
	EmailFromAddress   string
	EmailFromName      string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               os.Getenv("PORT"),
		MongoURI:           os.Getenv("MONGODB_URI"),
		MongoDatabase:      os.Getenv("MONGODB_DATABASE"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		EmailProvider:      os.Getenv("EMAIL_PROVIDER"),
		EmailFromAddress:   os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailFromName:      os.Getenv("EMAIL_FROM_NAME"),
		SESRegion:          os.Getenv("AWS_SES_REGION"),
		SESAccessKeyID:     os.Getenv("AWS_SES_ACCESS_KEY_ID"),
		SESSecretAccessKey: os.Getenv("AWS_SES_SECRET_ACCESS_KEY"),
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "bettertomorrow"
	}
	if cfg.EmailProvider == "" {
		cfg.EmailProvider = "noop"
	}

	if cfg.JWTSecret == "" {
		if env == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret-do-not-use-in-production"
	}

	expiryHours := 24
	if s := os.Getenv("JWT_EXPIRY_HOURS"); s != "" {
		h, err := strconv.Atoi(s)
		if err != nil || h <= 0 {
			return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS %q", s)
		}
		expiryHours = h
	}
	cfg.JWTExpiry = time.Duration(expiryHours) * time.Hour

	if s := os.Getenv("CORS_ALLOWED_ORIGINS"); s != "" {
		for _, origin := range strings.Split(s, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
			}
		}
	} else if env != "production" {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}

	return cfg, nil
}
