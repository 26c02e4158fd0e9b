// Package config loads process-wide configuration from the environment.
//
// Config is loaded once in main and passed down explicitly; nothing in the
// application reads os.Getenv after startup.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Config holds everything the server needs to run.
type Config struct {
	Port       int
	DBPath     string
	JWTSecret  string
	AccessTTL  time.Duration // lifetime of access tokens
	RefreshTTL time.Duration // lifetime of refresh tokens
	BcryptCost int
	// CORSAllowedOrigins is the list handed to the CORS middleware.
	// "*" (the default) keeps the permissive behavior of a public catalog API.
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables, applying defaults for
// everything except JWT_SECRET, which has no safe default.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}

	cfg := &Config{
		Port:               8080,
		DBPath:             "data/gamestore.db",
		JWTSecret:          secret,
		AccessTTL:          defaultAccessTTL,
		RefreshTTL:         defaultRefreshTTL,
		BcryptCost:         bcrypt.DefaultCost,
		CORSAllowedOrigins: []string{"*"},
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("config: PORT must be an integer")
		}
		cfg.Port = port
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("JWT_ACCESS_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.New("config: JWT_ACCESS_TTL must be a duration (e.g. 15m)")
		}
		cfg.AccessTTL = d
	}
	if v := os.Getenv("JWT_REFRESH_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.New("config: JWT_REFRESH_TTL must be a duration (e.g. 168h)")
		}
		cfg.RefreshTTL = d
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, errors.New("config: BCRYPT_COST out of range")
		}
		cfg.BcryptCost = cost
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSAllowedOrigins = origins
	}

	return cfg, nil
}
