// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// med-cms server. It aggregates all sub-configurations and is populated by
// merging defaults, a .env file, environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters, the application version and the default
	// content locale.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database, the uploaded
	// file store and the optional Redis instance.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Security holds password hashing, login throttling and cross-origin
	// protection settings.
	Security Security `envPrefix:"SECURITY_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "24h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is reported by the health endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// DefaultLocale is used when a request names no supported locale.
	// Env: APP_DEFAULT_LOCALE
	DefaultLocale string `env:"DEFAULT_LOCALE"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// AdminEmail and AdminPassword provision the first administrator at
	// startup when no account with that email exists. Both empty disables
	// provisioning.
	// Env: APP_ADMIN_EMAIL, APP_ADMIN_PASSWORD
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system storage settings for uploaded files.
	Files Files `envPrefix:"FILES_"`

	// Redis holds the optional Redis connection used for token revocation.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by its scheme: "postgres://" or "postgresql://"
	// open PostgreSQL through pgx, "sqlite://" or "file:" open SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns limits the connection pool.
	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`
}

// Files holds file-system settings for uploaded specialist files.
type Files struct {
	// UploadDir is the root directory of the file store.
	// Env: STORAGE_FILES_UPLOAD_DIR
	UploadDir string `env:"UPLOAD_DIR"`

	// MaxUploadSize is the largest accepted upload in bytes.
	// Env: STORAGE_FILES_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`
}

// Redis holds the optional Redis connection settings. An empty URL keeps
// revoked tokens in the relational database.
type Redis struct {
	// URL is a redis:// connection URL.
	// Env: STORAGE_REDIS_URL
	URL string `env:"URL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Security holds settings that protect the public authentication surface.
type Security struct {
	// BcryptCost is the bcrypt work factor for password hashes.
	// Env: SECURITY_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// LoginRateLimit is the number of login attempts per second allowed for
	// a single client IP.
	// Env: SECURITY_LOGIN_RATE_LIMIT
	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT"`

	// LoginBurst is the burst size of the login limiter.
	// Env: SECURITY_LOGIN_BURST
	LoginBurst int `env:"LOGIN_BURST"`

	// CSRFKey authenticates cross-origin protection tokens (32 bytes).
	// Env: SECURITY_CSRF_KEY
	CSRFKey string `env:"CSRF_KEY"`

	// TrustedOrigins are hosts allowed to make cross-origin auth calls,
	// e.g. the SPA host "portal.example.org".
	// Env: SECURITY_TRUSTED_ORIGINS (comma separated)
	TrustedOrigins []string `env:"TRUSTED_ORIGINS" envSeparator:","`

	// TrustedProxies are peer addresses or CIDR ranges (e.g. "10.0.0.0/8")
	// whose X-Forwarded-For / X-Real-IP headers are believed. Requests from
	// any other peer are keyed by their own address.
	// Env: SECURITY_TRUSTED_PROXIES (comma separated)
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// TokenPruneInterval is how often expired revoked tokens are removed.
	// Env: WORKERS_TOKEN_PRUNE_INTERVAL
	TokenPruneInterval time.Duration `env:"TOKEN_PRUNE_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Built-in defaults
//  2. .env file in the working directory (exported into the environment)
//  3. Environment variables
//  4. Command-line flags
//  5. JSON file (path resolved from sources 3 and 4)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv(".env").
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
