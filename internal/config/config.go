// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-photo-share server. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, hashing and versioning settings.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cache holds the Redis connection used by the user cache.
	Cache Cache `envPrefix:"CACHE_"`

	// Mail holds the SMTP settings of outbound e-mail delivery.
	Mail Mail `envPrefix:"MAIL_"`

	// Broker holds the RabbitMQ settings of the e-mail job queue.
	Broker Broker `envPrefix:"BROKER_"`

	// ObjectStorage holds the image hosting credentials used for avatars.
	ObjectStorage ObjectStorage `envPrefix:"OBJECT_STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// TokenSignKey is the HMAC secret used to sign and verify every token.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// AccessTokenTTL is the lifetime of access tokens.
	// Env: APP_ACCESS_TOKEN_TTL
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL"`

	// RefreshTokenTTL is the lifetime of refresh tokens.
	// Env: APP_REFRESH_TOKEN_TTL
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL"`

	// EmailTokenTTL is the lifetime of e-mail confirmation and password
	// reset tokens.
	// Env: APP_EMAIL_TOKEN_TTL
	EmailTokenTTL time.Duration `env:"EMAIL_TOKEN_TTL"`

	// BcryptCost is the bcrypt work factor used for password hashes.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address on which the gRPC health server listens.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds every inbound HTTP request, including the store
	// calls it makes.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PublicBaseURL is used to build links in e-mails. When empty the base
	// URL of the incoming request is used.
	// Env: SERVER_PUBLIC_BASE_URL
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Cache holds the Redis connection settings. The user cache is disabled
// when Address is empty.
type Cache struct {
	Address  string `env:"REDIS_ADDRESS"`
	Username string `env:"REDIS_USERNAME"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"`
	TLS      bool   `env:"REDIS_TLS"`

	// UserTTL is the lifetime of a cached user snapshot.
	// Env: CACHE_USER_TTL
	UserTTL time.Duration `env:"USER_TTL"`
}

// Mail holds SMTP settings. E-mails are only logged when Host is empty.
type Mail struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
	FromName string `env:"FROM_NAME"`

	// SSL switches from opportunistic STARTTLS to implicit TLS.
	SSL bool `env:"SSL"`
}

// Broker holds the RabbitMQ settings. E-mails are sent in-process when URL
// is empty.
type Broker struct {
	URL        string `env:"URL"`
	EmailQueue string `env:"EMAIL_QUEUE"`
}

// ObjectStorage holds the image hosting credentials. Avatar upload is
// disabled when CloudName is empty.
type ObjectStorage struct {
	CloudName       string        `env:"CLOUD_NAME"`
	APIKey          string        `env:"API_KEY"`
	APISecret       string        `env:"API_SECRET"`
	APIBaseURL      string        `env:"API_BASE_URL"`
	DeliveryBaseURL string        `env:"DELIVERY_BASE_URL"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// BlacklistPruneInterval is the period of expired blacklist cleanup.
	// Env: WORKERS_BLACKLIST_PRUNE_INTERVAL
	BlacklistPruneInterval time.Duration `env:"BLACKLIST_PRUNE_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. .env file in the working directory (if present)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
//
// Defaults are applied to every field left empty before validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(defaultDotEnvPath).
		withEnv().
		withFlags().
		withJSON().
		build()
}
