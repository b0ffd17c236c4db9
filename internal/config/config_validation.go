// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Default values applied by [StructuredConfig.applyDefaults].
const (
	DefaultTokenIssuer            = "go-photo-share"
	DefaultAccessTokenTTL         = 15 * time.Minute
	DefaultRefreshTokenTTL        = 7 * 24 * time.Hour
	DefaultEmailTokenTTL          = 3 * 24 * time.Hour
	DefaultBcryptCost             = 10
	DefaultUserCacheTTL           = 900 * time.Second
	DefaultRequestTimeout         = 5 * time.Second
	DefaultEmailQueue             = "email.outbound"
	DefaultBlacklistPruneInterval = time.Hour
	DefaultMailFromName           = "PhotoShare Application"
	DefaultMailPort               = 587
	DefaultObjectStorageAPIURL    = "https://api.cloudinary.com"
	DefaultObjectStorageCDNURL    = "https://res.cloudinary.com"
	DefaultLogLevel               = "debug"
)

// bcrypt accepts costs in [4, 31].
const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// applyDefaults fills every empty tunable with its default value.
func (cfg *StructuredConfig) applyDefaults() {
	setDefault(&cfg.App.TokenIssuer, DefaultTokenIssuer)
	setDefault(&cfg.App.AccessTokenTTL, DefaultAccessTokenTTL)
	setDefault(&cfg.App.RefreshTokenTTL, DefaultRefreshTokenTTL)
	setDefault(&cfg.App.EmailTokenTTL, DefaultEmailTokenTTL)
	setDefault(&cfg.App.BcryptCost, DefaultBcryptCost)
	setDefault(&cfg.App.LogLevel, DefaultLogLevel)

	setDefault(&cfg.Cache.UserTTL, DefaultUserCacheTTL)
	setDefault(&cfg.Server.RequestTimeout, DefaultRequestTimeout)
	setDefault(&cfg.Broker.EmailQueue, DefaultEmailQueue)
	setDefault(&cfg.Workers.BlacklistPruneInterval, DefaultBlacklistPruneInterval)

	setDefault(&cfg.Mail.FromName, DefaultMailFromName)
	setDefault(&cfg.Mail.Port, DefaultMailPort)

	setDefault(&cfg.ObjectStorage.APIBaseURL, DefaultObjectStorageAPIURL)
	setDefault(&cfg.ObjectStorage.DeliveryBaseURL, DefaultObjectStorageCDNURL)
	setDefault(&cfg.ObjectStorage.RequestTimeout, DefaultRequestTimeout)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}

	if cfg.App.BcryptCost < minBcryptCost || cfg.App.BcryptCost > maxBcryptCost {
		return fmt.Errorf("%w: bcrypt cost %d is out of range", ErrInvalidAppConfigs, cfg.App.BcryptCost)
	}

	if cfg.App.AccessTokenTTL < 0 || cfg.App.RefreshTokenTTL < 0 || cfg.App.EmailTokenTTL < 0 {
		return fmt.Errorf("%w: token lifetimes must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.ObjectStorage.CloudName != "" && (cfg.ObjectStorage.APIKey == "" || cfg.ObjectStorage.APISecret == "") {
		return ErrInvalidObjectStorageConfigs
	}

	return nil
}
