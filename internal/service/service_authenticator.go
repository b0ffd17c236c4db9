package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/metrics"
	"github.com/MKhiriev/go-photo-share/internal/store"
	"github.com/MKhiriev/go-photo-share/models"
)

// authenticator resolves access tokens in a fixed order:
// decode, blacklist check, cache lookup, repository lookup.
type authenticator struct {
	tokens    TokenService
	blacklist store.BlacklistRepository
	cache     store.UserCache
	users     store.UserRepository

	cacheTTL time.Duration

	logger *logger.Logger
}

// NewAuthenticator constructs an Authenticator. Cached snapshots live for
// cacheTTL.
func NewAuthenticator(tokens TokenService, storages *store.Storages, cacheTTL time.Duration, logger *logger.Logger) Authenticator {
	return &authenticator{
		tokens:    tokens,
		blacklist: storages.BlacklistRepository,
		cache:     storages.UserCache,
		users:     storages.UserRepository,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Authenticate implements [Authenticator].
//
// A blacklist lookup failure rejects the request. The cache is advisory: a
// lookup error counts as a miss and a write error is only logged. Users
// banned after the token was issued are rejected with ErrUserNotActive.
func (a *authenticator) Authenticate(ctx context.Context, raw string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := a.tokens.Decode(ctx, raw, models.PurposeAccess)
	if err != nil {
		if errors.Is(err, ErrInvalidScope) {
			metrics.AuthAttempts.WithLabelValues(metrics.AuthInvalidScope).Inc()
		} else {
			metrics.AuthAttempts.WithLabelValues(metrics.AuthInvalidToken).Inc()
		}
		return models.User{}, err
	}

	revoked, err := a.blacklist.Contains(ctx, raw)
	if err != nil {
		log.Err(err).Str("func", "*authenticator.Authenticate").Msg("blacklist lookup failed")
		metrics.AuthAttempts.WithLabelValues(metrics.AuthError).Inc()
		return models.User{}, fmt.Errorf("blacklist lookup failed: %w", err)
	}
	if revoked {
		metrics.AuthAttempts.WithLabelValues(metrics.AuthRevoked).Inc()
		return models.User{}, ErrRevokedToken
	}

	user, err := a.resolve(ctx, token.Email())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			metrics.AuthAttempts.WithLabelValues(metrics.AuthUnknownUser).Inc()
		} else {
			metrics.AuthAttempts.WithLabelValues(metrics.AuthError).Inc()
		}
		return models.User{}, err
	}

	if !user.IsActive {
		metrics.AuthAttempts.WithLabelValues(metrics.AuthInactive).Inc()
		return models.User{}, ErrUserNotActive
	}

	metrics.AuthAttempts.WithLabelValues(metrics.AuthSuccess).Inc()
	return user, nil
}

func (a *authenticator) resolve(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	cached, found, err := a.cache.Get(ctx, email)
	switch {
	case err != nil:
		metrics.UserCacheLookups.WithLabelValues(metrics.CacheError).Inc()
		log.Warn().Err(err).Str("func", "*authenticator.resolve").Msg("user cache lookup failed, falling back to database")
	case found:
		metrics.UserCacheLookups.WithLabelValues(metrics.CacheHit).Inc()
		return cached.ToUser(), nil
	default:
		metrics.UserCacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
	}

	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, fmt.Errorf("%w: %w", ErrUserNotFound, err)
		}
		log.Err(err).Str("func", "*authenticator.resolve").Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if err = a.cache.Set(ctx, email, models.NewCachedUser(user), a.cacheTTL); err != nil {
		log.Warn().Err(err).Str("func", "*authenticator.resolve").Msg("user cache write failed")
	}

	return user, nil
}
