package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-photo-share/models"
)

// UserRepository persists user identities.
type UserRepository interface {
	// CreateUser inserts user. The first user ever created becomes an
	// administrator regardless of user.Role.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	// UpdateRefreshToken stores token for the user; nil clears it.
	UpdateRefreshToken(ctx context.Context, userID int64, token *string) error
	SetConfirmed(ctx context.Context, email string) error
	SetActive(ctx context.Context, email string, active bool) error
	SetRole(ctx context.Context, email string, role models.Role) error
	// UpdatePassword replaces the password hash and clears the refresh token.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)
	ListUsers(ctx context.Context, skip, limit uint64) ([]models.User, error)
}

// BlacklistRepository stores revoked tokens until they expire on their own.
type BlacklistRepository interface {
	Add(ctx context.Context, token string, expiresAt time.Time) error
	Contains(ctx context.Context, token string) (bool, error)
	PruneExpired(ctx context.Context, now time.Time) (int64, error)
}

// UserCache keeps short-lived snapshots of users keyed by e-mail.
type UserCache interface {
	Get(ctx context.Context, email string) (models.CachedUser, bool, error)
	Set(ctx context.Context, email string, user models.CachedUser, ttl time.Duration) error
	Invalidate(ctx context.Context, email string) error
}
