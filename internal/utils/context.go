// Package utils holds small helpers shared across the server: typed context
// keys, bcrypt password hashing, JWT issuing and parsing, JSON responses and
// the resty HTTP client.
package utils

import (
	"context"

	"github.com/MKhiriev/go-photo-share/models"
)

// contextKey is a private type for context keys, so they cannot collide with
// keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var (
	// UserCtxKey holds the authenticated models.User.
	UserCtxKey = contextKey("user")
	// TokenCtxKey holds the raw access token the request was authenticated with.
	TokenCtxKey = contextKey("token")
)

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext returns the authenticated user stored by WithUser.
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}

// WithToken returns a copy of ctx carrying the raw access token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenCtxKey, token)
}

// GetTokenFromContext returns the raw access token stored by WithToken.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenCtxKey).(string)
	return token, ok && token != ""
}
