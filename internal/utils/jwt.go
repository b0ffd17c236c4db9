package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-photo-share/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidTokenParams is returned by GenerateJWTToken when a required
	// argument is empty.
	ErrInvalidTokenParams = errors.New("invalid params for generating JWT token")
	// ErrTokenScopeMismatch is returned when a valid token was issued for
	// another purpose.
	ErrTokenScopeMismatch = errors.New("token scope mismatch")
	// ErrEmptySubject is returned for tokens without a "sub" claim.
	ErrEmptySubject = errors.New("empty subject")
	// ErrInvalidAuthorizationHeader is returned by ParseBearerToken.
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
)

// GenerateJWTToken creates an HS256 token for subject with the given purpose.
//
// The token carries iss, sub, iat, exp, a random jti and the "scope" claim.
// A negative duration yields an already expired token, which tests rely on.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("go-photo-share", "alice@example.com", models.PurposeAccess, 15*time.Minute, "secret")
func GenerateJWTToken(issuer, subject string, scope models.TokenPurpose, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || subject == "" || scope == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	now := time.Now()
	claims := &models.Token{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        NewID(),
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Scope: scope,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	claims.Token = token
	claims.SignedString = tokenString
	return *claims, nil
}

// ValidateAndParseJWTToken verifies tokenString and returns its claims.
//
// Validation includes the HS256 signature, the issuer, a required and
// unexpired "exp", the "iat" claim, a non-empty subject, and finally the
// "scope" claim against expected. Scope is only compared once the token is
// otherwise valid, so ErrTokenScopeMismatch always refers to a genuine token.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, expected models.TokenPurpose) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	claims, ok := token.Claims.(*models.Token)
	if !ok {
		return models.Token{}, errors.New("unexpected claims type")
	}

	if claims.Subject == "" {
		return models.Token{}, ErrEmptySubject
	}

	if claims.Scope != expected {
		return models.Token{}, fmt.Errorf("%w: got %q, want %q", ErrTokenScopeMismatch, claims.Scope, expected)
	}

	claims.Token = token
	claims.SignedString = tokenString
	return *claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
