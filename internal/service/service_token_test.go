package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTripPerPurpose(t *testing.T) {
	tokens := newTestTokens()
	ctx := context.Background()
	cfg := testAppConfig()

	ttl := map[models.TokenPurpose]time.Duration{
		models.PurposeAccess:  cfg.AccessTokenTTL,
		models.PurposeRefresh: cfg.RefreshTokenTTL,
		models.PurposeEmail:   cfg.EmailTokenTTL,
	}

	for purpose, want := range ttl {
		t.Run(string(purpose), func(t *testing.T) {
			issued, err := tokens.Issue(ctx, "alice@example.com", purpose)
			require.NoError(t, err)

			decoded, err := tokens.Decode(ctx, issued.String(), purpose)
			require.NoError(t, err)

			assert.Equal(t, "alice@example.com", decoded.Email())
			assert.Equal(t, purpose, decoded.Scope)
			assert.WithinDuration(t, time.Now().Add(want), decoded.Expiry(), 5*time.Second)
		})
	}
}

func TestTokenService_ScopeIsEnforced(t *testing.T) {
	tokens := newTestTokens()
	ctx := context.Background()

	purposes := []models.TokenPurpose{models.PurposeAccess, models.PurposeRefresh, models.PurposeEmail}
	for _, issuedFor := range purposes {
		issued, err := tokens.Issue(ctx, "alice@example.com", issuedFor)
		require.NoError(t, err)

		for _, expected := range purposes {
			if expected == issuedFor {
				continue
			}
			_, err = tokens.Decode(ctx, issued.String(), expected)
			assert.ErrorIs(t, err, ErrInvalidScope, "issued for %s, decoded as %s", issuedFor, expected)
		}
	}
}

func TestTokenService_InvalidTokens(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokens()

	otherKey := testAppConfig()
	otherKey.TokenSignKey = "another-key"
	foreign, err := NewTokenService(otherKey, logger.Nop()).Issue(ctx, "alice@example.com", models.PurposeAccess)
	require.NoError(t, err)

	otherIssuer := testAppConfig()
	otherIssuer.TokenIssuer = "someone-else"
	wrongIssuer, err := NewTokenService(otherIssuer, logger.Nop()).Issue(ctx, "alice@example.com", models.PurposeAccess)
	require.NoError(t, err)

	expiredCfg := testAppConfig()
	expiredCfg.AccessTokenTTL = -time.Minute
	expired, err := NewTokenService(expiredCfg, logger.Nop()).Issue(ctx, "alice@example.com", models.PurposeAccess)
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":      "not-a-token",
		"empty":        "",
		"foreign key":  foreign.String(),
		"wrong issuer": wrongIssuer.String(),
		"expired":      expired.String(),
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Decode(ctx, raw, models.PurposeAccess)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenService_IssueUnknownPurpose(t *testing.T) {
	_, err := newTestTokens().Issue(context.Background(), "alice@example.com", "api_key")

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestTokenService_IssueEmptySubject(t *testing.T) {
	_, err := newTestTokens().Issue(context.Background(), "", models.PurposeAccess)

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}
