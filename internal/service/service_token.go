package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/config"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/utils"
	"github.com/MKhiriev/go-photo-share/models"
)

// tokenService signs HS256 tokens with a single secret. Password reset tokens
// share the e-mail purpose and lifetime.
type tokenService struct {
	signKey string
	issuer  string
	ttl     map[models.TokenPurpose]time.Duration

	logger *logger.Logger
}

// NewTokenService constructs a TokenService from the token settings in cfg.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		signKey: cfg.TokenSignKey,
		issuer:  cfg.TokenIssuer,
		ttl: map[models.TokenPurpose]time.Duration{
			models.PurposeAccess:  cfg.AccessTokenTTL,
			models.PurposeRefresh: cfg.RefreshTokenTTL,
			models.PurposeEmail:   cfg.EmailTokenTTL,
		},
		logger: logger,
	}
}

func (s *tokenService) Issue(ctx context.Context, email string, purpose models.TokenPurpose) (models.Token, error) {
	ttl, ok := s.ttl[purpose]
	if !ok {
		return models.Token{}, fmt.Errorf("%w: unknown purpose %q", ErrTokenCreationFailed, purpose)
	}

	token, err := utils.GenerateJWTToken(s.issuer, email, purpose, ttl, s.signKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.Issue").Str("purpose", string(purpose)).Msg("token signing failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (s *tokenService) Decode(ctx context.Context, raw string, expected models.TokenPurpose) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(raw, s.signKey, s.issuer, expected)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*tokenService.Decode").Str("purpose", string(expected)).Msg("token rejected")
		if errors.Is(err, utils.ErrTokenScopeMismatch) {
			return models.Token{}, ErrInvalidScope
		}
		return models.Token{}, ErrInvalidToken
	}

	return token, nil
}
