package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-photo-share/internal/validators"
	"github.com/MKhiriev/go-photo-share/models"
)

// AuthServiceWrapper decorates an AuthService, e.g. with request validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// AuthValidationService validates request payloads before they reach the
// wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *AuthValidationService) SignUp(ctx context.Context, req models.SignUpRequest, baseURL string) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("error during signup validation: %w", err)
	}
	return v.inner.SignUp(ctx, req, baseURL)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.TokenPair{}, fmt.Errorf("error during login validation: %w", err)
	}
	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) Logout(ctx context.Context, accessToken string) error {
	return v.inner.Logout(ctx, accessToken)
}

func (v *AuthValidationService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	return v.inner.Refresh(ctx, refreshToken)
}

func (v *AuthValidationService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	if err := v.validator.Validate(ctx, models.ResetPasswordRequest{Token: token}, validators.FieldToken); err != nil {
		return "", fmt.Errorf("%w: %w", ErrVerification, err)
	}
	return v.inner.ConfirmEmail(ctx, token)
}

func (v *AuthValidationService) RequestEmail(ctx context.Context, req models.EmailRequest, baseURL string) (string, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return "", fmt.Errorf("error during email validation: %w", err)
	}
	return v.inner.RequestEmail(ctx, req, baseURL)
}

func (v *AuthValidationService) ForgotPassword(ctx context.Context, req models.EmailRequest, baseURL string) (string, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return "", fmt.Errorf("error during email validation: %w", err)
	}
	return v.inner.ForgotPassword(ctx, req, baseURL)
}

func (v *AuthValidationService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (string, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return "", fmt.Errorf("error during password reset validation: %w", err)
	}
	return v.inner.ResetPassword(ctx, req)
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}
