// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the business logic of the photo-share API:
// token issuing and decoding, request authentication, role checks, the
// session flows (signup, login, logout, refresh, e-mail confirmation and
// password reset) and user administration.
//
// Services depend on the store, adapter and broker packages only through
// interfaces, so every flow is tested with gomock doubles from internal/mock.
package service

import (
	"context"

	"github.com/MKhiriev/go-photo-share/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService issues and decodes purpose-bound signed tokens. The subject of
// every token is the user's e-mail address.
type TokenService interface {
	// Issue signs a token for email restricted to purpose. The lifetime
	// depends on the purpose.
	Issue(ctx context.Context, email string, purpose models.TokenPurpose) (models.Token, error)

	// Decode verifies signature, algorithm, issuer and expiry of raw and
	// checks that it was issued for expected. Returns ErrInvalidScope on a
	// purpose mismatch and ErrInvalidToken on any other failure.
	Decode(ctx context.Context, raw string, expected models.TokenPurpose) (models.Token, error)
}

// Authenticator resolves a bearer access token into the user it belongs to.
type Authenticator interface {
	// Authenticate decodes raw, rejects revoked tokens, and resolves the
	// subject through the user cache and the user repository.
	Authenticate(ctx context.Context, raw string) (models.User, error)
}

// AuthService implements the session flows.
type AuthService interface {
	SignUp(ctx context.Context, req models.SignUpRequest, baseURL string) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	ConfirmEmail(ctx context.Context, token string) (string, error)
	RequestEmail(ctx context.Context, req models.EmailRequest, baseURL string) (string, error)
	ForgotPassword(ctx context.Context, req models.EmailRequest, baseURL string) (string, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (string, error)
}

// UserService implements the profile and administration endpoints.
type UserService interface {
	// Me returns the authenticated user stored in ctx.
	Me(ctx context.Context) (models.User, error)
	EditProfile(ctx context.Context, current models.User, req models.EditProfileRequest) (models.User, error)
	ListUsers(ctx context.Context, req models.ListUsersRequest) ([]models.User, error)
	Profile(ctx context.Context, username string) (models.UserProfile, error)
	Ban(ctx context.Context, admin models.User, email string) (string, error)
	Activate(ctx context.Context, admin models.User, email string) (string, error)
	AssignRole(ctx context.Context, email string, role models.Role) (string, error)
}

// EmailDispatcher hands e-mail jobs off without blocking the request.
type EmailDispatcher interface {
	Dispatch(ctx context.Context, job models.EmailJob)
}

// AppInfoService exposes build information of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
