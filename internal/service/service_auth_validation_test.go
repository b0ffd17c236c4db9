package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-photo-share/internal/mock"
	"github.com/MKhiriev/go-photo-share/internal/validators"
	"github.com/MKhiriev/go-photo-share/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newValidatedAuth(ctrl *gomock.Controller) (AuthService, *mock.MockAuthService) {
	inner := mock.NewMockAuthService(ctrl)
	return NewAuthValidationService().Wrap(inner), inner
}

func TestAuthValidationService_RejectsBeforeInner(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func(AuthService) error
		wantErr error
	}{
		{
			name: "signup short username",
			call: func(s AuthService) error {
				_, err := s.SignUp(ctx, models.SignUpRequest{Username: "abc", Email: "a@example.com", Password: "qwer1234"}, baseURL)
				return err
			},
			wantErr: validators.ErrInvalidUsername,
		},
		{
			name: "signup bad email",
			call: func(s AuthService) error {
				_, err := s.SignUp(ctx, models.SignUpRequest{Username: "alice_wonder", Email: "not-an-email", Password: "qwer1234"}, baseURL)
				return err
			},
			wantErr: validators.ErrInvalidEmail,
		},
		{
			name: "login empty password",
			call: func(s AuthService) error {
				_, err := s.Login(ctx, models.LoginRequest{Email: "alice@example.com"})
				return err
			},
			wantErr: validators.ErrEmptyPassword,
		},
		{
			name: "request email invalid",
			call: func(s AuthService) error {
				_, err := s.RequestEmail(ctx, models.EmailRequest{Email: "nope"}, baseURL)
				return err
			},
			wantErr: validators.ErrInvalidEmail,
		},
		{
			name: "forgot password invalid",
			call: func(s AuthService) error {
				_, err := s.ForgotPassword(ctx, models.EmailRequest{Email: "nope"}, baseURL)
				return err
			},
			wantErr: validators.ErrInvalidEmail,
		},
		{
			name: "reset password empty token",
			call: func(s AuthService) error {
				_, err := s.ResetPassword(ctx, models.ResetPasswordRequest{NewPassword: "qwer1234"})
				return err
			},
			wantErr: validators.ErrEmptyToken,
		},
		{
			name: "confirm empty token",
			call: func(s AuthService) error {
				_, err := s.ConfirmEmail(ctx, "")
				return err
			},
			wantErr: ErrVerification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, _ := newValidatedAuth(ctrl)

			assert.ErrorIs(t, tt.call(svc), tt.wantErr)
		})
	}
}

func TestAuthValidationService_PassesValidRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, inner := newValidatedAuth(ctrl)
	ctx := context.Background()

	signUp := models.SignUpRequest{Username: "alice_wonder", Email: "alice@example.com", Password: "qwer1234"}
	login := models.LoginRequest{Email: "alice@example.com", Password: "whatever"}
	reset := models.ResetPasswordRequest{Token: "token", NewPassword: "qwer1234"}

	inner.EXPECT().SignUp(ctx, signUp, baseURL).Return(models.User{ID: 1}, nil)
	inner.EXPECT().Login(ctx, login).Return(models.TokenPair{AccessToken: "a"}, nil)
	inner.EXPECT().Logout(ctx, "access").Return(nil)
	inner.EXPECT().Refresh(ctx, "refresh").Return(models.TokenPair{}, nil)
	inner.EXPECT().ConfirmEmail(ctx, "token").Return("ok", nil)
	inner.EXPECT().ResetPassword(ctx, reset).Return("ok", nil)

	user, err := svc.SignUp(ctx, signUp, baseURL)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	pair, err := svc.Login(ctx, login)
	require.NoError(t, err)
	assert.Equal(t, "a", pair.AccessToken)

	require.NoError(t, svc.Logout(ctx, "access"))
	_, err = svc.Refresh(ctx, "refresh")
	require.NoError(t, err)
	_, err = svc.ConfirmEmail(ctx, "token")
	require.NoError(t, err)
	_, err = svc.ResetPassword(ctx, reset)
	require.NoError(t, err)
}
