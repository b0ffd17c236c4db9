// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-photo-share/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func ptr(s string) *string { return &s }

func validSignUp() models.SignUpRequest {
	return models.SignUpRequest{
		Username: "sergiokapone",
		Email:    "example@example.com",
		Password: "qwer1234",
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestUserValidator_Dispatch(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
	})

	t.Run("value and pointer", func(t *testing.T) {
		req := validSignUp()
		require.NoError(t, v.Validate(ctx, req))
		require.NoError(t, v.Validate(ctx, &req))
	})

	t.Run("unknown field", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, validSignUp(), "nickname"), ErrUnknownField)
	})
}

// ---------------------------------------------------------------------------
// SignUpRequest
// ---------------------------------------------------------------------------

func TestUserValidator_SignUp(t *testing.T) {
	v := NewUserValidator()

	tests := []struct {
		name    string
		mutate  func(r *models.SignUpRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(r *models.SignUpRequest) {}},
		{name: "username too short", mutate: func(r *models.SignUpRequest) { r.Username = "abcd" }, wantErr: ErrInvalidUsername},
		{name: "username min length", mutate: func(r *models.SignUpRequest) { r.Username = "abcde" }},
		{name: "username max length", mutate: func(r *models.SignUpRequest) { r.Username = strings.Repeat("a", 25) }},
		{name: "username too long", mutate: func(r *models.SignUpRequest) { r.Username = strings.Repeat("a", 26) }, wantErr: ErrInvalidUsername},
		{name: "username counts runes", mutate: func(r *models.SignUpRequest) { r.Username = "юзерр" }},
		{name: "empty email", mutate: func(r *models.SignUpRequest) { r.Email = "" }, wantErr: ErrInvalidEmail},
		{name: "email without at", mutate: func(r *models.SignUpRequest) { r.Email = "example.com" }, wantErr: ErrInvalidEmail},
		{name: "email with display name", mutate: func(r *models.SignUpRequest) { r.Email = "Bob <bob@example.com>" }, wantErr: ErrInvalidEmail},
		{name: "email without domain dot", mutate: func(r *models.SignUpRequest) { r.Email = "bob@localhost" }, wantErr: ErrInvalidEmail},
		{name: "password too short", mutate: func(r *models.SignUpRequest) { r.Password = "12345" }, wantErr: ErrInvalidPassword},
		{name: "password max length", mutate: func(r *models.SignUpRequest) { r.Password = strings.Repeat("p", 30) }},
		{name: "password too long", mutate: func(r *models.SignUpRequest) { r.Password = strings.Repeat("p", 31) }, wantErr: ErrInvalidPassword},
		{name: "password over bcrypt limit", mutate: func(r *models.SignUpRequest) { r.Password = strings.Repeat("日", 25) }, wantErr: ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignUp()
			tt.mutate(&req)

			err := v.Validate(context.Background(), req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserValidator_SignUp_FieldScoping(t *testing.T) {
	v := NewUserValidator()
	req := models.SignUpRequest{Email: "example@example.com"}

	assert.NoError(t, v.Validate(context.Background(), req, FieldEmail))
	assert.ErrorIs(t, v.Validate(context.Background(), req, FieldEmail, FieldUsername), ErrInvalidUsername)
}

// ---------------------------------------------------------------------------
// LoginRequest
// ---------------------------------------------------------------------------

func TestUserValidator_Login(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.LoginRequest{Email: "a@x.com", Password: "1"}))
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Email: "a@x.com"}), ErrEmptyPassword)
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Email: "nope", Password: "secret"}), ErrInvalidEmail)
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Email: "a@x.com", Password: strings.Repeat("p", 73)}), ErrPasswordTooLong)
}

// ---------------------------------------------------------------------------
// EmailRequest / ResetPasswordRequest / Role
// ---------------------------------------------------------------------------

func TestUserValidator_EmailRequest(t *testing.T) {
	v := NewUserValidator()

	assert.NoError(t, v.Validate(context.Background(), models.EmailRequest{Email: "a@x.com"}))
	assert.ErrorIs(t, v.Validate(context.Background(), &models.EmailRequest{Email: "a@"}), ErrInvalidEmail)
}

func TestUserValidator_ResetPassword(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ResetPasswordRequest{Token: "t", NewPassword: "newpass"}))
	assert.ErrorIs(t, v.Validate(ctx, models.ResetPasswordRequest{Token: "  ", NewPassword: "newpass"}), ErrEmptyToken)
	assert.ErrorIs(t, v.Validate(ctx, models.ResetPasswordRequest{Token: "t", NewPassword: "123"}), ErrInvalidPassword)
}

func TestUserValidator_Role(t *testing.T) {
	v := NewUserValidator()

	assert.NoError(t, v.Validate(context.Background(), models.RoleModerator))
	assert.ErrorIs(t, v.Validate(context.Background(), models.Role("root")), ErrInvalidRole)
}

// ---------------------------------------------------------------------------
// EditProfileRequest
// ---------------------------------------------------------------------------

func TestUserValidator_EditProfile(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	t.Run("nothing to update", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(ctx, models.EditProfileRequest{}), ErrNoFieldsToUpdate)
	})

	t.Run("description only", func(t *testing.T) {
		assert.NoError(t, v.Validate(ctx, models.EditProfileRequest{Description: ptr("hello")}))
	})

	t.Run("avatar only", func(t *testing.T) {
		req := models.EditProfileRequest{Avatar: strings.NewReader("img"), AvatarFilename: "a.png"}
		assert.NoError(t, v.Validate(ctx, &req))
	})

	t.Run("bad username", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(ctx, models.EditProfileRequest{Username: ptr("bob")}), ErrInvalidUsername)
	})

	t.Run("description too long", func(t *testing.T) {
		long := strings.Repeat("d", MaxDescriptionChars+1)
		assert.ErrorIs(t, v.Validate(ctx, models.EditProfileRequest{Description: &long}), ErrDescriptionTooLong)
	})
}
