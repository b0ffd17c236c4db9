package http

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/go-photo-share/internal/app"
	"github.com/MKhiriev/go-photo-share/internal/service"
	"github.com/MKhiriev/go-photo-share/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testPair = models.TokenPair{AccessToken: "acc", RefreshToken: "ref", TokenType: models.TokenTypeBearer}

func TestSignUp(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router, m := newTestRouter(t)
		req := models.SignUpRequest{Username: "alice_wonder", Email: "alice@example.com", Password: "secret123"}
		m.auth.EXPECT().SignUp(gomock.Any(), req, "http://example.com/").Return(testUser, nil)

		rec := doRequest(router, http.MethodPost, "/api/auth/signup",
			strings.NewReader(`{"username":"alice_wonder","email":"alice@example.com","password":"secret123"}`))

		require.Equal(t, http.StatusCreated, rec.Code)
		got := decodeBody[models.SignUpResponse](t, rec)
		assert.Equal(t, app.MsgUserCreated, got.Detail)
		assert.Equal(t, testUser.Username, got.User.Username)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("forwarded scheme is used for links", func(t *testing.T) {
		router, m := newTestRouter(t)
		m.auth.EXPECT().SignUp(gomock.Any(), gomock.Any(), "https://example.com/").Return(testUser, nil)

		rec := doRequest(router, http.MethodPost, "/api/auth/signup", strings.NewReader(`{}`),
			"X-Forwarded-Proto", "HTTPS, http")

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := doRequest(router, http.MethodPost, "/api/auth/signup", strings.NewReader(`{"email":`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrInvalidJSON.Error(), detailOf(t, rec))
	})

	t.Run("email taken", func(t *testing.T) {
		router, m := newTestRouter(t)
		m.auth.EXPECT().SignUp(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrEmailExists)

		rec := doRequest(router, http.MethodPost, "/api/auth/signup", strings.NewReader(`{}`))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, app.MsgAccountAlreadyExists, detailOf(t, rec))
	})
}

func TestLogin(t *testing.T) {
	want := models.LoginRequest{Email: "alice@example.com", Password: "secret123"}

	t.Run("json body", func(t *testing.T) {
		router, m := newTestRouter(t)
		m.auth.EXPECT().Login(gomock.Any(), want).Return(testPair, nil)

		rec := doRequest(router, http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"alice@example.com","password":"secret123"}`),
			"Content-Type", "application/json")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testPair, decodeBody[models.TokenPair](t, rec))
	})

	t.Run("password form", func(t *testing.T) {
		router, m := newTestRouter(t)
		m.auth.EXPECT().Login(gomock.Any(), want).Return(testPair, nil)

		form := url.Values{"username": {"alice@example.com"}, "password": {"secret123"}}
		rec := doRequest(router, http.MethodPost, "/api/auth/login",
			strings.NewReader(form.Encode()),
			"Content-Type", "application/x-www-form-urlencoded")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "bearer", decodeBody[models.TokenPair](t, rec).TokenType)
	})

	t.Run("wrong password", func(t *testing.T) {
		router, m := newTestRouter(t)
		m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.TokenPair{}, service.ErrInvalidPassword)

		rec := doRequest(router, http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, app.MsgInvalidPassword, detailOf(t, rec))
	})

	t.Run("banned", func(t *testing.T) {
		router, m := newTestRouter(t)
		m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.TokenPair{}, service.ErrUserNotActive)

		rec := doRequest(router, http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestLogout_WithoutToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/auth/logout", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshToken(t *testing.T) {
	t.Run("rotates", func(t *testing.T) {
		router, m := newTestRouter(t)
		m.auth.EXPECT().Refresh(gomock.Any(), "ref").Return(testPair, nil)

		rec := doRequest(router, http.MethodGet, "/api/auth/refresh_token", nil, bearer("ref")...)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testPair, decodeBody[models.TokenPair](t, rec))
	})

	t.Run("missing header", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rec := doRequest(router, http.MethodGet, "/api/auth/refresh_token", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("replayed", func(t *testing.T) {
		router, m := newTestRouter(t)
		m.auth.EXPECT().Refresh(gomock.Any(), "old").
			Return(models.TokenPair{}, service.ErrInvalidRefreshToken)

		rec := doRequest(router, http.MethodGet, "/api/auth/refresh_token", nil, bearer("old")...)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, app.MsgInvalidRefreshToken, detailOf(t, rec))
	})
}

func TestConfirmEmail(t *testing.T) {
	router, m := newTestRouter(t)
	m.auth.EXPECT().ConfirmEmail(gomock.Any(), "abc.def.ghi").Return(app.MsgEmailConfirmed, nil)

	rec := doRequest(router, http.MethodGet, "/api/auth/confirmed_email/abc.def.ghi", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, app.MsgEmailConfirmed, messageOf(t, rec))
}

func TestConfirmEmail_VerificationError(t *testing.T) {
	router, m := newTestRouter(t)
	m.auth.EXPECT().ConfirmEmail(gomock.Any(), "bad").Return("", service.ErrVerification)

	rec := doRequest(router, http.MethodGet, "/api/auth/confirmed_email/bad", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgVerificationError, detailOf(t, rec))
}

func TestRequestEmail(t *testing.T) {
	router, m := newTestRouter(t)
	m.auth.EXPECT().
		RequestEmail(gomock.Any(), models.EmailRequest{Email: "alice@example.com"}, "http://example.com/").
		Return(app.MsgCheckYourEmail, nil)

	rec := doRequest(router, http.MethodPost, "/api/auth/request_email", strings.NewReader(`{"email":"alice@example.com"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, app.MsgCheckYourEmail, messageOf(t, rec))
}

func TestForgotPassword(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
	}{
		{name: "query parameter", target: "/api/auth/forgot_password?email=alice@example.com"},
		{name: "json body", target: "/api/auth/forgot_password", body: `{"email":"alice@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			m.auth.EXPECT().
				ForgotPassword(gomock.Any(), models.EmailRequest{Email: "alice@example.com"}, gomock.Any()).
				Return(app.MsgEmailHasBeenSent, nil)

			rec := doRequest(router, http.MethodPost, tt.target, strings.NewReader(tt.body))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, app.MsgEmailHasBeenSent, messageOf(t, rec))
		})
	}
}

func TestResetPassword(t *testing.T) {
	want := models.ResetPasswordRequest{Token: "tok", NewPassword: "n3wsecret"}

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{name: "query parameters", target: "/api/auth/reset_password?reset_token=tok&new_password=n3wsecret"},
		{name: "json body", target: "/api/auth/reset_password", body: `{"token":"tok","new_password":"n3wsecret"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			m.auth.EXPECT().ResetPassword(gomock.Any(), want).Return(app.MsgPasswordReset, nil)

			rec := doRequest(router, http.MethodPost, tt.target, strings.NewReader(tt.body))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, app.MsgPasswordReset, messageOf(t, rec))
		})
	}
}
