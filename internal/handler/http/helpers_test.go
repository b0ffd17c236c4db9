package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/mock"
	"github.com/MKhiriev/go-photo-share/internal/service"
	"github.com/MKhiriev/go-photo-share/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// serviceMocks holds the gomock doubles behind a test router.
type serviceMocks struct {
	authenticator *mock.MockAuthenticator
	auth          *mock.MockAuthService
	users         *mock.MockUserService
	appInfo       *mock.MockAppInfoService
}

func newTestRouter(t *testing.T) (http.Handler, serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		authenticator: mock.NewMockAuthenticator(ctrl),
		auth:          mock.NewMockAuthService(ctrl),
		users:         mock.NewMockUserService(ctrl),
		appInfo:       mock.NewMockAppInfoService(ctrl),
	}

	h := NewHandler(&service.Services{
		Authenticator:  m.authenticator,
		AuthService:    m.auth,
		UserService:    m.users,
		AppInfoService: m.appInfo,
	}, time.Second, logger.Nop())

	return h.Init(), m
}

// authenticateAs makes the authenticator accept token as user.
func (m serviceMocks) authenticateAs(token string, user models.User) {
	m.authenticator.EXPECT().Authenticate(gomock.Any(), token).Return(user, nil)
}

// doRequest serves one request. headers are key/value pairs.
func doRequest(h http.Handler, method, target string, body io.Reader, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) []string {
	return []string{"Authorization", "Bearer " + token}
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[models.ErrorResponse](t, rec).Detail
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[models.MessageResponse](t, rec).Message
}

var (
	testUser = models.User{
		ID:        7,
		Username:  "alice_wonder",
		Email:     "alice@example.com",
		Role:      models.RoleUser,
		IsActive:  true,
		Confirmed: true,
	}
	testAdmin = models.User{
		ID:        1,
		Username:  "root_admin",
		Email:     "admin@example.com",
		Role:      models.RoleAdmin,
		IsActive:  true,
		Confirmed: true,
	}
)
