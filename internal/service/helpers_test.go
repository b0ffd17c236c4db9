package service

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/config"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/mock"
	"github.com/MKhiriev/go-photo-share/internal/store"
	"github.com/MKhiriev/go-photo-share/models"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

// storeMocks bundles the store doubles shared by the service tests.
type storeMocks struct {
	users     *mock.MockUserRepository
	blacklist *mock.MockBlacklistRepository
	cache     *mock.MockUserCache
	storages  *store.Storages
}

func newStoreMocks(ctrl *gomock.Controller) storeMocks {
	m := storeMocks{
		users:     mock.NewMockUserRepository(ctrl),
		blacklist: mock.NewMockBlacklistRepository(ctrl),
		cache:     mock.NewMockUserCache(ctrl),
	}
	m.storages = &store.Storages{
		UserRepository:      m.users,
		BlacklistRepository: m.blacklist,
		UserCache:           m.cache,
	}
	return m
}

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:    "test-sign-key",
		TokenIssuer:     "go-photo-share-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		EmailTokenTTL:   time.Hour,
		BcryptCost:      bcrypt.MinCost,
		Version:         "1.0.0",
	}
}

func newTestTokens() TokenService {
	return NewTokenService(testAppConfig(), logger.Nop())
}

func decodedToken(email string, exp time.Time) models.Token {
	return models.Token{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Scope: models.PurposeAccess,
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

func activeUser() models.User {
	return models.User{
		ID:        7,
		Username:  "alice_wonder",
		Email:     "alice@example.com",
		Role:      models.RoleUser,
		IsActive:  true,
		Confirmed: true,
	}
}

func strPtr(s string) *string { return &s }
