package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/app"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/mock"
	"github.com/MKhiriev/go-photo-share/internal/store"
	"github.com/MKhiriev/go-photo-share/internal/utils"
	"github.com/MKhiriev/go-photo-share/internal/validators"
	"github.com/MKhiriev/go-photo-share/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestUserService(ctrl *gomock.Controller) (UserService, storeMocks, *mock.MockObjectStorage) {
	m := newStoreMocks(ctrl)
	storage := mock.NewMockObjectStorage(ctrl)
	return NewUserService(m.storages, storage, logger.Nop()), m, storage
}

func adminUser() models.User {
	return models.User{
		ID:        1,
		Username:  "root_admin",
		Email:     "admin@example.com",
		Role:      models.RoleAdmin,
		IsActive:  true,
		Confirmed: true,
	}
}

// ── Me ──────────────────────────────────────────────────────────────────────

func TestUserService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestUserService(ctrl)

	_, err := svc.Me(context.Background())
	assert.ErrorIs(t, err, ErrInvalidToken)

	ctx := utils.WithUser(context.Background(), activeUser())
	user, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, activeUser(), user)
}

// ── EditProfile ─────────────────────────────────────────────────────────────

func TestUserService_EditProfile_WithAvatar(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m, storage := newTestUserService(ctrl)
	ctx := context.Background()

	current := activeUser()
	uploaded := models.UploadResult{PublicID: "Photoshare/alice_wonder", Version: 42}
	avatarURL := "https://res.cloudinary.com/demo/image/upload/c_fill,h_250,w_250/v42/Photoshare/alice_wonder"

	req := models.EditProfileRequest{
		Username:       strPtr("alice_renamed"),
		Description:    strPtr("hello"),
		Avatar:         strings.NewReader("png-bytes"),
		AvatarFilename: "me.png",
	}

	gomock.InOrder(
		m.users.EXPECT().GetUserByUsername(ctx, "alice_renamed").Return(models.User{}, store.ErrNoUserWasFound),
		storage.EXPECT().Upload(ctx, req.Avatar, "me.png", "Photoshare/alice_wonder").Return(uploaded, nil),
		storage.EXPECT().URL(uploaded, models.AvatarTransformation).Return(avatarURL),
		m.cache.EXPECT().Invalidate(ctx, current.Email).Return(nil),
		m.users.EXPECT().UpdateProfile(ctx, current.ID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, update models.ProfileUpdate) (models.User, error) {
				require.NotNil(t, update.Avatar)
				assert.Equal(t, avatarURL, *update.Avatar)
				assert.Equal(t, "alice_renamed", *update.Username)
				assert.Equal(t, "hello", *update.Description)

				updated := current
				updated.Username = *update.Username
				updated.Description = update.Description
				updated.Avatar = update.Avatar
				return updated, nil
			}),
		m.cache.EXPECT().Invalidate(ctx, current.Email).Return(nil),
	)

	updated, err := svc.EditProfile(ctx, current, req)

	require.NoError(t, err)
	assert.Equal(t, "alice_renamed", updated.Username)
	assert.Equal(t, avatarURL, *updated.Avatar)
}

func TestUserService_EditProfile_SameUsernameIsNotAChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestUserService(ctrl)
	current := activeUser()

	updated, err := svc.EditProfile(context.Background(), current, models.EditProfileRequest{Username: strPtr(current.Username)})

	require.NoError(t, err)
	assert.Equal(t, current, updated)
}

func TestUserService_EditProfile_Errors(t *testing.T) {
	ctx := context.Background()
	current := activeUser()

	t.Run("nothing to update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newTestUserService(ctrl)

		_, err := svc.EditProfile(ctx, current, models.EditProfileRequest{})
		assert.ErrorIs(t, err, validators.ErrNoFieldsToUpdate)
	})

	t.Run("invalid username", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newTestUserService(ctrl)

		_, err := svc.EditProfile(ctx, current, models.EditProfileRequest{Username: strPtr("abc")})
		assert.ErrorIs(t, err, validators.ErrInvalidUsername)
	})

	t.Run("username taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)
		m.users.EXPECT().GetUserByUsername(ctx, "bob_builder").Return(models.User{ID: 9}, nil)

		_, err := svc.EditProfile(ctx, current, models.EditProfileRequest{Username: strPtr("bob_builder")})
		assert.ErrorIs(t, err, ErrUsernameExists)
	})

	t.Run("upload fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, storage := newTestUserService(ctrl)
		storage.EXPECT().Upload(ctx, gomock.Any(), "me.png", "Photoshare/alice_wonder").
			Return(models.UploadResult{}, errors.New("cloud down"))
		m.users.EXPECT().UpdateProfile(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.EditProfile(ctx, current, models.EditProfileRequest{Avatar: strings.NewReader("x"), AvatarFilename: "me.png"})
		assert.ErrorIs(t, err, ErrAvatarUploadFailed)
	})

	t.Run("lost the username race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)
		m.users.EXPECT().GetUserByUsername(ctx, "bob_builder").Return(models.User{}, store.ErrNoUserWasFound)
		m.cache.EXPECT().Invalidate(ctx, current.Email).Return(nil)
		m.users.EXPECT().UpdateProfile(ctx, current.ID, gomock.Any()).Return(models.User{}, store.ErrUsernameAlreadyExists)

		_, err := svc.EditProfile(ctx, current, models.EditProfileRequest{Username: strPtr("bob_builder")})
		assert.ErrorIs(t, err, ErrUsernameExists)
	})
}

// ── ListUsers / Profile ─────────────────────────────────────────────────────

func TestUserService_ListUsers_ClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		req       models.ListUsersRequest
		wantSkip  uint64
		wantLimit uint64
	}{
		{name: "default limit", req: models.ListUsersRequest{}, wantSkip: 0, wantLimit: DefaultListLimit},
		{name: "explicit limit", req: models.ListUsersRequest{Skip: 20, Limit: 5}, wantSkip: 20, wantLimit: 5},
		{name: "capped limit", req: models.ListUsersRequest{Limit: 1000}, wantSkip: 0, wantLimit: MaxListLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, m, _ := newTestUserService(ctrl)
			m.users.EXPECT().ListUsers(gomock.Any(), tt.wantSkip, tt.wantLimit).Return([]models.User{activeUser()}, nil)

			users, err := svc.ListUsers(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Len(t, users, 1)
		})
	}
}

func TestUserService_Profile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m, _ := newTestUserService(ctrl)
	ctx := context.Background()

	m.users.EXPECT().GetUserByUsername(ctx, "alice_wonder").Return(activeUser(), nil)
	m.users.EXPECT().GetUserByUsername(ctx, "nobody_here").Return(models.User{}, store.ErrNoUserWasFound)

	profile, err := svc.Profile(ctx, "alice_wonder")
	require.NoError(t, err)
	assert.Equal(t, "alice_wonder", profile.Username)
	assert.True(t, profile.IsActive)

	_, err = svc.Profile(ctx, "nobody_here")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ── Ban / Activate ──────────────────────────────────────────────────────────

func TestUserService_Ban(t *testing.T) {
	ctx := context.Background()
	admin := adminUser()

	t.Run("bans and invalidates cache around the write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)

		gomock.InOrder(
			m.users.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(activeUser(), nil),
			m.cache.EXPECT().Invalidate(ctx, "alice@example.com").Return(nil),
			m.users.EXPECT().SetActive(ctx, "alice@example.com", false).Return(nil),
			m.cache.EXPECT().Invalidate(ctx, "alice@example.com").Return(nil),
		)

		msg, err := svc.Ban(ctx, admin, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, app.MsgUserNotActive, msg)
	})

	t.Run("self moderation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)
		m.users.EXPECT().GetUserByEmail(ctx, admin.Email).Return(admin, nil)

		_, err := svc.Ban(ctx, admin, admin.Email)
		assert.ErrorIs(t, err, ErrSelfModeration)
	})

	t.Run("already banned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)
		banned := activeUser()
		banned.IsActive = false
		m.users.EXPECT().GetUserByEmail(ctx, banned.Email).Return(banned, nil)

		_, err := svc.Ban(ctx, admin, banned.Email)
		assert.ErrorIs(t, err, ErrUserAlreadyNotActive)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)
		m.users.EXPECT().GetUserByEmail(ctx, "ghost@example.com").Return(models.User{}, store.ErrNoUserWasFound)

		_, err := svc.Ban(ctx, admin, "ghost@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("cache down aborts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)
		m.users.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(activeUser(), nil)
		m.cache.EXPECT().Invalidate(ctx, "alice@example.com").Return(store.ErrCacheUnavailable)
		m.users.EXPECT().SetActive(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Ban(ctx, admin, "alice@example.com")
		assert.ErrorIs(t, err, store.ErrCacheUnavailable)
	})

	t.Run("cache down after the write is reported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)
		gomock.InOrder(
			m.users.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(activeUser(), nil),
			m.cache.EXPECT().Invalidate(ctx, "alice@example.com").Return(nil),
			m.users.EXPECT().SetActive(ctx, "alice@example.com", false).Return(nil),
			m.cache.EXPECT().Invalidate(ctx, "alice@example.com").Return(store.ErrCacheUnavailable),
		)

		_, err := svc.Ban(ctx, admin, "alice@example.com")
		assert.ErrorIs(t, err, store.ErrCacheUnavailable)
	})
}

// An authentication that reads the row while the ban is being written must
// not leave an active snapshot behind once Ban returns.
func TestUserService_Ban_ConcurrentAuthenticationDoesNotRecacheActiveUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	cache := store.NewRedisUserCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), logger.Nop())

	users := mock.NewMockUserRepository(ctrl)
	blacklist := mock.NewMockBlacklistRepository(ctrl)
	storages := &store.Storages{UserRepository: users, BlacklistRepository: blacklist, UserCache: cache}

	tokens := newTestTokens()
	authn := NewAuthenticator(tokens, storages, 15*time.Minute, logger.Nop())
	svc := NewUserService(storages, mock.NewMockObjectStorage(ctrl), logger.Nop())

	access, err := tokens.Issue(ctx, "alice@example.com", models.PurposeAccess)
	require.NoError(t, err)

	row := activeUser()
	users.EXPECT().GetUserByEmail(gomock.Any(), row.Email).DoAndReturn(
		func(context.Context, string) (models.User, error) { return row, nil }).AnyTimes()
	blacklist.EXPECT().Contains(gomock.Any(), access.String()).Return(false, nil).AnyTimes()

	users.EXPECT().SetActive(ctx, row.Email, false).DoAndReturn(
		func(context.Context, string, bool) error {
			// the request lands between the first invalidation and the write
			_, err := authn.Authenticate(ctx, access.String())
			require.NoError(t, err)
			_, cached, err := cache.Get(ctx, row.Email)
			require.NoError(t, err)
			require.True(t, cached)

			row.IsActive = false
			return nil
		})

	_, err = svc.Ban(ctx, adminUser(), row.Email)
	require.NoError(t, err)

	_, cached, err := cache.Get(ctx, row.Email)
	require.NoError(t, err)
	assert.False(t, cached)

	_, err = authn.Authenticate(ctx, access.String())
	assert.ErrorIs(t, err, ErrUserNotActive)
}

func TestUserService_Activate(t *testing.T) {
	ctx := context.Background()
	admin := adminUser()

	t.Run("activates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)
		banned := activeUser()
		banned.IsActive = false

		m.users.EXPECT().GetUserByEmail(ctx, banned.Email).Return(banned, nil)
		m.cache.EXPECT().Invalidate(ctx, banned.Email).Return(nil).Times(2)
		m.users.EXPECT().SetActive(ctx, banned.Email, true).Return(nil)

		msg, err := svc.Activate(ctx, admin, banned.Email)
		require.NoError(t, err)
		assert.Equal(t, app.MsgUserIsActive, msg)
	})

	t.Run("already active", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)
		m.users.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(activeUser(), nil)

		_, err := svc.Activate(ctx, admin, "alice@example.com")
		assert.ErrorIs(t, err, ErrUserAlreadyActive)
	})
}

// ── AssignRole ──────────────────────────────────────────────────────────────

func TestUserService_AssignRole(t *testing.T) {
	ctx := context.Background()

	t.Run("changes role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)

		gomock.InOrder(
			m.users.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(activeUser(), nil),
			m.cache.EXPECT().Invalidate(ctx, "alice@example.com").Return(nil),
			m.users.EXPECT().SetRole(ctx, "alice@example.com", models.RoleModerator).Return(nil),
			m.cache.EXPECT().Invalidate(ctx, "alice@example.com").Return(nil),
		)

		msg, err := svc.AssignRole(ctx, "alice@example.com", models.RoleModerator)
		require.NoError(t, err)
		assert.Equal(t, "User role changed to moderator", msg)
	})

	t.Run("same role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)
		m.users.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(activeUser(), nil)

		msg, err := svc.AssignRole(ctx, "alice@example.com", models.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, app.MsgRoleAlreadyExists, msg)
	})

	t.Run("unknown role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newTestUserService(ctrl)

		_, err := svc.AssignRole(ctx, "alice@example.com", models.Role("owner"))
		assert.ErrorIs(t, err, validators.ErrInvalidRole)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, m, _ := newTestUserService(ctrl)
		m.users.EXPECT().GetUserByEmail(ctx, "ghost@example.com").Return(models.User{}, store.ErrNoUserWasFound)

		_, err := svc.AssignRole(ctx, "ghost@example.com", models.RoleModerator)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_ModerationRejectsInvalidEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestUserService(ctrl)
	ctx := context.Background()

	_, err := svc.Ban(ctx, adminUser(), "")
	assert.ErrorIs(t, err, validators.ErrInvalidEmail)

	_, err = svc.Activate(ctx, adminUser(), "not-an-email")
	assert.ErrorIs(t, err, validators.ErrInvalidEmail)

	_, err = svc.AssignRole(ctx, "not-an-email", models.RoleModerator)
	assert.ErrorIs(t, err, validators.ErrInvalidEmail)
}
