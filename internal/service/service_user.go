package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-photo-share/internal/adapter"
	"github.com/MKhiriev/go-photo-share/internal/app"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/store"
	"github.com/MKhiriev/go-photo-share/internal/utils"
	"github.com/MKhiriev/go-photo-share/internal/validators"
	"github.com/MKhiriev/go-photo-share/models"
)

// Pagination bounds of ListUsers.
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// avatarFolder prefixes the public id of every avatar in the object storage.
const avatarFolder = "Photoshare/"

type userService struct {
	users   store.UserRepository
	cache   store.UserCache
	storage adapter.ObjectStorage

	validator validators.Validator

	logger *logger.Logger
}

// NewUserService constructs the UserService.
func NewUserService(storages *store.Storages, storage adapter.ObjectStorage, logger *logger.Logger) UserService {
	return &userService{
		users:     storages.UserRepository,
		cache:     storages.UserCache,
		storage:   storage,
		validator: validators.NewUserValidator(),
		logger:    logger,
	}
}

func (s *userService) Me(ctx context.Context) (models.User, error) {
	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		return models.User{}, ErrInvalidToken
	}
	return user, nil
}

// EditProfile updates username, description and avatar of current. The
// avatar is uploaded first and stored as its transformed delivery URL.
func (s *userService) EditProfile(ctx context.Context, current models.User, req models.EditProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("error during profile validation: %w", err)
	}

	update := models.ProfileUpdate{Description: req.Description}

	if req.Username != nil && *req.Username != current.Username {
		_, err := s.users.GetUserByUsername(ctx, *req.Username)
		switch {
		case err == nil:
			return models.User{}, ErrUsernameExists
		case !errors.Is(err, store.ErrNoUserWasFound):
			return models.User{}, fmt.Errorf("user search by username failed: %w", err)
		}
		update.Username = req.Username
	}

	if req.Avatar != nil {
		result, err := s.storage.Upload(ctx, req.Avatar, req.AvatarFilename, avatarFolder+current.Username)
		if err != nil {
			log.Err(err).Str("func", "*userService.EditProfile").Int64("user_id", current.ID).Msg("avatar upload failed")
			return models.User{}, fmt.Errorf("%w: %w", ErrAvatarUploadFailed, err)
		}
		avatar := s.storage.URL(result, models.AvatarTransformation)
		update.Avatar = &avatar
	}

	if update.IsEmpty() {
		return current, nil
	}

	var updated models.User
	err := invalidateAround(ctx, s.cache, current.Email, func() error {
		var err error
		updated, err = s.users.UpdateProfile(ctx, current.ID, update)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrUsernameAlreadyExists):
				return ErrUsernameExists
			case errors.Is(err, store.ErrNoUserWasFound):
				return ErrUserNotFound
			}
			log.Err(err).Str("func", "*userService.EditProfile").Msg("profile update failed")
			return fmt.Errorf("profile update failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	return updated, nil
}

// ListUsers returns one page of users ordered by id. A zero limit selects
// DefaultListLimit; larger limits are capped at MaxListLimit.
func (s *userService) ListUsers(ctx context.Context, req models.ListUsersRequest) ([]models.User, error) {
	limit := req.Limit
	switch {
	case limit == 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	users, err := s.users.ListUsers(ctx, req.Skip, limit)
	if err != nil {
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	return users, nil
}

func (s *userService) Profile(ctx context.Context, username string) (models.UserProfile, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.UserProfile{}, ErrUserNotFound
		}
		return models.UserProfile{}, fmt.Errorf("user search by username failed: %w", err)
	}

	return models.NewUserProfile(user), nil
}

// Ban deactivates the account of email. Administrators cannot ban themselves.
func (s *userService) Ban(ctx context.Context, admin models.User, email string) (string, error) {
	if err := s.setActive(ctx, admin, email, false); err != nil {
		return "", err
	}
	return app.MsgUserNotActive, nil
}

// Activate lifts a ban.
func (s *userService) Activate(ctx context.Context, admin models.User, email string) (string, error) {
	if err := s.setActive(ctx, admin, email, true); err != nil {
		return "", err
	}
	return app.MsgUserIsActive, nil
}

func (s *userService) setActive(ctx context.Context, admin models.User, email string, active bool) error {
	if err := s.validator.Validate(ctx, models.EmailRequest{Email: email}); err != nil {
		return fmt.Errorf("error during email validation: %w", err)
	}

	target, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	if target.Email == admin.Email {
		return ErrSelfModeration
	}
	if target.IsActive == active {
		if active {
			return ErrUserAlreadyActive
		}
		return ErrUserAlreadyNotActive
	}

	err = invalidateAround(ctx, s.cache, email, func() error {
		if err := s.users.SetActive(ctx, email, active); err != nil {
			return fmt.Errorf("changing user activity failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info().
		Int64("admin_id", admin.ID).
		Int64("user_id", target.ID).
		Bool("active", active).
		Msg("user activity changed")

	return nil
}

// AssignRole grants role to the account of email.
func (s *userService) AssignRole(ctx context.Context, email string, role models.Role) (string, error) {
	if err := s.validator.Validate(ctx, role); err != nil {
		return "", fmt.Errorf("error during role validation: %w", err)
	}
	if err := s.validator.Validate(ctx, models.EmailRequest{Email: email}); err != nil {
		return "", fmt.Errorf("error during email validation: %w", err)
	}

	target, err := s.findByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if target.Role == role {
		return app.MsgRoleAlreadyExists, nil
	}

	err = invalidateAround(ctx, s.cache, email, func() error {
		if err := s.users.SetRole(ctx, email, role); err != nil {
			return fmt.Errorf("changing user role failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s %s", app.MsgRoleChangedTo, role), nil
}

func (s *userService) findByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}
	return user, nil
}
