package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-photo-share/internal/app"
	"github.com/MKhiriev/go-photo-share/internal/config"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/store"
	"github.com/MKhiriev/go-photo-share/internal/utils"
	"github.com/MKhiriev/go-photo-share/models"
)

// authService is the concrete implementation of AuthService.
type authService struct {
	users     store.UserRepository
	blacklist store.BlacklistRepository
	cache     store.UserCache

	tokens TokenService
	emails EmailDispatcher

	// bcryptCost is the work factor of new password hashes.
	bcryptCost int

	// publicBaseURL overrides the request base URL in e-mail links when set.
	publicBaseURL string

	logger *logger.Logger
}

// NewAuthService constructs the AuthService. The returned service is safe for
// concurrent use; all state is read-only after construction.
//
// Without cfg.Server.PublicBaseURL, links in e-mails are built from the Host
// and X-Forwarded-Proto headers of the request, which the client controls.
// A warning is logged in that case.
func NewAuthService(storages *store.Storages, tokens TokenService, emails EmailDispatcher, cfg config.StructuredConfig, logger *logger.Logger) AuthService {
	if cfg.Server.PublicBaseURL == "" {
		logger.Warn().Str("func", "NewAuthService").
			Msg("public base URL is not set, e-mail links will use the request Host header")
	}

	return &authService{
		users:         storages.UserRepository,
		blacklist:     storages.BlacklistRepository,
		cache:         storages.UserCache,
		tokens:        tokens,
		emails:        emails,
		bcryptCost:    cfg.App.BcryptCost,
		publicBaseURL: cfg.Server.PublicBaseURL,
		logger:        logger,
	}
}

// SignUp registers a new account and sends the confirmation e-mail in the
// background. The very first account becomes an administrator.
//
// Returns ErrEmailExists or ErrUsernameExists when the address or the
// username is taken.
func (a *authService) SignUp(ctx context.Context, req models.SignUpRequest, baseURL string) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.ensureAvailable(ctx, req.Email, req.Username); err != nil {
		return models.User{}, err
	}

	hash, err := utils.HashPassword(req.Password, a.bcryptCost)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		log.Err(err).Str("func", "*authService.SignUp").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.users.CreateUser(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailAlreadyExists):
			return models.User{}, ErrEmailExists
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			return models.User{}, ErrUsernameExists
		}
		log.Err(err).Str("func", "*authService.SignUp").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.sendEmail(ctx, models.EmailConfirmation, user, baseURL)

	log.Info().Int64("user_id", user.ID).Str("role", user.Role.String()).Msg("user signed up")
	return user, nil
}

func (a *authService) ensureAvailable(ctx context.Context, email, username string) error {
	_, err := a.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailExists
	case !errors.Is(err, store.ErrNoUserWasFound):
		return fmt.Errorf("user search by email failed: %w", err)
	}

	_, err = a.users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUsernameExists
	case !errors.Is(err, store.ErrNoUserWasFound):
		return fmt.Errorf("user search by username failed: %w", err)
	}

	return nil
}

// Login checks the credentials in a fixed order: unknown e-mail, unconfirmed
// e-mail, banned account, wrong password. On success a fresh token pair is
// issued and the refresh token is stored.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	user, err := a.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.TokenPair{}, ErrInvalidEmail
		}
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.Confirmed {
		return models.TokenPair{}, ErrEmailNotConfirmed
	}
	if !user.IsActive {
		return models.TokenPair{}, ErrUserNotActive
	}
	if !utils.VerifyPassword(user.PasswordHash, req.Password) {
		log.Warn().Int64("user_id", user.ID).Msg("wrong password")
		return models.TokenPair{}, ErrInvalidPassword
	}

	return a.issuePair(ctx, user)
}

// Logout revokes accessToken until its own expiry.
func (a *authService) Logout(ctx context.Context, accessToken string) error {
	token, err := a.tokens.Decode(ctx, accessToken, models.PurposeAccess)
	if err != nil {
		return err
	}

	if err = a.blacklist.Add(ctx, accessToken, token.Expiry()); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Msg("token revocation failed")
		return fmt.Errorf("token revocation failed: %w", err)
	}

	return nil
}

// Refresh exchanges the stored refresh token for a new pair. A token that
// does not match the stored one is treated as replayed: the stored token is
// cleared so the user has to log in again. Banned accounts get
// ErrUserNotActive.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	token, err := a.tokens.Decode(ctx, refreshToken, models.PurposeRefresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := a.users.GetUserByEmail(ctx, token.Email())
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.TokenPair{}, ErrInvalidToken
		}
		return models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.IsActive {
		return models.TokenPair{}, ErrUserNotActive
	}

	if user.RefreshToken == nil || subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(refreshToken)) != 1 {
		log.Warn().Int64("user_id", user.ID).Msg("refresh token mismatch, revoking stored token")
		if err = a.users.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
			log.Err(err).Str("func", "*authService.Refresh").Msg("clearing refresh token failed")
		}
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, ErrInvalidToken)
	}

	return a.issuePair(ctx, user)
}

func (a *authService) issuePair(ctx context.Context, user models.User) (models.TokenPair, error) {
	access, err := a.tokens.Issue(ctx, user.Email, models.PurposeAccess)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := a.tokens.Issue(ctx, user.Email, models.PurposeRefresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	stored := refresh.String()
	if err = a.users.UpdateRefreshToken(ctx, user.ID, &stored); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.issuePair").Msg("storing refresh token failed")
		return models.TokenPair{}, fmt.Errorf("storing refresh token failed: %w", err)
	}

	return models.TokenPair{
		AccessToken:  access.String(),
		RefreshToken: stored,
		TokenType:    models.TokenTypeBearer,
	}, nil
}

// ConfirmEmail marks the subject of an e-mail token as confirmed.
// Confirming twice is not an error.
func (a *authService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	user, _, err := a.userFromEmailToken(ctx, token)
	if err != nil {
		return "", err
	}

	if user.Confirmed {
		return app.MsgEmailAlreadyConfirmed, nil
	}

	err = invalidateAround(ctx, a.cache, user.Email, func() error {
		if err := a.users.SetConfirmed(ctx, user.Email); err != nil {
			return fmt.Errorf("email confirmation failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return app.MsgEmailConfirmed, nil
}

// RequestEmail resends the confirmation e-mail. Unknown addresses get the
// same answer as known ones.
func (a *authService) RequestEmail(ctx context.Context, req models.EmailRequest, baseURL string) (string, error) {
	user, err := a.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return app.MsgCheckYourEmail, nil
		}
		return "", fmt.Errorf("user search by email failed: %w", err)
	}

	if user.Confirmed {
		return app.MsgEmailConfirmed, nil
	}

	a.sendEmail(ctx, models.EmailConfirmation, user, baseURL)
	return app.MsgCheckYourEmail, nil
}

// ForgotPassword sends a password reset e-mail. The answer is the same
// whether the address is registered or not.
func (a *authService) ForgotPassword(ctx context.Context, req models.EmailRequest, baseURL string) (string, error) {
	user, err := a.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return app.MsgEmailHasBeenSent, nil
		}
		return "", fmt.Errorf("user search by email failed: %w", err)
	}

	a.sendEmail(ctx, models.EmailPasswordReset, user, baseURL)
	return app.MsgEmailHasBeenSent, nil
}

// ResetPassword sets a new password for the subject of an e-mail token and
// clears the stored refresh token, so other sessions have to log in again.
// A token works for one reset only: after the password is stored it is
// revoked until its own expiry.
func (a *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (string, error) {
	log := logger.FromContext(ctx)

	user, decoded, err := a.userFromEmailToken(ctx, req.Token)
	if err != nil {
		return "", err
	}

	used, err := a.blacklist.Contains(ctx, req.Token)
	if err != nil {
		return "", fmt.Errorf("token revocation check failed: %w", err)
	}
	if used {
		return "", fmt.Errorf("%w: %w", ErrVerification, ErrRevokedToken)
	}

	hash, err := utils.HashPassword(req.NewPassword, a.bcryptCost)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		return "", fmt.Errorf("password hashing failed: %w", err)
	}

	err = invalidateAround(ctx, a.cache, user.Email, func() error {
		if err := a.users.UpdatePassword(ctx, user.Email, hash); err != nil {
			log.Err(err).Str("func", "*authService.ResetPassword").Msg("password update failed")
			return fmt.Errorf("password update failed: %w", err)
		}
		if err := a.users.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
			log.Err(err).Str("func", "*authService.ResetPassword").Msg("clearing refresh token failed")
			return fmt.Errorf("clearing refresh token failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if err = a.blacklist.Add(ctx, req.Token, decoded.Expiry()); err != nil {
		log.Err(err).Str("func", "*authService.ResetPassword").Int64("user_id", user.ID).Msg("reset token revocation failed")
	}

	return app.MsgPasswordReset, nil
}

// userFromEmailToken decodes an e-mail purpose token and loads its subject.
// Every failure is reported as ErrVerification.
func (a *authService) userFromEmailToken(ctx context.Context, token string) (models.User, models.Token, error) {
	decoded, err := a.tokens.Decode(ctx, token, models.PurposeEmail)
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrVerification, err)
	}

	user, err := a.users.GetUserByEmail(ctx, decoded.Email())
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, models.Token{}, ErrVerification
		}
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	return user, decoded, nil
}

// sendEmail issues an e-mail token for user and hands the job to the
// dispatcher. Failures are logged; the calling flow still succeeds.
func (a *authService) sendEmail(ctx context.Context, kind models.EmailKind, user models.User, baseURL string) {
	token, err := a.tokens.Issue(ctx, user.Email, models.PurposeEmail)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.sendEmail").Str("kind", string(kind)).Msg("email token creation failed")
		return
	}

	host := baseURL
	if a.publicBaseURL != "" {
		host = a.publicBaseURL
	}

	a.emails.Dispatch(ctx, models.EmailJob{
		Kind:     kind,
		To:       user.Email,
		Username: user.Username,
		Token:    token.String(),
		Host:     host,
	})
}
