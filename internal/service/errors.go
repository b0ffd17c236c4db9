package service

import (
	"errors"

	"github.com/MKhiriev/go-photo-share/internal/app"
)

// Sentinel errors of the service layer. Their text is the message returned
// to the client.
var (
	ErrInvalidToken        = errors.New(app.MsgCouldNotValidateCredentials)
	ErrInvalidScope        = errors.New(app.MsgInvalidScope)
	ErrRevokedToken        = errors.New(app.MsgCouldNotValidateCredentials)
	ErrInvalidRefreshToken = errors.New(app.MsgInvalidRefreshToken)
	ErrTokenCreationFailed = errors.New(app.MsgTokenCreationFailed)

	ErrUserNotFound      = errors.New(app.MsgNotFound)
	ErrInvalidEmail      = errors.New(app.MsgInvalidEmail)
	ErrInvalidPassword   = errors.New(app.MsgInvalidPassword)
	ErrEmailNotConfirmed = errors.New(app.MsgEmailNotConfirmed)
	ErrUserNotActive     = errors.New(app.MsgUserNotActive)

	ErrEmailExists    = errors.New(app.MsgAccountAlreadyExists)
	ErrUsernameExists = errors.New(app.MsgUsernameAlreadyTaken)
	ErrVerification   = errors.New(app.MsgVerificationError)

	ErrForbidden            = errors.New(app.MsgAccessDenied)
	ErrSelfModeration       = errors.New(app.MsgSelfModeration)
	ErrUserAlreadyActive    = errors.New(app.MsgUserAlreadyActive)
	ErrUserAlreadyNotActive = errors.New(app.MsgUserAlreadyNotActive)
	ErrAvatarUploadFailed   = errors.New(app.MsgAvatarUploadFailed)

	ErrInvalidDataProvided   = errors.New(app.MsgInvalidDataProvided)
	ErrVersionIsNotSpecified = errors.New(app.MsgVersionIsNotSpecified)
)
