package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-photo-share/models"
)

// Field names accepted by [UserValidator.Validate].
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldNewPassword = "new_password"
	FieldToken       = "token"
	FieldRole        = "role"
	FieldDescription = "description"
)

// Length bounds of user-supplied credentials. MaxPasswordBytes is the input
// limit of bcrypt.
const (
	MinUsernameLength   = 5
	MaxUsernameLength   = 25
	MinPasswordLength   = 6
	MaxPasswordLength   = 30
	MaxPasswordBytes    = 72
	MaxDescriptionChars = 500
)

// UserValidator validates the account related request models:
// SignUpRequest, LoginRequest, EmailRequest, ResetPasswordRequest,
// EditProfileRequest and Role. Value and pointer forms are accepted.
type UserValidator struct{}

// NewUserValidator returns the user validator as a [Validator].
func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignUpRequest:
		return v.validateSignUp(value, fields...)
	case *models.SignUpRequest:
		return v.validateSignUp(*value, fields...)
	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)
	case models.EmailRequest:
		return validateEmail(value.Email)
	case *models.EmailRequest:
		return validateEmail(value.Email)
	case models.ResetPasswordRequest:
		return v.validateResetPassword(value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateResetPassword(*value, fields...)
	case models.EditProfileRequest:
		return v.validateEditProfile(value, fields...)
	case *models.EditProfileRequest:
		return v.validateEditProfile(*value, fields...)
	case models.Role:
		return validateRole(value)
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateSignUp(request models.SignUpRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldUsername:
			err = validateUsername(request.Username)
		case FieldEmail:
			err = validateEmail(request.Email)
		case FieldPassword:
			err = validatePassword(request.Password)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// Login only requires a well-formed email and a non-empty password so that a
// wrong password never leaks the length rules.
func (v *UserValidator) validateLogin(request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := validateEmail(request.Email); err != nil {
				return err
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrEmptyPassword
			}
			if len(request.Password) > MaxPasswordBytes {
				return ErrPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateResetPassword(request models.ResetPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldToken, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldToken:
			if strings.TrimSpace(request.Token) == "" {
				return ErrEmptyToken
			}
		case FieldNewPassword:
			if err := validatePassword(request.NewPassword); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateEditProfile(request models.EditProfileRequest, fields ...string) error {
	if request.Username == nil && request.Description == nil && request.Avatar == nil {
		return ErrNoFieldsToUpdate
	}

	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldDescription}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if request.Username == nil {
				continue
			}
			if err := validateUsername(*request.Username); err != nil {
				return err
			}
		case FieldDescription:
			if request.Description != nil && utf8.RuneCountInString(*request.Description) > MaxDescriptionChars {
				return ErrDescriptionTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return ErrInvalidUsername
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

func validateRole(role models.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	return nil
}
