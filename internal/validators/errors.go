package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername    = errors.New("username must be between 5 and 25 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPassword    = errors.New("password must be between 6 and 30 characters")
	ErrPasswordTooLong    = errors.New("password must not exceed 72 bytes")
	ErrEmptyPassword      = errors.New("password is required")
	ErrEmptyToken         = errors.New("token is required")
	ErrInvalidRole        = errors.New("invalid role")
	ErrDescriptionTooLong = errors.New("description must not exceed 500 characters")
	ErrNoFieldsToUpdate   = errors.New("at least one field must be provided for update")
)
