// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings of the photo-share
// API.
//
// Msg* constants are written into the "message" field of successful
// responses and the "detail" field of error responses. The service layer
// builds its sentinel errors from them, so an error's text is exactly what
// the client sees.
package app

// Authentication.
const (
	MsgCouldNotValidateCredentials = "Could not validate credentials"
	MsgInvalidScope                = "Invalid scope for token"
	MsgInvalidRefreshToken         = "Invalid refresh token"
	MsgInvalidEmail                = "Invalid email"
	MsgInvalidPassword             = "Invalid credentials"
	MsgEmailNotConfirmed           = "Email is not confirmed"
	MsgLoggedOut                   = "Successfully logged out!"
)

// Registration and e-mail verification.
const (
	MsgAccountAlreadyExists  = "Account already exists"
	MsgUsernameAlreadyTaken  = "Username already taken"
	MsgUserCreated           = "User successfully created. Check your email for confirmation."
	MsgVerificationError     = "Verification error"
	MsgEmailAlreadyConfirmed = "Your email is already confirmed"
	MsgEmailConfirmed        = "Email successfully confirmed"
	MsgCheckYourEmail        = "Check your email for confirmation."
	MsgEmailHasBeenSent      = "Email has been send"
	MsgPasswordReset         = "Password reset successfully"
)

// User administration.
const (
	MsgUserNotActive        = "User is banned"
	MsgUserAlreadyNotActive = "User already is banned"
	MsgUserIsActive         = "User is active"
	MsgUserAlreadyActive    = "User is already active"
	MsgSelfModeration       = "You can't change your own activity"
	MsgRoleAlreadyExists    = "Role is already exists"
	MsgRoleChangedTo        = "User role changed to"
	MsgOperationForbidden   = "Operation forbidden"
	MsgAccessDenied         = "Access denied. You don't have permission for this action."
	MsgNotFound             = "Not Found"
	MsgAvatarUploadFailed   = "Avatar upload failed"
)

// Generic.
const (
	MsgInvalidDataProvided   = "invalid data provided"
	MsgInternalServerError   = "internal server error"
	MsgServiceUnavailable    = "service temporarily unavailable"
	MsgVersionIsNotSpecified = "version is not specified"
	MsgTokenCreationFailed   = "token creation failed"
	MsgRequestTimeout        = "request timed out"
)
