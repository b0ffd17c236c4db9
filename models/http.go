package models

import "io"

// SignUpRequest is the body of POST /api/auth/signup.
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest carries a single e-mail address. Used by request_email,
// forgot_password and the administrative ban/activate/assign_role endpoints.
type EmailRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of POST /api/auth/reset_password.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// EditProfileRequest is the multipart form of PATCH /api/users/me.
// Nil fields are left unchanged.
type EditProfileRequest struct {
	Username    *string
	Description *string

	// Avatar is the uploaded image, nil when no file was sent.
	Avatar io.Reader

	// AvatarFilename is the client-side file name of Avatar.
	AvatarFilename string
}

// ListUsersRequest holds pagination parameters of GET /api/users.
type ListUsersRequest struct {
	Skip  uint64
	Limit uint64
}
