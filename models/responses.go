package models

// MessageResponse is the body of every endpoint that only reports an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// SignUpResponse is returned by a successful signup.
type SignUpResponse struct {
	User   User   `json:"user"`
	Detail string `json:"detail"`
}
