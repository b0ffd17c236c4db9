// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request parsing errors.
var (
	// ErrInvalidJSON is returned when the request body is not valid JSON for
	// the endpoint.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidForm is returned when a form or multipart body cannot be
	// parsed.
	ErrInvalidForm = errors.New("invalid form was passed")

	// ErrInvalidQuery is returned for malformed query parameters.
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrAvatarTooLarge is returned when the uploaded avatar exceeds
	// maxAvatarBytes.
	ErrAvatarTooLarge = errors.New("avatar file is too large")
)
