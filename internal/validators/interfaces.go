// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the service
// layer.
//
// A [Validator] accepts any request model and an optional list of field names.
// When fields are given only those fields are checked, which lets the same
// validator serve the signup form (all fields) and the profile editor (only
// the ones the user sent).
//
// Every error returned by this package is a client error and is reported
// with HTTP 400 by the transport layer.
package validators

import "context"

// Validator validates the provided input, optionally restricted to the named
// fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
