// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients of the external services the API talks to
// over HTTP.
//
// The primary abstraction is [ObjectStorage], the image hosting used for user
// avatars. [NewCloudinaryStorage] implements it over the Cloudinary REST API
// with resty; [NewDisabledStorage] is used when no cloud is configured.
//
// Non-2xx answers are mapped by mapHTTPError to the sentinel errors in
// errors.go so callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-photo-share/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ObjectStorage stores images and builds their delivery URLs.
type ObjectStorage interface {
	// Upload stores the image read from r under publicID, replacing any
	// previous image with the same id.
	Upload(ctx context.Context, r io.Reader, filename, publicID string) (models.UploadResult, error)

	// Destroy removes the image stored under publicID. Removing a missing
	// image is not an error.
	Destroy(ctx context.Context, publicID string) error

	// URL returns the delivery URL of an uploaded image with t applied.
	URL(result models.UploadResult, t models.Transformation) string
}
