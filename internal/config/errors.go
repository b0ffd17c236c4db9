package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing token sign key or an out-of-range bcrypt cost).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates a missing database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates that neither an HTTP nor a gRPC
	// address was configured.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidObjectStorageConfigs indicates a cloud name configured
	// without API credentials.
	ErrInvalidObjectStorageConfigs = errors.New("invalid object storage configuration")
)
