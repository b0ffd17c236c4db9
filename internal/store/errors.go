package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when the e-mail of a new user is taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameAlreadyExists is returned when a new or changed username is taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrEmptyProfileUpdate is returned by UpdateProfile when nothing changes.
	ErrEmptyProfileUpdate = errors.New("profile update has no fields")

	// ErrStoreUnavailable wraps transient failures (lost connection,
	// serialization failure, timeout) that a later attempt may not hit.
	ErrStoreUnavailable = errors.New("store is unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to executing statement")
	ErrScanningRow          = errors.New("failed to scan user row")
	ErrScanningRows         = errors.New("failed to scan user rows")
)

// Cache errors.
var (
	ErrCacheUnavailable = errors.New("cache is unavailable")
	ErrCacheCorrupted   = errors.New("cached value cannot be decoded")
)
