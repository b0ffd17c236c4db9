package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository]
// over the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
		&user.Confirmed,
		&user.Avatar,
		&user.Description,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// CreateUser inserts user and returns the stored row.
//
// The users table is locked for the duration of the transaction so the
// emptiness check and the insert are atomic: of two concurrent first signups
// exactly one becomes the administrator.
//
// Error handling:
//   - unique_violation on email → [ErrEmailAlreadyExists].
//   - unique_violation on username → [ErrUsernameAlreadyExists].
//   - transient failures → [ErrStoreUnavailable].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to begin transaction")
		return models.User{}, r.db.wrapError(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, lockUsersTable); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to lock users table")
		return models.User{}, r.db.wrapError(ErrExecutingStatement, err)
	}

	var count int64
	if err = tx.QueryRowContext(ctx, countUsers).Scan(&count); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to count users")
		return models.User{}, r.db.wrapError(ErrExecutingQuery, err)
	}

	role := user.Role
	if count == 0 {
		role = models.RoleAdmin
	} else if role == "" {
		role = models.RoleUser
	}

	row := tx.QueryRowContext(ctx, createUser, user.Username, user.Email, user.PasswordHash, role)
	if err = row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, r.insertError(err)
	}

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, r.insertError(err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to commit transaction")
		return models.User{}, r.db.wrapError(ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "*userRepository.CreateUser").
		Int64("user_id", created.ID).
		Str("role", created.Role.String()).
		Msg("user created")

	return created, nil
}

func (r *userRepository) insertError(err error) error {
	if postgresError(err) != pgerrcode.UniqueViolation {
		return r.db.wrapError(ErrExecutingQuery, err)
	}

	switch postgresConstraint(err) {
	case usersUsernameConstraint:
		return ErrUsernameAlreadyExists
	default:
		return ErrEmailAlreadyExists
	}
}

// GetUserByEmail returns the user with the given e-mail or [ErrNoUserWasFound].
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.GetUserByEmail", findUserByEmail, email)
}

// GetUserByUsername returns the user with the given username or [ErrNoUserWasFound].
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.GetUserByUsername", findUserByUsername, username)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error querying user")
		switch postgresError(err) {
		case pgerrcode.NoDataFound:
			return models.User{}, ErrNoUserWasFound
		default:
			return models.User{}, r.db.wrapError(ErrExecutingQuery, err)
		}
	}

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", funcName).Msg("error: scanning error")
		return models.User{}, r.db.wrapError(ErrScanningRow, err)
	}

	return user, nil
}

// UpdateRefreshToken stores token, or clears it when token is nil.
func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID int64, token *string) error {
	return r.execAffectingUser(ctx, "*userRepository.UpdateRefreshToken", updateRefreshToken, userID, token)
}

func (r *userRepository) SetConfirmed(ctx context.Context, email string) error {
	return r.execAffectingUser(ctx, "*userRepository.SetConfirmed", setConfirmed, email)
}

func (r *userRepository) SetActive(ctx context.Context, email string, active bool) error {
	return r.execAffectingUser(ctx, "*userRepository.SetActive", setActive, email, active)
}

func (r *userRepository) SetRole(ctx context.Context, email string, role models.Role) error {
	return r.execAffectingUser(ctx, "*userRepository.SetRole", setRole, email, string(role))
}

// UpdatePassword replaces the hash and drops the stored refresh token, so
// sessions on other devices have to log in again.
func (r *userRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return r.execAffectingUser(ctx, "*userRepository.UpdatePassword", updatePassword, email, passwordHash)
}

// execAffectingUser runs a single-row UPDATE and reports [ErrNoUserWasFound]
// when no row matched.
func (r *userRepository) execAffectingUser(ctx context.Context, funcName, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute update")
		return r.db.wrapError(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to read affected rows")
		return r.db.wrapError(ErrExecutingStatement, err)
	}

	if affected == 0 {
		log.Warn().Str("func", funcName).Msg("no user was updated")
		return ErrNoUserWasFound
	}

	return nil
}

// UpdateProfile writes the non-nil fields of update and returns the new row.
func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProfileQuery(userID, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", userID).Msg("failed to create query")
		return models.User{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", userID).Msg("failed to update profile")
		return models.User{}, r.insertError(err)
	}

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", userID).Msg("error: scanning error")
		return models.User{}, r.insertError(err)
	}

	return user, nil
}

// ListUsers returns up to limit users ordered by id, skipping the first skip.
func (r *userRepository) ListUsers(ctx context.Context, skip, limit uint64) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(skip, limit)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to execute query")
		return nil, r.db.wrapError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, limit)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.ListUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error occurred during rows iteration")
		return nil, r.db.wrapError(ErrScanningRows, err)
	}

	return users, nil
}
