package store

import (
	"fmt"

	"github.com/MKhiriev/go-photo-share/models"
	sq "github.com/Masterminds/squirrel"
)

const userColumns = `id, username, email, password, role, is_active, confirmed, avatar, description, refresh_token, created_at, updated_at`

// Unique constraint names from migrations/00001_create_users.sql.
const (
	usersEmailConstraint    = "users_email_key"
	usersUsernameConstraint = "users_username_key"
)

const (
	lockUsersTable = `LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE;`

	countUsers = `SELECT COUNT(*) FROM users;`

	createUser = `INSERT INTO users (username, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
		FROM users
		WHERE email = $1;`

	findUserByUsername = `SELECT ` + userColumns + `
		FROM users
		WHERE username = $1;`

	updateRefreshToken = `UPDATE users
		SET refresh_token = $2, updated_at = NOW()
		WHERE id = $1;`

	setConfirmed = `UPDATE users
		SET confirmed = TRUE, updated_at = NOW()
		WHERE email = $1;`

	setActive = `UPDATE users
		SET is_active = $2, updated_at = NOW()
		WHERE email = $1;`

	setRole = `UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE email = $1;`

	updatePassword = `UPDATE users
		SET password = $2, refresh_token = NULL, updated_at = NOW()
		WHERE email = $1;`

	addBlacklistToken = `INSERT INTO blacklist_tokens (token, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (token) DO NOTHING;`

	containsBlacklistToken = `SELECT EXISTS (
		SELECT 1 FROM blacklist_tokens WHERE token = $1
	);`

	pruneBlacklistTokens = `DELETE FROM blacklist_tokens
		WHERE expires_at < $1;`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildUpdateProfileQuery builds an UPDATE of the non-nil profile columns
// that returns the updated row.
func buildUpdateProfileQuery(userID int64, update models.ProfileUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, ErrEmptyProfileUpdate
	}

	builder := psql.Update("users").Set("updated_at", sq.Expr("NOW()"))

	if update.Username != nil {
		builder = builder.Set("username", *update.Username)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Avatar != nil {
		builder = builder.Set("avatar", *update.Avatar)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListUsersQuery builds a page of users ordered by id.
func buildListUsersQuery(skip, limit uint64) (string, []any, error) {
	query, args, err := psql.Select(userColumns).
		From("users").
		OrderBy("id").
		Offset(skip).
		Limit(limit).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
