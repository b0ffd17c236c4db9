package models

import "time"

// User represents a registered account of the photo-sharing service.
// It is the canonical identity resolved by the authenticator and stored in
// the "users" table.
//
// PasswordHash and RefreshToken are credentials and never leave the server:
// both are excluded from JSON serialization.
type User struct {
	// ID is the server-assigned unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique public handle of the user.
	Username string `json:"username"`

	// Email is the unique e-mail address. It is the subject claim of every
	// token issued for the user and the key of the user cache.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// Role is the single role granted to the user.
	Role Role `json:"role"`

	// IsActive is false once an administrator bans the account.
	IsActive bool `json:"is_active"`

	// Confirmed reports whether the e-mail address was verified.
	Confirmed bool `json:"confirmed"`

	// Avatar is the URL of the transformed avatar image, if any.
	Avatar *string `json:"avatar"`

	// Description is optional free text shown on the public profile.
	Description *string `json:"description"`

	// RefreshToken is the currently valid refresh token, nil when the user
	// has to log in again.
	RefreshToken *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// CachedUser is the snapshot of a [User] kept in the user cache.
// It holds only the fields needed to authorize a request; credentials are
// never cached.
type CachedUser struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Role        Role    `json:"role"`
	IsActive    bool    `json:"is_active"`
	Confirmed   bool    `json:"confirmed"`
	Avatar      *string `json:"avatar,omitempty"`
	Description *string `json:"description,omitempty"`
}

// NewCachedUser builds the cache snapshot of u.
func NewCachedUser(u User) CachedUser {
	return CachedUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		Confirmed:   u.Confirmed,
		Avatar:      u.Avatar,
		Description: u.Description,
	}
}

// ToUser converts the snapshot back into a [User] without credentials.
func (c CachedUser) ToUser() User {
	return User{
		ID:          c.ID,
		Username:    c.Username,
		Email:       c.Email,
		Role:        c.Role,
		IsActive:    c.IsActive,
		Confirmed:   c.Confirmed,
		Avatar:      c.Avatar,
		Description: c.Description,
	}
}

// UserProfile is the public view of a user returned by the profile endpoint.
type UserProfile struct {
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Avatar      *string   `json:"avatar"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUserProfile builds the public profile of u.
func NewUserProfile(u User) UserProfile {
	return UserProfile{
		Username:    u.Username,
		Email:       u.Email,
		Avatar:      u.Avatar,
		Description: u.Description,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

// ProfileUpdate is a partial update of user profile columns.
// Only non-nil fields are written.
type ProfileUpdate struct {
	Username    *string
	Description *string
	Avatar      *string
}

// IsEmpty reports whether the update carries no changes.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Username == nil && p.Description == nil && p.Avatar == nil
}
