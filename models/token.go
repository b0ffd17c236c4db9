package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPurpose restricts a token to one specific use. It travels in the
// "scope" claim.
type TokenPurpose string

const (
	PurposeAccess  TokenPurpose = "access_token"
	PurposeRefresh TokenPurpose = "refresh_token"
	PurposeEmail   TokenPurpose = "email_token"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
// The subject claim always carries the user's e-mail address.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// Scope is the purpose the token was issued for.
	Scope TokenPurpose `json:"scope"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// Email returns the subject of the token.
func (t *Token) Email() string {
	return t.Subject
}

// Expiry returns the "exp" claim, or the zero time when the claim is absent.
func (t *Token) Expiry() time.Time {
	if t.ExpiresAt == nil {
		return time.Time{}
	}
	return t.ExpiresAt.Time
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// TokenTypeBearer is the only token type issued by the service.
const TokenTypeBearer = "bearer"
