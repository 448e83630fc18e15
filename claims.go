package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSubject tags every issued token so tokens minted for another purpose
// are never accepted here.
const TokenSubject = "access"

// AuthClaims exposes the validated contents of an access token.
type AuthClaims interface {
	Subject() string
	Username() string
	Expires() time.Time
	IssuedAt() time.Time
}

// AccessClaims is the concrete claims payload embedded in issued tokens. The
// username travels as an explicit field rather than an open map so callers
// cannot inject arbitrary claims.
type AccessClaims struct {
	jwt.RegisteredClaims
	Identifier string `json:"username,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*AccessClaims)(nil)

// Subject returns the subject claim
func (c *AccessClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Username returns the username the token was issued for
func (c *AccessClaims) Username() string {
	return c.Identifier
}

// Expires returns the expiration time
func (c *AccessClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *AccessClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
