package accounts

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUse discriminates access from refresh tokens.
type TokenUse = string

const (
	TokenUseAccess  TokenUse = "access"
	TokenUseRefresh TokenUse = "refresh"
)

// AuthClaims is the read view over validated token claims.
type AuthClaims interface {
	Subject() string
	AccountID() string
	Use() TokenUse
	Staff() bool
	Superuser() bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete claims payload. The subject is the account's
// normalized email; uid carries the surrogate id.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID         string   `json:"uid,omitempty"`
	TokenUse    TokenUse `json:"token_use,omitempty"`
	IsStaff     bool     `json:"staff,omitempty"`
	IsSuperuser bool     `json:"superuser,omitempty"`
}

var _ AuthClaims = (*JWTClaims)(nil)

func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

func (c *JWTClaims) AccountID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

func (c *JWTClaims) Use() TokenUse {
	if c.TokenUse == "" {
		return TokenUseAccess
	}
	return c.TokenUse
}

func (c *JWTClaims) Staff() bool {
	return c.IsStaff
}

func (c *JWTClaims) Superuser() bool {
	return c.IsSuperuser
}

func (c *JWTClaims) Expires() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.IssuedAt.Time
}
