package accounts

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Identity is the authenticated principal view of an Account.
type Identity interface {
	ID() string
	Email() string
	IsStaff() bool
	IsSuperuser() bool
}

// TokenConfig holds token issuance options.
type TokenConfig interface {
	GetSigningKey() string
	GetIssuer() string
	GetAudience() []string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

// CredentialValidator rejects weak passwords before they are hashed.
type CredentialValidator func(password string) error

// GrantStore is the authorization collaborator queried for explicit and
// group-inherited capability grants.
type GrantStore interface {
	HasDirectGrant(ctx context.Context, accountID string, capability string) (bool, error)
	HasGroupGrant(ctx context.Context, accountID string, capability string) (bool, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ACCOUNTS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ACCOUNTS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
