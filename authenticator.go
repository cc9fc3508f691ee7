package accounts

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Authenticator verifies credentials and issues token pairs. Every failure
// path collapses into ErrAuthenticationFailed so callers cannot probe which
// check rejected the attempt.
type Authenticator struct {
	repo   Accounts
	tokens TokenService
	logger Logger
}

type AuthenticatorOption func(*Authenticator)

func WithAuthenticatorLogger(l Logger) AuthenticatorOption {
	return func(a *Authenticator) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(repo Accounts, tokens TokenService, opts ...AuthenticatorOption) *Authenticator {
	a := &Authenticator{
		repo:   repo,
		tokens: tokens,
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Login authenticates by normalized email and password. On success it issues
// a token pair and records last_login_at on the account.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	account, err := a.verify(ctx, email, password)
	if err != nil {
		a.logger.Debug("login rejected", "email", email)
		return nil, ErrAuthenticationFailed
	}

	pair, err := a.tokens.IssuePair(AccountIdentity(account))
	if err != nil {
		a.logger.Error("login token issuance failed", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to issue tokens")
	}

	if err := a.repo.TrackSuccessfulLogin(ctx, account); err != nil {
		// Token is already issued; losing the timestamp is not a login failure.
		a.logger.Error("failed to track successful login", "error", err)
	}

	return pair, nil
}

// Verify validates a raw token and returns its claims.
func (a *Authenticator) Verify(token string) (AuthClaims, error) {
	return a.tokens.Validate(token)
}

// Refresh exchanges a refresh token for a new access token.
func (a *Authenticator) Refresh(refreshToken string) (string, error) {
	return a.tokens.Refresh(refreshToken)
}

// IdentityFromToken resolves the account referenced by a validated token.
func (a *Authenticator) IdentityFromToken(ctx context.Context, token string) (*Account, error) {
	claims, err := a.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	account, err := a.repo.GetByEmail(ctx, claims.Subject())
	if err != nil {
		return nil, ErrAccountNotFound
	}

	return account, nil
}

func (a *Authenticator) verify(ctx context.Context, email, password string) (*Account, error) {
	account, err := a.repo.GetByEmail(ctx, email)
	if err != nil {
		// Burn a hash comparison so missing accounts cost the same as bad
		// passwords.
		_ = ComparePasswordAndHash(password, RandomPasswordHash())
		return nil, err
	}

	if !account.HasUsableCredential() {
		return nil, ErrNoUsableCredential
	}

	if err := account.CheckPassword(password); err != nil {
		return nil, err
	}

	if !account.IsActive {
		return nil, ErrAuthenticationFailed
	}

	return account, nil
}

// accountIdentity adapts an Account to the Identity interface.
type accountIdentity struct {
	account *Account
}

// AccountIdentity wraps an account as an Identity for token issuance.
func AccountIdentity(account *Account) Identity {
	return accountIdentity{account: account}
}

func (i accountIdentity) ID() string        { return i.account.ID.String() }
func (i accountIdentity) Email() string     { return i.account.Email }
func (i accountIdentity) IsStaff() bool     { return i.account.IsStaff }
func (i accountIdentity) IsSuperuser() bool { return i.account.IsSuperuser }

var _ Identity = accountIdentity{}

func nowUTC() time.Time { return time.Now().UTC() }
