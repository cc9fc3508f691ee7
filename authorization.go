package accounts

import (
	"context"
)

// Authorizer answers capability checks for accounts. Superusers pass every
// check; everyone else needs an explicit or group-inherited grant.
type Authorizer struct {
	store  GrantStore
	logger Logger
}

type AuthorizerOption func(*Authorizer)

func WithAuthorizerLogger(l Logger) AuthorizerOption {
	return func(a *Authorizer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAuthorizer will create an Authorizer backed by the given grant store.
func NewAuthorizer(store GrantStore, opts ...AuthorizerOption) *Authorizer {
	a := &Authorizer{
		store:  store,
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// HasPermission reports whether the account holds the named capability.
// Inactive accounts hold nothing; superusers hold everything.
func (a *Authorizer) HasPermission(ctx context.Context, account *Account, capability string) (bool, error) {
	if account == nil || !account.IsActive {
		return false, nil
	}

	if account.IsSuperuser {
		return true, nil
	}

	if capability == "" {
		return false, nil
	}

	id := account.ID.String()

	direct, err := a.store.HasDirectGrant(ctx, id, capability)
	if err != nil {
		return false, err
	}
	if direct {
		return true, nil
	}

	return a.store.HasGroupGrant(ctx, id, capability)
}
