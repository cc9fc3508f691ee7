package accounts_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-accounts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHasPermissionSuperuser(t *testing.T) {
	store := new(MockGrantStore)
	authz := accounts.NewAuthorizer(store)

	account := &accounts.Account{
		ID:          uuid.New(),
		Email:       "root@example.com",
		IsActive:    true,
		IsSuperuser: true,
	}

	for _, capability := range []string{"accounts.view", "anything.random", "x"} {
		ok, err := authz.HasPermission(context.Background(), account, capability)
		require.NoError(t, err)
		assert.True(t, ok, capability)
	}

	// The store is never consulted for superusers.
	store.AssertNotCalled(t, "HasDirectGrant", mock.Anything, mock.Anything, mock.Anything)
}

func TestHasPermissionStandardAccountStartsEmpty(t *testing.T) {
	store := new(MockGrantStore)
	store.On("HasDirectGrant", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	store.On("HasGroupGrant", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	authz := accounts.NewAuthorizer(store)

	account := &accounts.Account{
		ID:       uuid.New(),
		Email:    "user@example.com",
		IsActive: true,
	}

	ok, err := authz.HasPermission(context.Background(), account, "accounts.view")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermissionDirectGrant(t *testing.T) {
	account := &accounts.Account{ID: uuid.New(), IsActive: true}

	store := new(MockGrantStore)
	store.On("HasDirectGrant", mock.Anything, account.ID.String(), "reports.run").Return(true, nil)

	authz := accounts.NewAuthorizer(store)

	ok, err := authz.HasPermission(context.Background(), account, "reports.run")
	require.NoError(t, err)
	assert.True(t, ok)

	// Short-circuits before the group lookup.
	store.AssertNotCalled(t, "HasGroupGrant", mock.Anything, mock.Anything, mock.Anything)
}

func TestHasPermissionGroupGrant(t *testing.T) {
	account := &accounts.Account{ID: uuid.New(), IsActive: true}

	store := new(MockGrantStore)
	store.On("HasDirectGrant", mock.Anything, account.ID.String(), "reports.run").Return(false, nil)
	store.On("HasGroupGrant", mock.Anything, account.ID.String(), "reports.run").Return(true, nil)

	authz := accounts.NewAuthorizer(store)

	ok, err := authz.HasPermission(context.Background(), account, "reports.run")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasPermissionInactiveAccount(t *testing.T) {
	store := new(MockGrantStore)
	authz := accounts.NewAuthorizer(store)

	account := &accounts.Account{
		ID:          uuid.New(),
		IsActive:    false,
		IsSuperuser: true,
	}

	ok, err := authz.HasPermission(context.Background(), account, "accounts.view")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermissionStaffAloneGrantsNothing(t *testing.T) {
	store := new(MockGrantStore)
	store.On("HasDirectGrant", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	store.On("HasGroupGrant", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	authz := accounts.NewAuthorizer(store)

	account := &accounts.Account{
		ID:       uuid.New(),
		IsActive: true,
		IsStaff:  true,
	}

	ok, err := authz.HasPermission(context.Background(), account, "accounts.delete")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermissionNilAccount(t *testing.T) {
	authz := accounts.NewAuthorizer(new(MockGrantStore))

	ok, err := authz.HasPermission(context.Background(), nil, "accounts.view")
	require.NoError(t, err)
	assert.False(t, ok)
}
