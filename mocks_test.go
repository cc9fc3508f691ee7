package accounts_test

import (
	"context"

	"github.com/goliatone/go-accounts"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccounts stubs the repository methods the units under test touch. The
// embedded interface satisfies the rest of the contract.
type MockAccounts struct {
	mock.Mock
	accounts.Accounts
}

func (m *MockAccounts) Create(ctx context.Context, record *accounts.Account, criteria ...repository.InsertCriteria) (*accounts.Account, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		// Returning (nil, nil) echoes the record, mimicking the real
		// repository insert.
		if args.Error(1) == nil {
			return record, nil
		}
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Account), args.Error(1)
}

func (m *MockAccounts) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Account), args.Error(1)
}

func (m *MockAccounts) TrackSuccessfulLogin(ctx context.Context, account *accounts.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccounts) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// MockGrantStore stubs the authorization collaborator.
type MockGrantStore struct {
	mock.Mock
}

func (m *MockGrantStore) HasDirectGrant(ctx context.Context, accountID string, capability string) (bool, error) {
	args := m.Called(ctx, accountID, capability)
	return args.Bool(0), args.Error(1)
}

func (m *MockGrantStore) HasGroupGrant(ctx context.Context, accountID string, capability string) (bool, error) {
	args := m.Called(ctx, accountID, capability)
	return args.Bool(0), args.Error(1)
}
