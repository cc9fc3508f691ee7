package accounts

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// AccountOption mutates an account before it is persisted. Options run after
// the factory defaults, so callers can override any flag.
type AccountOption func(*Account)

func WithFirstName(name string) AccountOption {
	return func(a *Account) { a.FirstName = name }
}

func WithLastName(name string) AccountOption {
	return func(a *Account) { a.LastName = name }
}

func WithActive(active bool) AccountOption {
	return func(a *Account) { a.IsActive = active }
}

func WithStaff(staff bool) AccountOption {
	return func(a *Account) { a.IsStaff = staff }
}

func WithSuperuser(superuser bool) AccountOption {
	return func(a *Account) { a.IsSuperuser = superuser }
}

// Manager constructs valid accounts, enforcing the invariants the raw record
// does not check itself.
type Manager struct {
	repo      Accounts
	validator CredentialValidator
	logger    Logger
	now       func() time.Time
}

type ManagerOption func(*Manager)

// WithManagerLogger overrides the default logger.
func WithManagerLogger(l Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithCredentialValidator rejects weak passwords at creation time.
func WithCredentialValidator(v CredentialValidator) ManagerOption {
	return func(m *Manager) { m.validator = v }
}

// WithClock overrides the join-timestamp source.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager will create a new account Manager backed by the given repository.
func NewManager(repo Accounts, opts ...ManagerOption) *Manager {
	m := &Manager{
		repo:   repo,
		logger: defLogger{},
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// CreateStandard builds and persists a regular account: active, not staff,
// not superuser. An empty password leaves the account without a usable
// credential.
func (m *Manager) CreateStandard(ctx context.Context, email, password string, opts ...AccountOption) (*Account, error) {
	return m.create(ctx, email, password, false, false, opts...)
}

// CreatePrivileged builds and persists an administrative account, defaulting
// is_staff and is_superuser to true. Options can still override either flag,
// which keeps escalation explicit at this single call site.
func (m *Manager) CreatePrivileged(ctx context.Context, email, password string, opts ...AccountOption) (*Account, error) {
	return m.create(ctx, email, password, true, true, opts...)
}

func (m *Manager) create(ctx context.Context, email, password string, staff, superuser bool, opts ...AccountOption) (*Account, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	account := &Account{
		Email:       NormalizeEmail(email),
		IsActive:    true,
		IsStaff:     staff,
		IsSuperuser: superuser,
		DateJoined:  m.now().UTC(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(account)
		}
	}

	if password != "" {
		if m.validator != nil {
			if err := m.validator(password); err != nil {
				return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "password rejected")
			}
		}
		if err := account.SetPassword(password); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}
	}

	created, err := m.repo.Create(ctx, account)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "email already registered").
				WithTextCode("EMAIL_TAKEN").
				WithCode(goerrors.CodeConflict)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create account")
	}

	m.logger.Debug("account created", "email", created.Email, "staff", created.IsStaff)

	return created, nil
}
