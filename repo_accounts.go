package accounts

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Accounts interface {
	repository.Repository[*Account]

	Register(ctx context.Context, account *Account) (*Account, error)
	RegisterTx(ctx context.Context, tx bun.IDB, account *Account) (*Account, error)
	Create(ctx context.Context, record *Account, criteria ...repository.InsertCriteria) (*Account, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Account, criteria ...repository.InsertCriteria) (*Account, error)

	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Account, error)

	TrackSuccessfulLogin(ctx context.Context, account *Account) error
	TrackSuccessfulLoginTx(ctx context.Context, tx bun.IDB, account *Account) error

	ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	ResetPasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error

	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Account, error)
	AdminUpdate(ctx context.Context, record *Account) (*Account, error)

	HardDelete(ctx context.Context, id uuid.UUID) error
	HardDeleteTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type accountsRepo struct {
	repository.Repository[*Account]
	db *bun.DB
}

var (
	_ Accounts                        = (*accountsRepo)(nil)
	_ repository.Repository[*Account] = (*accountsRepo)(nil)
)

func NewAccountsRepository(db *bun.DB) Accounts {
	repo := repository.NewRepository[*Account](db, repository.ModelHandlers[*Account]{
		NewRecord: func() *Account { return &Account{} },
		GetID: func(a *Account) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Account, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &accountsRepo{
		Repository: repo,
		db:         db,
	}
}

func (r *accountsRepo) Register(ctx context.Context, account *Account) (*Account, error) {
	return r.RegisterTx(ctx, r.db, account)
}

func (r *accountsRepo) RegisterTx(ctx context.Context, tx bun.IDB, account *Account) (*Account, error) {
	return r.CreateTx(ctx, tx, account)
}

func (r *accountsRepo) Create(ctx context.Context, record *Account, criteria ...repository.InsertCriteria) (*Account, error) {
	return r.CreateTx(ctx, r.db, record, criteria...)
}

func (r *accountsRepo) CreateTx(ctx context.Context, tx bun.IDB, record *Account, criteria ...repository.InsertCriteria) (*Account, error) {
	prepareAccountDefaults(record)
	return r.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (r *accountsRepo) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return r.GetByEmailTx(ctx, r.db, email)
}

func (r *accountsRepo) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Account, error) {
	record := &Account{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": NormalizeEmail(email),
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *accountsRepo) TrackSuccessfulLogin(ctx context.Context, account *Account) error {
	return r.TrackSuccessfulLoginTx(ctx, r.db, account)
}

func (r *accountsRepo) TrackSuccessfulLoginTx(ctx context.Context, tx bun.IDB, account *Account) error {
	loggedInAt := nowUTC()
	_, err := tx.NewUpdate().
		Model((*Account)(nil)).
		Set("last_login_at = ?", loggedInAt).
		Where("id = ?", account.ID).
		Exec(ctx)

	if err == nil {
		account.LastLoginAt = &loggedInAt
	}

	return err
}

func (r *accountsRepo) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.ResetPasswordTx(ctx, r.db, id, passwordHash)
}

func (r *accountsRepo) ResetPasswordTx(ctx context.Context, tx bun.IDB, id uuid.UUID, passwordHash string) error {
	res, err := tx.NewUpdate().
		Model((*Account)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = ?", nowUTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

// SetActive flips the active flag directly so a false value is never dropped
// as a zero-value column.
func (r *accountsRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Account, error) {
	_, err := r.db.NewUpdate().
		Model((*Account)(nil)).
		Set("is_active = ?", active).
		Set("updated_at = ?", nowUTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return r.Repository.GetByID(ctx, id.String())
}

// AdminUpdate writes the operator-editable columns explicitly so boolean
// flags can transition to false.
func (r *accountsRepo) AdminUpdate(ctx context.Context, record *Account) (*Account, error) {
	_, err := r.db.NewUpdate().
		Model((*Account)(nil)).
		Set("email = ?", NormalizeEmail(record.Email)).
		Set("first_name = ?", record.FirstName).
		Set("last_name = ?", record.LastName).
		Set("is_active = ?", record.IsActive).
		Set("is_staff = ?", record.IsStaff).
		Set("is_superuser = ?", record.IsSuperuser).
		Set("updated_at = ?", nowUTC()).
		Where("id = ?", record.ID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return r.Repository.GetByID(ctx, record.ID.String())
}

func (r *accountsRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.HardDeleteTx(ctx, r.db, id)
}

// HardDeleteTx removes the account row and its grant links. There is no
// tombstone state; deletion is final.
func (r *accountsRepo) HardDeleteTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*AccountCapability)(nil)).
		Where("account_id = ?", id).
		Exec(ctx); err != nil {
		return err
	}

	if _, err := tx.NewDelete().
		Model((*AccountGroup)(nil)).
		Where("account_id = ?", id).
		Exec(ctx); err != nil {
		return err
	}

	res, err := tx.NewDelete().
		Model((*Account)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func prepareAccountDefaults(record *Account) {
	if record == nil {
		return
	}

	record.Email = NormalizeEmail(record.Email)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.DateJoined.IsZero() {
		record.DateJoined = time.Now().UTC()
	}
}
