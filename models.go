package accounts

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Account is the principal record. Identity is the normalized email; there is
// no separate username.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:acc"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	FirstName     string     `bun:"first_name" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name" json:"last_name,omitempty"`
	IsActive      bool       `bun:"is_active,notnull,default:true" json:"is_active"`
	IsStaff       bool       `bun:"is_staff,notnull,default:false" json:"is_staff"`
	IsSuperuser   bool       `bun:"is_superuser,notnull,default:false" json:"is_superuser"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	DateJoined    time.Time  `bun:"date_joined,notnull" json:"date_joined"`
	LastLoginAt   *time.Time `bun:"last_login_at,nullzero" json:"last_login_at,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// HasUsableCredential reports whether the account can authenticate with a
// password. Accounts created without one (delegated/social sign-in) keep an
// empty hash.
func (a *Account) HasUsableCredential() bool {
	return a.PasswordHash != ""
}

// SetPassword hashes and stores the given cleartext password on the record.
// It does not persist the change.
func (a *Account) SetPassword(password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

// CheckPassword verifies the cleartext password against the stored hash.
func (a *Account) CheckPassword(password string) error {
	if !a.HasUsableCredential() {
		return ErrNoUsableCredential
	}
	return ComparePasswordAndHash(password, a.PasswordHash)
}

// FullName joins the optional name fields.
func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

func (a *Account) String() string {
	return a.Email
}

// NormalizeEmail lowercases the domain segment of an address. The local part
// is preserved as given, only the portion after the last "@" is folded.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// Group is a named set of capability grants that accounts can belong to.
type Group struct {
	bun.BaseModel `bun:"table:groups,alias:grp"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull,unique" json:"name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// AccountGroup links an account to a group.
type AccountGroup struct {
	bun.BaseModel `bun:"table:account_groups,alias:accgrp"`
	AccountID     uuid.UUID `bun:"account_id,pk,type:uuid" json:"account_id"`
	GroupID       uuid.UUID `bun:"group_id,pk,type:uuid" json:"group_id"`
	Account       *Account  `bun:"rel:belongs-to,join:account_id=id" json:"account,omitempty"`
	Group         *Group    `bun:"rel:belongs-to,join:group_id=id" json:"group,omitempty"`
}

// AccountCapability is a capability granted directly to an account.
type AccountCapability struct {
	bun.BaseModel `bun:"table:account_capabilities,alias:acccap"`
	AccountID     uuid.UUID `bun:"account_id,pk,type:uuid" json:"account_id"`
	Capability    string    `bun:"capability,pk" json:"capability"`
}

// GroupCapability is a capability granted to every member of a group.
type GroupCapability struct {
	bun.BaseModel `bun:"table:group_capabilities,alias:grpcap"`
	GroupID       uuid.UUID `bun:"group_id,pk,type:uuid" json:"group_id"`
	Capability    string    `bun:"capability,pk" json:"capability"`
}
