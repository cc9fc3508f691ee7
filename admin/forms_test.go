package admin_test

import (
	"testing"

	"github.com/goliatone/go-accounts"
	"github.com/goliatone/go-accounts/admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreationFormValid(t *testing.T) {
	form := admin.CreationForm{
		Email:     "new@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password1: "sturdy-pass-12",
		Password2: "sturdy-pass-12",
	}

	assert.NoError(t, form.Validate())
}

func TestCreationFormValidation(t *testing.T) {
	tests := []struct {
		name    string
		form    admin.CreationForm
		wantErr string
	}{
		{
			name: "Missing email",
			form: admin.CreationForm{
				Password1: "sturdy-pass-12",
				Password2: "sturdy-pass-12",
			},
			wantErr: "email",
		},
		{
			name: "Malformed email",
			form: admin.CreationForm{
				Email:     "not-an-email",
				Password1: "sturdy-pass-12",
				Password2: "sturdy-pass-12",
			},
			wantErr: "email",
		},
		{
			name: "Password mismatch",
			form: admin.CreationForm{
				Email:     "new@example.com",
				Password1: "sturdy-pass-12",
				Password2: "different-pass-3",
			},
			wantErr: "didn't match",
		},
		{
			name: "Too short",
			form: admin.CreationForm{
				Email:     "new@example.com",
				Password1: "ab1",
				Password2: "ab1",
			},
			wantErr: "at least",
		},
		{
			name: "No digits",
			form: admin.CreationForm{
				Email:     "new@example.com",
				Password1: "onlyletters",
				Password2: "onlyletters",
			},
			wantErr: "letters and digits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreationFormNamesOptional(t *testing.T) {
	// Names are optional on the entity; the form matches.
	form := admin.CreationForm{
		Email:     "new@example.com",
		Password1: "sturdy-pass-12",
		Password2: "sturdy-pass-12",
	}

	assert.NoError(t, form.Validate())
}

func TestChangeFormAppliesEditableFields(t *testing.T) {
	resource := admin.AccountsResource()
	account := &accounts.Account{Email: "old@example.com", IsActive: true}

	form := admin.ChangeForm{Fields: map[string]any{
		"email":      "New@EXAMPLE.com",
		"first_name": "Ada",
		"is_staff":   true,
		"is_active":  false,
	}}

	require.NoError(t, form.Apply(resource, account))

	assert.Equal(t, "New@example.com", account.Email)
	assert.Equal(t, "Ada", account.FirstName)
	assert.True(t, account.IsStaff)
	assert.False(t, account.IsActive)
}

func TestChangeFormRejectsReadOnlyFields(t *testing.T) {
	resource := admin.AccountsResource()
	account := &accounts.Account{Email: "old@example.com"}

	form := admin.ChangeForm{Fields: map[string]any{
		"date_joined": "2020-01-01T00:00:00Z",
	}}

	err := form.Apply(resource, account)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not editable")
}

func TestChangeFormRejectsMembershipFields(t *testing.T) {
	resource := admin.AccountsResource()

	for _, field := range []string{"groups", "capabilities"} {
		account := &accounts.Account{Email: "old@example.com"}
		form := admin.ChangeForm{Fields: map[string]any{
			field: []string{"editors"},
		}}

		err := form.Apply(resource, account)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not editable")
	}
}

func TestChangeFormRejectsUnknownFields(t *testing.T) {
	resource := admin.AccountsResource()
	account := &accounts.Account{Email: "old@example.com"}

	form := admin.ChangeForm{Fields: map[string]any{
		"password_hash": "sneaky",
	}}

	assert.Error(t, form.Apply(resource, account))
}

func TestChangeFormRejectsEmptyEmail(t *testing.T) {
	resource := admin.AccountsResource()
	account := &accounts.Account{Email: "old@example.com"}

	form := admin.ChangeForm{Fields: map[string]any{"email": ""}}

	assert.Error(t, form.Apply(resource, account))
}

func TestPasswordValidator(t *testing.T) {
	validate := admin.PasswordValidator()

	assert.NoError(t, validate("sturdy-pass-12"))
	assert.Error(t, validate("short1"))
	assert.Error(t, validate("no-digits-here"))
}
