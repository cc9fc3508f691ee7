package admin_test

import (
	"testing"

	"github.com/goliatone/go-accounts/admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountsResourceListDisplay(t *testing.T) {
	resource := admin.AccountsResource()

	assert.Equal(t, []string{
		"email",
		"first_name",
		"last_name",
		"is_staff",
		"is_active",
	}, resource.ListDisplay())
}

func TestAccountsResourceFilters(t *testing.T) {
	resource := admin.AccountsResource()

	assert.Equal(t, []string{"is_staff", "is_active"}, resource.FilterFields())
}

func TestAccountsResourceSearchFields(t *testing.T) {
	resource := admin.AccountsResource()

	assert.Equal(t, []string{"email", "first_name", "last_name"}, resource.SearchFields())
}

func TestAccountsResourceOrdering(t *testing.T) {
	resource := admin.AccountsResource()

	assert.Equal(t, []string{"email ASC"}, resource.Ordering)
}

func TestAccountsResourceReadOnlyFields(t *testing.T) {
	resource := admin.AccountsResource()

	assert.Equal(t, []string{
		"groups",
		"capabilities",
		"last_login_at",
		"date_joined",
	}, resource.ReadOnlyFields())
}

func TestAccountsResourceFieldsets(t *testing.T) {
	resource := admin.AccountsResource()

	require.Len(t, resource.Fieldsets, 4)

	credentials := resource.Fieldsets[0]
	assert.Equal(t, "Credentials", credentials.Label)
	assert.Contains(t, credentials.Fields, "email")
	assert.Contains(t, credentials.Fields, "password")

	personal := resource.Fieldsets[1]
	assert.Equal(t, "Personal Info", personal.Label)
	assert.Contains(t, personal.Fields, "first_name")
	assert.Contains(t, personal.Fields, "last_name")

	permissions := resource.Fieldsets[2]
	assert.Equal(t, "Permissions", permissions.Label)
	assert.Contains(t, permissions.Fields, "is_active")
	assert.Contains(t, permissions.Fields, "is_staff")
	assert.Contains(t, permissions.Fields, "is_superuser")

	dates := resource.Fieldsets[3]
	assert.Equal(t, "Important Dates", dates.Label)
	assert.Contains(t, dates.Fields, "last_login_at")
	assert.Contains(t, dates.Fields, "date_joined")
}

func TestAccountsResourceEditableExcludesReadOnly(t *testing.T) {
	resource := admin.AccountsResource()

	editable := resource.EditableFields()
	assert.NotContains(t, editable, "last_login_at")
	assert.NotContains(t, editable, "date_joined")
	assert.NotContains(t, editable, "groups")
	assert.NotContains(t, editable, "capabilities")
	assert.Contains(t, editable, "email")
	assert.Contains(t, editable, "is_superuser")
}

func TestResourceHasField(t *testing.T) {
	resource := admin.AccountsResource()

	assert.True(t, resource.HasField("email"))
	assert.False(t, resource.HasField("password_hash"))
}
