package admin

import (
	"errors"
	"fmt"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/goliatone/go-accounts"
)

// CreationForm is the operator form for adding an account: email plus a
// confirmed password pair and the optional name fields.
type CreationForm struct {
	Email     string `form:"email" json:"email"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Password1 string `form:"password1" json:"password1"`
	Password2 string `form:"password2" json:"password2"`
}

// Validate will run validation rules
func (f CreationForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.FirstName, validation.Length(0, 50)),
		validation.Field(&f.LastName, validation.Length(0, 50)),
		validation.Field(&f.Password1, validation.Required, validation.By(validatePasswordStrength)),
		validation.Field(
			&f.Password2,
			validation.Required,
			validation.By(validateStringEquals(f.Password1, "the two password fields didn't match")),
		),
	)
}

// ChangeForm carries operator edits for an existing account. Only fields the
// resource declares editable are applied; read-only fields are rejected.
type ChangeForm struct {
	Fields map[string]any `json:"fields"`
}

// Apply validates the edit against the resource declaration and copies the
// accepted values onto the record.
func (f ChangeForm) Apply(resource Resource, account *accounts.Account) error {
	editable := resource.EditableFields()

	for name, value := range f.Fields {
		if !contains(editable, name) {
			return fmt.Errorf("field %q is not editable", name)
		}

		switch name {
		case "email":
			s, ok := value.(string)
			if !ok || s == "" {
				return errors.New("email must be a non-empty string")
			}
			account.Email = accounts.NormalizeEmail(s)
		case "first_name":
			account.FirstName, _ = value.(string)
		case "last_name":
			account.LastName, _ = value.(string)
		case "is_active":
			account.IsActive = truthy(value)
		case "is_staff":
			account.IsStaff = truthy(value)
		case "is_superuser":
			account.IsSuperuser = truthy(value)
		default:
			return fmt.Errorf("field %q is not supported by this form", name)
		}
	}

	return nil
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case float64:
		// JSON numbers decode as float64.
		return v != 0
	default:
		return false
	}
}

// MinPasswordLength is the floor for new operator-set passwords.
var MinPasswordLength = 8

func validatePasswordStrength(value any) error {
	s, _ := value.(string)
	if len(s) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return errors.New("password must mix letters and digits")
	}

	return nil
}

func validateStringEquals(str, msg string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New(msg)
		}
		return nil
	}
}

// PasswordValidator adapts the form strength rule for the account factory.
func PasswordValidator() accounts.CredentialValidator {
	return func(password string) error {
		return validatePasswordStrength(password)
	}
}
