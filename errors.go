package accounts

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrEmailRequired is returned when an account is created without an email.
var ErrEmailRequired = goerrors.New("the email field must be set", goerrors.CategoryValidation).
	WithTextCode("EMAIL_REQUIRED").
	WithCode(goerrors.CodeBadRequest)

// ErrAuthenticationFailed is the uniform failure for login attempts. Callers
// cannot tell a missing account from a bad password or an inactive one.
var ErrAuthenticationFailed = goerrors.New("authentication failed", goerrors.CategoryAuth).
	WithTextCode("AUTHENTICATION_FAILED").
	WithCode(goerrors.CodeUnauthorized)

// ErrNoUsableCredential marks accounts that have no password hash.
var ErrNoUsableCredential = goerrors.New("account has no usable credential", goerrors.CategoryAuth).
	WithTextCode("NO_USABLE_CREDENTIAL").
	WithCode(goerrors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is returned when a password does not verify
// against the stored hash.
var ErrMismatchedHashAndPassword = goerrors.New("mismatched password and hash", goerrors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH").
	WithCode(goerrors.CodeUnauthorized)

// ErrNoEmptyString is returned when a hashing input is empty.
var ErrNoEmptyString = goerrors.New("value should not be an empty string", goerrors.CategoryValidation).
	WithTextCode("EMPTY_STRING").
	WithCode(goerrors.CodeBadRequest)

// ErrAccountNotFound is returned by lookups that matched nothing.
var ErrAccountNotFound = goerrors.New("account not found", goerrors.CategoryNotFound).
	WithTextCode("ACCOUNT_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrTokenExpired is returned for tokens past their expiration.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that fail parsing or signature
// verification.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(goerrors.CodeUnauthorized)

// ErrWrongTokenUse is returned when an access token is presented where a
// refresh token is expected, or vice versa.
var ErrWrongTokenUse = goerrors.New("unexpected token use", goerrors.CategoryAuth).
	WithTextCode("WRONG_TOKEN_USE").
	WithCode(goerrors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsUniqueViolation reports whether a persistence error was caused by the
// unique email constraint. Both sqlite and postgres surface the constraint in
// the driver message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
