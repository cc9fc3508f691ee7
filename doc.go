// Package accounts provides email-identified account management: a factory
// that builds standard and privileged accounts with explicit defaults, a
// password authenticator with a uniform failure signal, JWT access/refresh
// issuance, and a capability-based authorizer backed by direct and
// group-inherited grants.
//
// Construction:
//   - Manager.CreateStandard and Manager.CreatePrivileged are the only two
//     ways to build an account. Both normalize the email (the domain segment
//     is case-folded before storage and comparison) and reject empty emails.
//     Privilege defaults live at a single call site so escalation stays
//     auditable.
//
// Authentication:
//   - Authenticator.Login resolves the account by normalized email, verifies
//     the bcrypt hash, requires is_active, and returns the same
//     ErrAuthenticationFailed for every rejection. Successful logins update
//     last_login_at.
//
// Authorization:
//   - Authorizer.HasPermission short-circuits to true for superusers and
//     otherwise consults the GrantStore. Staff status by itself grants
//     nothing beyond admin-surface access.
package accounts
