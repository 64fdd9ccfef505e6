package domain

// TokenPurpose scopes an activation or reset token. A token issued for one purpose
// never validates for another.
type TokenPurpose string

const (
	PurposeActivation    TokenPurpose = "activation"
	PurposePasswordReset TokenPurpose = "password_reset"
)

// Fingerprint returns the mutable account state a token of this purpose is bound to.
// Changing any of it invalidates every outstanding token of the purpose.
//
// Activation binds the email and password hash, so a link keeps working after the
// account is active and re-confirming is a no-op. Reset binds the password hash, so
// setting a new password burns every outstanding reset link.
func (p TokenPurpose) Fingerprint(account *Account) (string, bool) {
	switch p {
	case PurposeActivation:
		return NormalizeEmail(account.Email) + ":" + account.PasswordHash, true
	case PurposePasswordReset:
		return account.PasswordHash, true
	default:
		return "", false
	}
}
