package google

import "fmt"

// NotConfiguredError is returned when no credential file exists for an account.
type NotConfiguredError struct {
	Account string
	Path    string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("no credentials for %s: %s not found (run 'mailops auth --account %s')", e.Account, e.Path, e.Account)
}

// AuthorizationError is returned when a stored credential cannot be used and
// the operator has to authorize the account again.
type AuthorizationError struct {
	Account string
	Err     error
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization failed for %s: %v", e.Account, e.Err)
}

func (e *AuthorizationError) Unwrap() error {
	return e.Err
}
