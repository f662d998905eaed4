// Package common defines sentinel errors shared by the store, services and
// CLI layers of the registry. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Store/service lookup errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors. ErrorUnderage wraps ErrorValidation so callers may
	// match either.
	ErrorValidation = errors.New("validation error")
	ErrorUnderage   = fmt.Errorf("%w: senior citizens must be at least 60 years old", ErrorValidation)

	// Session gate errors.
	ErrorInvalidPassword = errors.New("invalid password")
	ErrorInvalidState    = errors.New("invalid session state")
	ErrorNotLoggedIn     = errors.New("not logged in")

	// View/role errors.
	ErrorForbidden = errors.New("forbidden for current role")
)
