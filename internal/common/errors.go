// Package common contains sentinel errors shared across the client layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrAuth covers bad credentials on login and rejected registrations.
	// Shown inline on the auth prompt; session state is unchanged.
	ErrAuth = errors.New("authentication failed")

	// Controller-level errors, all raised before any network call.
	ErrEditInProgress  = errors.New("edit already in progress for this transaction")
	ErrNoFileSelected  = errors.New("no file selected")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPeriod   = errors.New("invalid period")
)
