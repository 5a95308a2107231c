// Package common holds the shared surface of the application: sentinel
// errors, logger setup, and retry helpers.
package common

import "errors"

// Sentinel errors recognized across package boundaries.
var (
	ErrNotFound = errors.New("not found")

	ErrEmptyRuleTable  = errors.New("pattern rule table is empty")
	ErrInvalidRule     = errors.New("invalid pattern rule")
	ErrEmptyTrip       = errors.New("trip has no member transactions")
	ErrDuplicateMember = errors.New("transaction assigned to more than one trip")

	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)
