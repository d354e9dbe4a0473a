package service

import "errors"

// Business-rule errors surfaced to handlers. These are checked with errors.Is
// and mapped to the appropriate HTTP status before any remote call is made.
var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrAccountDeactivated     = errors.New("account has been deactivated")
	ErrTokenRevoked           = errors.New("token has been revoked")
	ErrNotFound               = errors.New("record not found")
	ErrActiveRequestExists    = errors.New("an active request of this type already exists")
	ErrNotEditable            = errors.New("only pending items can be edited")
	ErrInvalidMaintenanceType = errors.New("invalid maintenance request type")
	ErrBillingAlreadyPaid     = errors.New("billing has already been paid")
	ErrInvalidSignature       = errors.New("notification signature mismatch")
)
