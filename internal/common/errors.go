// Package common defines shared constants and sentinel errors used across
// the tracker, storage and transport layers. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository / store-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrorMalformedState = errors.New("malformed persisted state")

	// Identity and credential errors. Both must leave state untouched.
	ErrorDuplicateIdentity  = errors.New("user with this email already exists")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Status machine errors.
	ErrorInvalidTransition = errors.New("invalid status transition")
	ErrorWrongStatus       = errors.New("operation not allowed in current status")

	// Generic/internal flow control.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrorInvalidToken = errors.New("invalid token")
)
