// Package common defines shared sentinel errors used across the Latte'd
// data layer. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository / lookup errors.
	ErrNotFound = errors.New("not found")

	// Ownership guard: the caller may not mutate somebody else's record.
	// This is an expected refusal, not an exceptional condition.
	ErrPermissionDenied = errors.New("permission denied")

	// Cloud errors. ErrNoIdentity means there is no authenticated remote
	// identity and the cloud operation was skipped; offline use is a
	// first-class mode, so this never reaches the end user as a failure.
	ErrNoIdentity     = errors.New("no remote identity")
	ErrSyncInProgress = errors.New("sync already in progress")
	ErrUnavailable    = errors.New("remote service unavailable")
)
