// Package ident generates the random identifiers used for entries, comments,
// loadouts and notifications.
package ident

import "github.com/google/uuid"

// NewID returns a random version-4 UUID string. Uniqueness relies on the
// birthday bound only, which is plenty for a single-user local dataset.
func NewID() string {
	return uuid.NewString()
}
