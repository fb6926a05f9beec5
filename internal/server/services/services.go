// Package services contains server-side business logic: input validation,
// ownership checks and orchestration of repository calls.
package services

import (
	"time"

	"github.com/google/uuid"
)

// clock returns the current time. Services keep one so tests can pin "today".
type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// isID reports whether s is a well-formed resource id. Malformed ids are
// treated as not found by every service.
func isID(s string) bool {
	return uuid.Validate(s) == nil
}
