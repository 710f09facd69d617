// Package ids mints and validates the public identifiers used for
// registration rows. IDs are ULIDs: lexicographically sortable by creation
// time, which keeps newest-first listings cheap.
package ids

import (
	"crypto/rand"
	"errors"
	"regexp"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ulidRegex = regexp.MustCompile(`(?i)^[0-9A-HJKMNP-TV-Z]{26}$`)

	ErrInvalidULID = errors.New("invalid ULID")
)

// NewULID generates a new ULID string.
func NewULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// IsValidULID reports whether s is a well-formed ULID.
func IsValidULID(s string) bool {
	return ulidRegex.MatchString(s)
}

// ParseULID validates and canonicalizes a ULID string to uppercase.
func ParseULID(s string) (string, error) {
	if !IsValidULID(s) {
		return "", ErrInvalidULID
	}
	parsed, err := ulid.ParseStrict(s)
	if err != nil {
		return "", ErrInvalidULID
	}
	return parsed.String(), nil
}
