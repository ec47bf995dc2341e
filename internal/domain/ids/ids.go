package ids

import (
	"crypto/rand"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	ulidRegex = regexp.MustCompile(`(?i)^[0-9A-HJKMNP-TV-Z]{26}$`)

	ErrInvalidULID = errors.New("invalid ULID")
	ErrInvalidUUID = errors.New("invalid UUID")
)

// NewUUID mints a random UUIDv4 string. Used for user, credential, and
// attendance record identity.
func NewUUID() string {
	return uuid.NewString()
}

// NewULID mints a new ULID string. Session ids are ULIDs so that a listing
// sorted by id is also sorted by creation time.
func NewULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ValidateULID checks that a string is a well-formed ULID.
func ValidateULID(value string) error {
	if !ulidRegex.MatchString(value) {
		return ErrInvalidULID
	}
	return nil
}

// ValidateUUID checks that a string parses as a UUID.
func ValidateUUID(value string) error {
	if _, err := uuid.Parse(value); err != nil {
		return ErrInvalidUUID
	}
	return nil
}
