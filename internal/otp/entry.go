package otp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrOTPExpired      = errors.New("invalid or expired OTP")
	ErrInvalidOTP      = errors.New("invalid OTP")
	ErrTooManyAttempts = errors.New("too many failed OTP attempts")
	ErrNotVerified     = errors.New("OTP not verified")

	// ErrEntryNotFound is returned by a Store when the key is absent.
	ErrEntryNotFound = errors.New("otp entry not found")
)

// Purpose namespaces entries so a signup code cannot be replayed as a
// phone-change code.
type Purpose string

const (
	PurposeSignup      Purpose = "signup"
	PurposePhoneChange Purpose = "phone_change"
)

// Key returns the cache key for purpose and subject.
func Key(purpose Purpose, subject string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, subject)
}

// Entry is everything the server remembers about one issued code. The code
// itself is never stored, only its bcrypt hash.
type Entry struct {
	CodeHash    string
	PhoneNumber string
	Payload     json.RawMessage
	Attempts    int
	Verified    bool
	CreatedAt   time.Time
	ExpiresAt   time.Time
}
