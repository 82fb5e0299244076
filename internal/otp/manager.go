package otp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTTL         = 90 * time.Second
	DefaultMaxAttempts = 5

	codeMin   = 100000
	codeRange = 900000 // codes are drawn from [100000, 999999]
)

// Manager issues and verifies one-time codes.
type Manager struct {
	store       Store
	ttl         time.Duration
	maxAttempts int
	hashCost    int
	now         func() time.Time
	generate    func() (string, error)
}

type Option func(*Manager)

// WithClock overrides time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithCodeGenerator overrides the random code source.
func WithCodeGenerator(generate func() (string, error)) Option {
	return func(m *Manager) { m.generate = generate }
}

// WithHashCost sets the bcrypt cost used for code hashes.
func WithHashCost(cost int) Option {
	return func(m *Manager) { m.hashCost = cost }
}

func NewManager(store Store, ttl time.Duration, maxAttempts int, opts ...Option) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	m := &Manager{
		store:       store,
		ttl:         ttl,
		maxAttempts: maxAttempts,
		hashCost:    bcrypt.DefaultCost,
		now:         time.Now,
		generate:    GenerateCode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GenerateCode returns a uniformly random 6-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// Issue creates a fresh entry for purpose and subject and returns the
// plaintext code. Any previous entry under the same key is replaced.
func (m *Manager) Issue(ctx context.Context, purpose Purpose, subject, phone string, payload json.RawMessage) (string, error) {
	code, err := m.generate()
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), m.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash otp code: %w", err)
	}

	now := m.now()
	entry := &Entry{
		CodeHash:    string(hash),
		PhoneNumber: phone,
		Payload:     payload,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.ttl),
	}

	if err := m.store.Save(ctx, Key(purpose, subject), entry, m.ttl); err != nil {
		return "", err
	}

	return code, nil
}

// Verify checks code against the entry for purpose and subject. A wrong code
// consumes one attempt; the entry is dropped once attempts reach the limit.
// On success the entry is marked verified and returned.
func (m *Manager) Verify(ctx context.Context, purpose Purpose, subject, code string) (*Entry, error) {
	entry, err := m.store.Mutate(ctx, Key(purpose, subject), func(e *Entry) (bool, error) {
		if !m.now().Before(e.ExpiresAt) {
			return false, ErrOTPExpired
		}
		if e.Attempts >= m.maxAttempts {
			return false, ErrTooManyAttempts
		}

		if bcrypt.CompareHashAndPassword([]byte(e.CodeHash), []byte(code)) != nil {
			e.Attempts++
			return e.Attempts < m.maxAttempts, ErrInvalidOTP
		}

		e.Verified = true
		return true, nil
	})
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return nil, ErrOTPExpired
		}
		return nil, err
	}

	return entry, nil
}

// Verified returns the entry only if a previous Verify succeeded and it has
// not expired.
func (m *Manager) Verified(ctx context.Context, purpose Purpose, subject string) (*Entry, error) {
	entry, err := m.store.Get(ctx, Key(purpose, subject))
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return nil, ErrNotVerified
		}
		return nil, err
	}

	if !entry.Verified || !m.now().Before(entry.ExpiresAt) {
		return nil, ErrNotVerified
	}

	return entry, nil
}

// Consume deletes the entry for purpose and subject.
func (m *Manager) Consume(ctx context.Context, purpose Purpose, subject string) error {
	return m.store.Delete(ctx, Key(purpose, subject))
}

// TTL returns how long issued codes stay valid.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
