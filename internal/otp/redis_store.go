package otp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxTxRetries = 5

// Store persists entries with a TTL. Mutate applies fn atomically: when keep
// is true the modified entry is written back with its remaining TTL,
// otherwise the entry is deleted. fn's error is returned after the write.
type Store interface {
	Save(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
	Get(ctx context.Context, key string) (*Entry, error)
	Delete(ctx context.Context, key string) error
	Mutate(ctx context.Context, key string, fn func(e *Entry) (keep bool, err error)) (*Entry, error)
}

// RedisStore keeps each entry in a single Redis hash.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save replaces any previous entry under key.
func (s *RedisStore) Save(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("otp ttl must be positive")
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, encodeEntry(entry))
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store otp entry: %w", err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	return getEntry(ctx, s.client, key)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete otp entry: %w", err)
	}
	return nil
}

func (s *RedisStore) Mutate(ctx context.Context, key string, fn func(e *Entry) (bool, error)) (*Entry, error) {
	var (
		entry *Entry
		fnErr error
	)

	txf := func(tx *redis.Tx) error {
		var err error
		entry, err = getEntry(ctx, tx, key)
		if err != nil {
			return err
		}

		var keep bool
		keep, fnErr = fn(entry)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if keep {
				// HSET on an existing key leaves its TTL untouched
				pipe.HSet(ctx, key, encodeEntry(entry))
			} else {
				pipe.Del(ctx, key)
			}
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			if errors.Is(err, ErrEntryNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to update otp entry: %w", err)
		}
		return entry, fnErr
	}

	return nil, fmt.Errorf("failed to update otp entry: too much contention on %s", key)
}

// hashGetter is satisfied by both *redis.Client and *redis.Tx
type hashGetter interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func getEntry(ctx context.Context, c hashGetter, key string) (*Entry, error) {
	data, err := c.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get otp entry: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEntryNotFound
	}
	return decodeEntry(data)
}

func encodeEntry(e *Entry) map[string]any {
	return map[string]any{
		"code_hash":    e.CodeHash,
		"phone_number": e.PhoneNumber,
		"payload":      string(e.Payload),
		"attempts":     e.Attempts,
		"verified":     strconv.FormatBool(e.Verified),
		"created_at":   e.CreatedAt.UnixMilli(),
		"expires_at":   e.ExpiresAt.UnixMilli(),
	}
}

func decodeEntry(data map[string]string) (*Entry, error) {
	attempts, err := strconv.Atoi(data["attempts"])
	if err != nil {
		return nil, fmt.Errorf("corrupt otp entry attempts: %w", err)
	}
	verified, err := strconv.ParseBool(data["verified"])
	if err != nil {
		return nil, fmt.Errorf("corrupt otp entry verified flag: %w", err)
	}
	createdAt, err := strconv.ParseInt(data["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt otp entry created_at: %w", err)
	}
	expiresAt, err := strconv.ParseInt(data["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt otp entry expires_at: %w", err)
	}

	e := &Entry{
		CodeHash:    data["code_hash"],
		PhoneNumber: data["phone_number"],
		Attempts:    attempts,
		Verified:    verified,
		CreatedAt:   time.UnixMilli(createdAt),
		ExpiresAt:   time.UnixMilli(expiresAt),
	}
	if p := data["payload"]; p != "" {
		e.Payload = []byte(p)
	}
	return e, nil
}
