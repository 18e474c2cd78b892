package authkit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// otpStore holds the pending passcode for an email address with a per-key
// TTL. Writes are last-write-wins: a new send overwrites any prior pending
// entry, so at most one live passcode exists per email. No durability is
// assumed across process restarts.
type otpStore struct {
	redis  *redis.Client
	prefix string
}

func newOTPStore(redisClient *redis.Client, prefix string) *otpStore {
	return &otpStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *otpStore) key(email string) string {
	return s.prefix + ":" + email
}

func (s *otpStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, s.key(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Get returns the pending passcode and whether an entry exists. An expired
// or never-written key reports absence, not an error.
func (s *otpStore) Get(ctx context.Context, email string) (string, bool, error) {
	code, err := s.redis.Get(ctx, s.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return code, true, nil
}

// Delete removes the entry. Deleting an absent key is not an error, which
// keeps the consume step of VerifyOTP idempotent.
func (s *otpStore) Delete(ctx context.Context, email string) error {
	if err := s.redis.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
