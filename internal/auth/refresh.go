package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RefreshStore keeps opaque refresh tokens in Redis, mapping token to
// user id with a TTL. A token is valid until it expires or is revoked.
type RefreshStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRefreshStore(rdb *redis.Client, ttl time.Duration) *RefreshStore {
	return &RefreshStore{rdb: rdb, ttl: ttl}
}

// Issue stores a fresh random token for the user and returns it with
// its expiry as a unix timestamp.
func (s *RefreshStore) Issue(ctx context.Context, userID int) (string, int64, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, token, userID, s.ttl).Err(); err != nil {
		return "", 0, err
	}
	return token, time.Now().Add(s.ttl).Unix(), nil
}

// Verify looks the token up. ok is false when the token was never
// issued, expired, or has been revoked.
func (s *RefreshStore) Verify(ctx context.Context, token string) (userID int, ok bool, err error) {
	userID, err = s.rdb.Get(ctx, token).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return userID, true, nil
}

// Revoke deletes the token and reports whether a record existed.
func (s *RefreshStore) Revoke(ctx context.Context, token string) (bool, error) {
	deleted, err := s.rdb.Del(ctx, token).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// Reset wipes the store. Test and admin support only.
func (s *RefreshStore) Reset(ctx context.Context) error {
	return s.rdb.FlushDB(ctx).Err()
}
