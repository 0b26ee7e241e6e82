package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore keeps hashed two-factor codes with a short TTL. A code is
// consumed the moment it is read, so it can never verify twice.
type CodeStore struct {
	rdb *redis.Client
}

func NewCodeStore(rdb *redis.Client) *CodeStore {
	return &CodeStore{rdb: rdb}
}

func codeKey(userID int64) string {
	return fmt.Sprintf("2fa:%d", userID)
}

// Save stores the code hash for the user, replacing any earlier one.
func (s *CodeStore) Save(ctx context.Context, userID int64, hash string, ttl time.Duration) error {
	return s.rdb.Set(ctx, codeKey(userID), hash, ttl).Err()
}

// Take returns the stored hash and deletes it atomically. Returns "" when
// no code is pending (never issued, expired, or already consumed).
func (s *CodeStore) Take(ctx context.Context, userID int64) (string, error) {
	hash, err := s.rdb.GetDel(ctx, codeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}
