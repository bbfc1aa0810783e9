package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	MemberCountTTL       = 24 * time.Hour
	MemberCountKeyPrefix = "members:cnt:community"
	LockKeyPrefix        = "lock:members:community"
	LockTTL              = 300 * time.Millisecond
)

// MemberCountCache caches the per-community member count that the community
// listing computes. Cache-aside: writes invalidate, reads rebuild under a
// short lock so a hot community does not stampede the database.
type MemberCountCache struct {
	RDB *redis.Client
	ttl time.Duration
}

func NewMemberCountCache(rdb *redis.Client) *MemberCountCache {
	return &MemberCountCache{RDB: rdb, ttl: MemberCountTTL}
}

func (c *MemberCountCache) key(communityID uint64) string {
	return fmt.Sprintf("%s:%d", MemberCountKeyPrefix, communityID)
}

// Get returns (count, hit).
func (c *MemberCountCache) Get(ctx context.Context, communityID uint64) (int64, bool, error) {
	val, err := c.RDB.Get(ctx, c.key(communityID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

func (c *MemberCountCache) Set(ctx context.Context, communityID uint64, count int64) error {
	return c.RDB.Set(ctx, c.key(communityID), count, c.ttl).Err()
}

// Invalidate drops the cached count after a membership mutation; the next
// read rebuilds it from the database.
func (c *MemberCountCache) Invalidate(ctx context.Context, communityID uint64) error {
	err := c.RDB.Del(ctx, c.key(communityID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// DistLock guards cache rebuilds with a SetNX token lock.
type DistLock struct {
	RDB *redis.Client
}

func (l *DistLock) Acquire(ctx context.Context, communityID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, communityID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release deletes the lock only while it still holds our token.
func (l *DistLock) Release(ctx context.Context, communityID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, communityID)
	script := `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`
	return l.RDB.Eval(ctx, script, []string{key}, token).Err()
}
