package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
}

// NewRedisRepo creates a record store backed by Redis. Expiry is delegated to
// key TTLs.
func NewRedisRepo(rdb *redis.Client) Repo {
	return &redisRepo{rdb: rdb}
}

func recordKey(playerID string) string {
	return fmt.Sprintf("session:disconnected:%s", playerID)
}

func (r *redisRepo) Save(ctx context.Context, rec Record, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return r.rdb.Set(ctx, recordKey(rec.PlayerID), data, ttl).Err()
}

func (r *redisRepo) Take(ctx context.Context, playerID string) (Record, bool, error) {
	key := recordKey(playerID)
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return Record{}, false, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, true, nil
}

func (r *redisRepo) Delete(ctx context.Context, playerID string) error {
	return r.rdb.Del(ctx, recordKey(playerID)).Err()
}
