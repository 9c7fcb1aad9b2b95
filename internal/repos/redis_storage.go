package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ecoloop:ls:"

// opTimeout bounds every Redis round trip; the stores above are synchronous
// and have no context of their own.
const opTimeout = 2 * time.Second

// RedisStorageRepo keeps local storage in Redis, one hash per session.
type RedisStorageRepo struct{ rdb *redis.Client }

func NewRedisStorageRepo(addr, password string, db int) *RedisStorageRepo {
	return &RedisStorageRepo{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func NewRedisStorageRepoFromClient(rdb *redis.Client) *RedisStorageRepo {
	return &RedisStorageRepo{rdb: rdb}
}

func (r *RedisStorageRepo) Ping(ctx context.Context) error { return r.rdb.Ping(ctx).Err() }

func (r *RedisStorageRepo) Close() error { return r.rdb.Close() }

func (r *RedisStorageRepo) For(sid string) *RedisStorage {
	return &RedisStorage{rdb: r.rdb, hash: redisKeyPrefix + sid}
}

type RedisStorage struct {
	rdb  *redis.Client
	hash string
}

func (s *RedisStorage) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	v, err := s.rdb.HGet(ctx, s.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("hget %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStorage) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.rdb.HSet(ctx, s.hash, key, value).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.rdb.HDel(ctx, s.hash, key).Err(); err != nil {
		return fmt.Errorf("hdel %s: %w", key, err)
	}
	return nil
}
