package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "storefront:"

// RedisPersistence stores records without expiry.
type RedisPersistence struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedisPersistence(ctx context.Context, redisConn *redis.Client, log *zap.Logger) (*RedisPersistence, error) {
	if redisConn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	if err := redisConn.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisPersistence{rdb: redisConn, log: log}, nil
}

func (r *RedisPersistence) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		r.log.Error("RedisPersistence.Get", zap.String("key", key), zap.Error(err))
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisPersistence) Set(ctx context.Context, key string, value []byte) error {
	err := r.rdb.Set(ctx, redisKeyPrefix+key, value, 0).Err()
	if err != nil {
		r.log.Error("RedisPersistence.Set", zap.String("key", key), zap.Error(err))
	}
	return err
}

func (r *RedisPersistence) Remove(ctx context.Context, key string) error {
	err := r.rdb.Del(ctx, redisKeyPrefix+key).Err()
	if err != nil {
		r.log.Error("RedisPersistence.Remove", zap.String("key", key), zap.Error(err))
	}
	return err
}
