package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
)

const (
	dedupKeyPrefix = "hydration:dedup:"

	// Far longer than any cool-down; an expired marker reads as never fired.
	dedupTTL = 24 * time.Hour
)

type redisDedupStore struct {
	client *redis.Client
}

func NewRedisDedupStore(client *redis.Client) domain.DedupStore {
	return &redisDedupStore{
		client: client,
	}
}

func (r *redisDedupStore) Get(ctx context.Context, key string) (int64, bool, error) {
	if key == "" {
		return 0, false, ErrEmptyKey
	}

	val, err := r.client.Get(ctx, dedupKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}

	firedAt, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: key %s holds %q", domain.ErrInvalidDedupValue, key, val)
	}

	return firedAt, true, nil
}

func (r *redisDedupStore) Set(ctx context.Context, key string, firedAtMillis int64) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := r.client.Set(ctx, dedupKeyPrefix+key, strconv.FormatInt(firedAtMillis, 10), dedupTTL).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	return nil
}
