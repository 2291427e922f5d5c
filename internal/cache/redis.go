package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/inflight/config"
	"github.com/Domenick1991/inflight/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client        *redis.Client
	knownCodesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, knownCodesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:        redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		knownCodesTTL: knownCodesTTL,
	}
}

// GetKnownCodes returns nil, nil on a cache miss.
func (c *RedisCache) GetKnownCodes(ctx context.Context) ([]domain.KnownCode, error) {
	data, err := c.client.Get(ctx, knownCodesKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var codes []domain.KnownCode
	if err := json.Unmarshal(data, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func (c *RedisCache) SetKnownCodes(ctx context.Context, codes []domain.KnownCode) error {
	payload, err := json.Marshal(codes)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, knownCodesKey(), payload, c.knownCodesTTL).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func knownCodesKey() string {
	return "cache:known_qr_codes"
}
