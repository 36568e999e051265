package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"bodega/backend/internal/domain"
)

type RedisSettingCache struct {
	client *redis.Client
}

func NewRedisSettingCache(addr string, password string, db int) *RedisSettingCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisSettingCache{client: client}
}

func (c *RedisSettingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisSettingCache) Close() error {
	return c.client.Close()
}

func settingKey(attribute string) string {
	return "sys_setting:" + attribute
}

func (c *RedisSettingCache) Get(ctx context.Context, attribute string) (*domain.SysSetting, bool, error) {
	val, err := c.client.Get(ctx, settingKey(attribute)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var setting domain.SysSetting
	if err := json.Unmarshal([]byte(val), &setting); err != nil {
		return nil, false, err
	}
	return &setting, true, nil
}

func (c *RedisSettingCache) Set(ctx context.Context, attribute string, value *domain.SysSetting, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, settingKey(attribute), payload, ttl).Err()
}

func (c *RedisSettingCache) Invalidate(ctx context.Context, attribute string) error {
	return c.client.Del(ctx, settingKey(attribute)).Err()
}
