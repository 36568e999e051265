package cache

import (
	"context"
	"time"

	"bodega/backend/internal/domain"
)

// SettingCache fronts sys_settings lookups by attribute. Writers must
// invalidate the attribute after any mutation.
type SettingCache interface {
	Get(ctx context.Context, attribute string) (*domain.SysSetting, bool, error)
	Set(ctx context.Context, attribute string, value *domain.SysSetting, ttl time.Duration) error
	Invalidate(ctx context.Context, attribute string) error
}

type NoopSettingCache struct{}

func (NoopSettingCache) Get(_ context.Context, _ string) (*domain.SysSetting, bool, error) {
	return nil, false, nil
}

func (NoopSettingCache) Set(_ context.Context, _ string, _ *domain.SysSetting, _ time.Duration) error {
	return nil
}

func (NoopSettingCache) Invalidate(_ context.Context, _ string) error {
	return nil
}
