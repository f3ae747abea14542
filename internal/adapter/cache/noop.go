package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// Noop is a domain.ReportCache that stores nothing, used when Redis is disabled
type Noop struct{}

func (Noop) Get(ctx context.Context, key string, dest interface{}) error {
	return domain.ErrCacheMiss
}

func (Noop) Set(ctx context.Context, key string, value interface{}) error { return nil }

func (Noop) Generation(ctx context.Context, portfolioID uuid.UUID) (int64, error) { return 0, nil }

func (Noop) Invalidate(ctx context.Context, portfolioID uuid.UUID) error { return nil }
