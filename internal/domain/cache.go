package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrCacheMiss is returned by ReportCache.Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// ReportCache stores computed reports per portfolio
// Entries are versioned by a per-portfolio generation: Invalidate bumps it so older entries are never read again
type ReportCache interface {
	// Get loads the value stored under key into dest
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores value under key
	Set(ctx context.Context, key string, value interface{}) error

	// Generation returns the current generation of a portfolio (0 if never invalidated)
	Generation(ctx context.Context, portfolioID uuid.UUID) (int64, error)

	// Invalidate bumps the generation of a portfolio
	Invalidate(ctx context.Context, portfolioID uuid.UUID) error
}
