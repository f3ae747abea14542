package domain

import (
	"context"

	"github.com/google/uuid"

	"github.com/simaogato/wealthtrack-backend/internal/date"
)

// AssetRepository defines the interface for asset persistence operations
type AssetRepository interface {
	// GetByID retrieves an asset by its ID
	// Returns an error wrapping ErrNotFound if it does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)

	// Create creates a new asset
	Create(ctx context.Context, asset *Asset) error

	// ListByPortfolio retrieves all assets of a portfolio ordered by name
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]*Asset, error)
}

// BalanceChangeRepository defines the interface for balance change persistence operations
type BalanceChangeRepository interface {
	// Add creates a new balance change entry
	Add(ctx context.Context, change *AssetBalanceChange) error

	// GetLatest retrieves the most recent balance change for a given asset
	// Returns an error wrapping ErrNotFound if the asset has no history
	GetLatest(ctx context.Context, assetID uuid.UUID) (*AssetBalanceChange, error)

	// ListByPortfolio retrieves every balance change of the portfolio's assets observed
	// on or before until, sorted ascending by date
	ListByPortfolio(ctx context.Context, portfolioID uuid.UUID, until date.Date) ([]AssetBalanceChange, error)
}
