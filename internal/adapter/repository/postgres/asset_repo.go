package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

// GetByID retrieves an asset by its ID
func (r *assetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	query := `
		SELECT id, portfolio_id, name, asset_group
		FROM assets
		WHERE id = $1
	`

	var asset domain.Asset
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&asset.ID,
		&asset.PortfolioID,
		&asset.Name,
		&asset.Group,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("asset %s %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get asset by ID: %w", err)
	}

	return &asset, nil
}

// Create creates a new asset
func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `
		INSERT INTO assets (id, portfolio_id, name, asset_group)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		asset.ID,
		asset.PortfolioID,
		asset.Name,
		asset.Group,
	)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// ListByPortfolio retrieves all assets of a portfolio ordered by name
func (r *assetRepository) ListByPortfolio(ctx context.Context, portfolioID uuid.UUID) ([]*domain.Asset, error) {
	query := `
		SELECT id, portfolio_id, name, asset_group
		FROM assets
		WHERE portfolio_id = $1
		ORDER BY name, id
	`

	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]*domain.Asset, 0)
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(&asset.ID, &asset.PortfolioID, &asset.Name, &asset.Group); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, &asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assets: %w", err)
	}

	return assets, nil
}
