package investment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/wealthtrack-backend/internal/date"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// RecordInput represents the input of a new balance observation
type RecordInput struct {
	AssetID      uuid.UUID
	Contribution decimal.Decimal // Capital added (positive) or withdrawn (negative) since the latest record
	Value        decimal.Decimal // Market value on Date
	Date         string          // YYYY-MM-DD, today when empty
}

// CreateAssetInput represents the input of a new asset
type CreateAssetInput struct {
	PortfolioID uuid.UUID
	Name        string
	Group       string
}

// InvestmentService handles asset and balance change operations
type InvestmentService struct {
	AssetRepo         domain.AssetRepository
	BalanceChangeRepo domain.BalanceChangeRepository
	Cache             domain.ReportCache
	Log               logrus.FieldLogger

	// Today returns the date used when a record has none
	Today func() date.Date
}

// NewInvestmentService creates a new InvestmentService instance
func NewInvestmentService(
	assetRepo domain.AssetRepository,
	balanceChangeRepo domain.BalanceChangeRepository,
	cache domain.ReportCache,
	log logrus.FieldLogger,
) *InvestmentService {
	return &InvestmentService{
		AssetRepo:         assetRepo,
		BalanceChangeRepo: balanceChangeRepo,
		Cache:             cache,
		Log:               log,
		Today:             date.Today,
	}
}

// CreateAsset validates and persists a new asset
func (s *InvestmentService) CreateAsset(ctx context.Context, input CreateAssetInput) (*domain.Asset, error) {
	asset := &domain.Asset{
		ID:          uuid.New(),
		PortfolioID: input.PortfolioID,
		Name:        input.Name,
		Group:       input.Group,
	}

	if err := asset.Validate(); err != nil {
		return nil, err
	}

	if err := s.AssetRepo.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return asset, nil
}

// ListAssets returns the assets of a portfolio ordered by name
func (s *InvestmentService) ListAssets(ctx context.Context, portfolioID uuid.UUID) ([]*domain.Asset, error) {
	return s.AssetRepo.ListByPortfolio(ctx, portfolioID)
}

// RecordBalanceChange records a new observation of an asset
// Logic: Capital = latest capital (0 when the asset has no history) + contribution
// The record must not be older than the latest one, so the asset's sequence stays chronological
// The portfolio's cached reports are invalidated afterwards
func (s *InvestmentService) RecordBalanceChange(ctx context.Context, input RecordInput) (*domain.AssetBalanceChange, error) {
	on := s.Today()
	if input.Date != "" {
		parsed, err := date.Parse(input.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date: %v", domain.ErrInvalidArgument, err)
		}
		on = parsed
	}

	if input.Value.IsNegative() {
		return nil, fmt.Errorf("%w: market value must not be negative", domain.ErrInvalidArgument)
	}

	asset, err := s.AssetRepo.GetByID(ctx, input.AssetID)
	if err != nil {
		return nil, err
	}

	capital := decimal.Zero
	latest, err := s.BalanceChangeRepo.GetLatest(ctx, asset.ID)
	switch {
	case err == nil:
		if on.Before(latest.Date) {
			return nil, fmt.Errorf("%w: date %s is before the latest record (%s)", domain.ErrInvalidArgument, on, latest.Date)
		}
		capital = latest.Capital
	case errors.Is(err, domain.ErrNotFound):
		// First record of the asset
	default:
		return nil, err
	}

	change := &domain.AssetBalanceChange{
		ID:      uuid.New(),
		AssetID: asset.ID,
		Capital: capital.Add(input.Contribution),
		Value:   input.Value,
		Date:    on,
	}

	if err := change.Validate(); err != nil {
		return nil, err
	}

	if err := s.BalanceChangeRepo.Add(ctx, change); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	if err := s.Cache.Invalidate(ctx, asset.PortfolioID); err != nil {
		s.Log.WithError(err).WithField("portfolio_id", asset.PortfolioID).Warn("failed to invalidate report cache")
	}

	s.Log.WithFields(logrus.Fields{
		"asset_id": asset.ID,
		"date":     on.String(),
		"capital":  change.Capital.String(),
		"value":    change.Value.String(),
	}).Info("balance change recorded")

	return change, nil
}

// CalculateProfit calculates the profit/loss of an asset
// Logic: Profit = Value - Capital of the latest record, 0 when the asset has no history
func (s *InvestmentService) CalculateProfit(ctx context.Context, assetID uuid.UUID) (decimal.Decimal, error) {
	// Verify asset exists
	if _, err := s.AssetRepo.GetByID(ctx, assetID); err != nil {
		return decimal.Zero, err
	}

	latest, err := s.BalanceChangeRepo.GetLatest(ctx, assetID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return latest.Profit(), nil
}
