package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/wealthtrack-backend/internal/config"
	"github.com/simaogato/wealthtrack-backend/internal/date"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
	"github.com/simaogato/wealthtrack-backend/internal/monitoring"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/performance"
)

const (
	kindPerformance = "performance"
	kindHistory     = "history"
)

// PerformanceInput represents the input of a performance query
type PerformanceInput struct {
	PortfolioID   uuid.UUID
	EndDate       string // YYYY-MM-DD, today when empty
	IncludeAssets bool
}

// HistoryInput represents the input of a history query
type HistoryInput struct {
	PortfolioID   uuid.UUID
	EndDate       string // YYYY-MM-DD, today when empty
	IncludeAssets bool
}

// ReportService builds performance and history reports of a portfolio
type ReportService struct {
	AssetRepo         domain.AssetRepository
	BalanceChangeRepo domain.BalanceChangeRepository
	Cache             domain.ReportCache
	Metrics           *monitoring.Metrics
	Log               logrus.FieldLogger
	Config            config.ReportConfig

	// Today returns the reference date used when the input has none
	Today func() date.Date
}

// NewReportService creates a new ReportService instance
func NewReportService(
	assetRepo domain.AssetRepository,
	balanceChangeRepo domain.BalanceChangeRepository,
	cache domain.ReportCache,
	metrics *monitoring.Metrics,
	log logrus.FieldLogger,
	cfg config.ReportConfig,
) *ReportService {
	return &ReportService{
		AssetRepo:         assetRepo,
		BalanceChangeRepo: balanceChangeRepo,
		Cache:             cache,
		Metrics:           metrics,
		Log:               log,
		Config:            cfg,
		Today:             date.Today,
	}
}

// GetPerformance computes the annualized TWR and the capital/value/profit deltas of the portfolio
// (and optionally of each asset) over the total history and the trailing 1M/1Y/3Y windows
func (s *ReportService) GetPerformance(ctx context.Context, input PerformanceInput) (*PerformanceReport, error) {
	endDate, err := s.endDate(input.EndDate)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%s:%t", kindPerformance, endDate, input.IncludeAssets)
	var report PerformanceReport
	gen, cacheable, hit := s.fromCache(ctx, input.PortfolioID, kindPerformance, key, &report)
	if hit {
		return &report, nil
	}

	start := time.Now()
	set, err := s.loadChangeSet(ctx, input.PortfolioID, endDate)
	if err != nil {
		return nil, err
	}

	report = PerformanceReport{
		EndDate:   endDate,
		Portfolio: presentPeriods(set.PrepareCalculationsForPortfolio(endDate, true)),
	}

	if input.IncludeAssets {
		for _, asset := range set.PrepareCalculationsForAssets(endDate, true) {
			report.Assets = append(report.Assets, AssetPerformance{
				ID:          asset.AssetID.String(),
				Performance: presentPeriods(asset.Calculation),
			})
		}
	}

	s.Metrics.RecordReport(kindPerformance, time.Since(start))
	if cacheable {
		s.toCache(ctx, input.PortfolioID, gen, key, report)
	}

	return &report, nil
}

// GetHistory computes the chart series of the portfolio (and optionally of each asset):
// one row per balance change with the TWRs as they were on that day
func (s *ReportService) GetHistory(ctx context.Context, input HistoryInput) (*HistoryReport, error) {
	endDate, err := s.endDate(input.EndDate)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%s:%t", kindHistory, endDate, input.IncludeAssets)
	var report HistoryReport
	gen, cacheable, hit := s.fromCache(ctx, input.PortfolioID, kindHistory, key, &report)
	if hit {
		return &report, nil
	}

	start := time.Now()
	set, err := s.loadChangeSet(ctx, input.PortfolioID, endDate)
	if err != nil {
		return nil, err
	}

	report = HistoryReport{
		EndDate:   endDate,
		Portfolio: presentRows(set.PrepareHistoryForPortfolio()),
	}

	if input.IncludeAssets {
		assets, err := s.AssetRepo.ListByPortfolio(ctx, input.PortfolioID)
		if err != nil {
			return nil, fmt.Errorf("failed to list assets: %w", err)
		}
		byID := make(map[uuid.UUID]*domain.Asset, len(assets))
		for _, asset := range assets {
			byID[asset.ID] = asset
		}

		for _, history := range set.PrepareHistoryForAssets() {
			entry := AssetHistory{
				ID:     history.AssetID.String(),
				Values: presentRows(history.History),
			}
			if asset, ok := byID[history.AssetID]; ok {
				entry.Name = asset.Name
				entry.Group = asset.Group
			}
			latest := history.History[len(history.History)-1].Change
			entry.Value = latest.Value.InexactFloat64()
			entry.Capital = latest.Capital.InexactFloat64()

			report.Assets = append(report.Assets, entry)
		}
	}

	s.Metrics.RecordReport(kindHistory, time.Since(start))
	if cacheable {
		s.toCache(ctx, input.PortfolioID, gen, key, report)
	}

	return &report, nil
}

func (s *ReportService) endDate(value string) (date.Date, error) {
	if value == "" {
		return s.Today(), nil
	}
	endDate, err := date.Parse(value)
	if err != nil {
		return date.Date{}, fmt.Errorf("%w: end_date: %v", domain.ErrInvalidArgument, err)
	}
	return endDate, nil
}

func (s *ReportService) loadChangeSet(ctx context.Context, portfolioID uuid.UUID, endDate date.Date) (*performance.ChangeSet, error) {
	changes, err := s.BalanceChangeRepo.ListByPortfolio(ctx, portfolioID, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance changes: %w", err)
	}

	if s.Config.StrictOrdering {
		if err := performance.CheckChronological(changes); err != nil {
			return nil, err
		}
	}

	s.Log.WithFields(logrus.Fields{
		"portfolio_id": portfolioID,
		"end_date":     endDate.String(),
		"changes":      len(changes),
	}).Debug("building change set")

	return performance.NewChangeSet(changes), nil
}

// fromCache loads a cached report. It returns the generation the lookup was made
// against, so the report built on a miss is stored under the generation of the data
// it was built from: an Invalidate racing with the build then leaves it unreachable.
// Cache failures are logged and treated as misses that must not be cached
func (s *ReportService) fromCache(ctx context.Context, portfolioID uuid.UUID, kind, key string, dest interface{}) (gen int64, cacheable, hit bool) {
	gen, err := s.Cache.Generation(ctx, portfolioID)
	if err != nil {
		s.Log.WithError(err).WithField("portfolio_id", portfolioID).Warn("report cache unavailable")
		return 0, false, false
	}

	err = s.Cache.Get(ctx, cacheKey(portfolioID, gen, key), dest)
	if err == nil {
		s.Metrics.RecordCache(kind, true)
		return gen, true, true
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		s.Log.WithError(err).WithField("portfolio_id", portfolioID).Warn("failed to read cached report")
	}
	s.Metrics.RecordCache(kind, false)
	return gen, true, false
}

func (s *ReportService) toCache(ctx context.Context, portfolioID uuid.UUID, gen int64, key string, report interface{}) {
	if err := s.Cache.Set(ctx, cacheKey(portfolioID, gen, key), report); err != nil {
		s.Log.WithError(err).WithField("portfolio_id", portfolioID).Warn("failed to cache report")
	}
}

func cacheKey(portfolioID uuid.UUID, generation int64, key string) string {
	return fmt.Sprintf("report:%s:%d:%s", portfolioID, generation, key)
}
