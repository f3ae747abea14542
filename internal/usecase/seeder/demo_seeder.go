package seeder

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

// Fixed UUIDs of the demo portfolio, so clients can query it without listing first
var (
	DEMO_PORTFOLIO = uuid.MustParse("00000000-0000-0000-0000-0000000000f0")
	DEMO_WORLD_ETF = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	DEMO_BOND_FUND = uuid.MustParse("00000000-0000-0000-0000-0000000000a2")
)

// DemoRecord is one balance observation of a demo asset
type DemoRecord struct {
	Date    string
	Capital int64
	Value   int64
}

// DemoAsset defines an asset to be seeded along with its history
type DemoAsset struct {
	ID      uuid.UUID
	Name    string
	Group   string
	Records []DemoRecord
}

// DemoAssets is the seeded portfolio: a growing equity fund and a bond fund
// that loses value before a top-up and a recovery
var DemoAssets = []DemoAsset{
	{
		ID:    DEMO_WORLD_ETF,
		Name:  "World ETF",
		Group: "Stocks",
		Records: []DemoRecord{
			{Date: "2021-12-01", Capital: 1000, Value: 1000},
			{Date: "2021-12-31", Capital: 1000, Value: 1100},
			{Date: "2022-12-31", Capital: 1000, Value: 1210},
		},
	},
	{
		ID:    DEMO_BOND_FUND,
		Name:  "Bond Fund",
		Group: "Bonds",
		Records: []DemoRecord{
			{Date: "2022-06-01", Capital: 500, Value: 500},
			{Date: "2022-09-01", Capital: 500, Value: 450},
			{Date: "2022-12-01", Capital: 600, Value: 540},
			{Date: "2022-12-31", Capital: 600, Value: 630},
		},
	},
}

// DemoSeeder handles seeding of the demo portfolio
type DemoSeeder struct {
	assetRepo  domain.AssetRepository
	changeRepo domain.BalanceChangeRepository
	log        logrus.FieldLogger
}

// NewDemoSeeder creates a new DemoSeeder instance
func NewDemoSeeder(assetRepo domain.AssetRepository, changeRepo domain.BalanceChangeRepository, log logrus.FieldLogger) *DemoSeeder {
	return &DemoSeeder{
		assetRepo:  assetRepo,
		changeRepo: changeRepo,
		log:        log,
	}
}

// Seed ensures every demo asset and each of its records exist in the database
// Records already present (same asset and date) are skipped, so a run interrupted
// halfway is completed by the next one
func (s *DemoSeeder) Seed(ctx context.Context) error {
	existing, err := s.changeRepo.ListByPortfolio(ctx, DEMO_PORTFOLIO, lastDemoDate())
	if err != nil {
		return fmt.Errorf("failed to load demo history: %w", err)
	}

	recorded := make(map[uuid.UUID]map[date.Date]bool)
	for _, change := range existing {
		if recorded[change.AssetID] == nil {
			recorded[change.AssetID] = make(map[date.Date]bool)
		}
		recorded[change.AssetID][change.Date] = true
	}

	for _, demo := range DemoAssets {
		if err := s.ensureAsset(ctx, demo); err != nil {
			return err
		}

		added := 0
		for _, record := range demo.Records {
			on := date.MustParse(record.Date)
			if recorded[demo.ID][on] {
				continue
			}

			change := &domain.AssetBalanceChange{
				ID:      uuid.New(),
				AssetID: demo.ID,
				Capital: decimal.NewFromInt(record.Capital),
				Value:   decimal.NewFromInt(record.Value),
				Date:    on,
			}
			if err := s.changeRepo.Add(ctx, change); err != nil {
				return fmt.Errorf("failed to seed history of %s: %w", demo.Name, err)
			}
			added++
		}

		if added > 0 {
			s.log.WithFields(logrus.Fields{
				"asset_id": demo.ID,
				"records":  added,
			}).Info("demo asset seeded")
		}
	}

	return nil
}

// ensureAsset creates a demo asset unless it exists
func (s *DemoSeeder) ensureAsset(ctx context.Context, demo DemoAsset) error {
	_, err := s.assetRepo.GetByID(ctx, demo.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	asset := &domain.Asset{
		ID:          demo.ID,
		PortfolioID: DEMO_PORTFOLIO,
		Name:        demo.Name,
		Group:       demo.Group,
	}

	// Validate before creating
	if err := asset.Validate(); err != nil {
		return err
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return fmt.Errorf("failed to seed asset %s: %w", demo.Name, err)
	}
	return nil
}

// lastDemoDate returns the date of the most recent demo record
func lastDemoDate() date.Date {
	var last date.Date
	for _, demo := range DemoAssets {
		for _, record := range demo.Records {
			if on := date.MustParse(record.Date); on.After(last) {
				last = on
			}
		}
	}
	return last
}
