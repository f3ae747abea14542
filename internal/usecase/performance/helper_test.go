package performance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthtrack-backend/internal/date"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

var (
	assetA1 = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	assetA2 = uuid.MustParse("00000000-0000-0000-0000-0000000000a2")
)

func change(asset uuid.UUID, on string, capital, value int64) domain.AssetBalanceChange {
	return domain.AssetBalanceChange{
		ID:      uuid.New(),
		AssetID: asset,
		Capital: decimal.NewFromInt(capital),
		Value:   decimal.NewFromInt(value),
		Date:    date.MustParse(on),
	}
}

// fixtureChanges is a two-asset history sorted by date, A1 and A2 sharing the last day.
func fixtureChanges() []domain.AssetBalanceChange {
	return []domain.AssetBalanceChange{
		change(assetA1, "2021-12-01", 1000, 1000),
		change(assetA1, "2021-12-31", 1000, 1100),
		change(assetA2, "2022-06-01", 500, 500),
		change(assetA2, "2022-09-01", 500, 450),
		change(assetA2, "2022-12-01", 600, 540),
		change(assetA1, "2022-12-31", 1000, 1210),
		change(assetA2, "2022-12-31", 600, 630),
	}
}

func seq(points ...Change) Sequence {
	s := Sequence(points)
	s.link()
	return s
}

func point(on string, capital, value float64) Change {
	return Change{
		Capital: decimal.NewFromFloat(capital),
		Value:   decimal.NewFromFloat(value),
		Date:    date.MustParse(on),
	}
}
