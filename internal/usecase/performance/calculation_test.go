package performance

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthtrack-backend/internal/date"
)

var fixtureEndDate = date.MustParse("2022-12-31")

func assertDecimal(t *testing.T, want int64, got decimal.NullDecimal) {
	t.Helper()
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(decimal.NewFromInt(want)), "want %d, got %s", want, got.Decimal)
}

func TestPrepareCalculationsForPortfolio_Fixture(t *testing.T) {
	set := NewChangeSet(fixtureChanges())
	calc := set.PrepareCalculationsForPortfolio(fixtureEndDate, true)

	total := calc.Total()
	require.NotNil(t, total)
	require.NotNil(t, total.AnnualizedTWR)
	assert.InDelta(t, 0.1724, *total.AnnualizedTWR, 0.0001)
	assertDecimal(t, 600, total.CapitalChange)
	assertDecimal(t, 840, total.ValueChange)
	assertDecimal(t, 240, total.ProfitChange)

	// 1M keeps 2022-12-01 and 2022-12-31, anchored on 2022-09-01 (1500/1550)
	month := calc["1M"]
	require.NotNil(t, month)
	assert.InDelta(t, 2.680917, *month.AnnualizedTWR, 0.000001)
	assertDecimal(t, 100, month.CapitalChange)
	assertDecimal(t, 290, month.ValueChange)
	assertDecimal(t, 190, month.ProfitChange)

	// 1Y starts at 2022-06-01, anchored on 2021-12-31 (1000/1100)
	year := calc["1Y"]
	require.NotNil(t, year)
	assert.InDelta(t, 0.079878, *year.AnnualizedTWR, 0.000001)
	assertDecimal(t, 600, year.CapitalChange)
	assertDecimal(t, 740, year.ValueChange)
	assertDecimal(t, 140, year.ProfitChange)

	// The whole history fits in 3Y
	assert.Same(t, total, calc["3Y"])
}

func TestPrepareCalculationsForAssets_Fixture(t *testing.T) {
	set := NewChangeSet(fixtureChanges())
	calcs := set.PrepareCalculationsForAssets(fixtureEndDate, true)
	require.Len(t, calcs, 2)

	a1 := calcs[0]
	assert.Equal(t, assetA1, a1.AssetID)
	require.NotNil(t, a1.Calculation.Total())
	assert.InDelta(t, 0.1926, *a1.Calculation.Total().AnnualizedTWR, 0.0001)
	assertDecimal(t, 210, a1.Calculation.Total().ProfitChange)
	assertDecimal(t, 0, a1.Calculation.Total().CapitalChange)

	// Only 2022-12-31 is inside the last year, anchored on 2021-12-31
	a1Year := a1.Calculation["1Y"]
	require.NotNil(t, a1Year)
	assert.InDelta(t, 0.1, *a1Year.AnnualizedTWR, 1e-9)
	assertDecimal(t, 110, a1Year.ValueChange)
	assertDecimal(t, 110, a1Year.ProfitChange)
	assert.InDelta(t, math.Pow(1.1, 12)-1, *a1.Calculation["1M"].AnnualizedTWR, 1e-9)

	a2 := calcs[1]
	assert.Equal(t, assetA2, a2.AssetID)
	require.NotNil(t, a2.Calculation.Total())
	assert.InDelta(t, 0.0461, *a2.Calculation.Total().AnnualizedTWR, 0.0001)
	assertDecimal(t, 30, a2.Calculation.Total().ProfitChange)
	assertDecimal(t, 100, a2.Calculation.Total().CapitalChange)
	assertDecimal(t, 130, a2.Calculation.Total().ValueChange)
	assert.Same(t, a2.Calculation.Total(), a2.Calculation["1Y"])
	assert.Same(t, a2.Calculation.Total(), a2.Calculation["3Y"])
}

func TestPrepareCalculations_WithoutCapitalAndProfit(t *testing.T) {
	set := NewChangeSet(fixtureChanges())
	calc := set.PrepareCalculationsForPortfolio(fixtureEndDate, false)

	for key, c := range calc {
		require.NotNil(t, c, key)
		assert.NotNil(t, c.AnnualizedTWR, key)
		assert.False(t, c.CapitalChange.Valid, key)
		assert.False(t, c.ValueChange.Valid, key)
		assert.False(t, c.ProfitChange.Valid, key)
	}
}

func TestCalculatePeriods_SinglePointHasNoSignal(t *testing.T) {
	calc := CalculatePeriods(seq(point("2022-01-01", 100, 100)), fixtureEndDate, true)

	require.Len(t, calc, len(Periods)+1)
	for key, c := range calc {
		assert.Nil(t, c, key)
	}
}

func TestCalculatePeriods_EmptyWindow(t *testing.T) {
	// Nothing happened during the last month
	s := seq(point("2022-01-01", 100, 100), point("2022-02-01", 100, 110))
	calc := CalculatePeriods(s, fixtureEndDate, true)

	assert.NotNil(t, calc.Total())
	assert.Nil(t, calc["1M"])
	assert.Same(t, calc.Total(), calc["1Y"])
}

func TestCalculatePeriods_ZeroElapsedDays(t *testing.T) {
	s := seq(point("2022-12-30", 100, 100), point("2022-12-31", 100, 110))

	// Reference date on the first change: no time elapsed, no TWR, but deltas
	calc := CalculatePeriods(s, date.MustParse("2022-12-30"), true)
	total := calc.Total()
	require.NotNil(t, total)
	assert.Nil(t, total.AnnualizedTWR)
	assertDecimal(t, 10, total.ValueChange)
}

func TestCalculatePeriods_WindowBoundaryIsExclusive(t *testing.T) {
	// 2022-11-30 is exactly one month before the end date and falls outside 1M
	s := seq(point("2022-11-30", 100, 100), point("2022-12-15", 100, 105))
	calc := CalculatePeriods(s, fixtureEndDate, true)

	month := calc["1M"]
	require.NotNil(t, month)
	assert.NotSame(t, calc.Total(), month)
	assert.InDelta(t, math.Pow(1.05, 12)-1, *month.AnnualizedTWR, 1e-9)
	assertDecimal(t, 5, month.ValueChange)
}

func TestPeriodReturn(t *testing.T) {
	tests := []struct {
		name     string
		previous Change
		current  Change
		want     float64
	}{
		{
			name:     "plain growth",
			previous: point("2022-01-01", 1000, 1000),
			current:  point("2022-02-01", 1000, 1100),
			want:     1.1,
		},
		{
			name:     "contribution is neutralized",
			previous: point("2022-01-01", 500, 450),
			current:  point("2022-02-01", 600, 540),
			want:     440.0 / 450.0,
		},
		{
			name:     "withdrawal is neutralized",
			previous: point("2022-01-01", 1000, 1200),
			current:  point("2022-02-01", 800, 1000),
			want:     1.0,
		},
		{
			name:     "zero valued predecessor",
			previous: point("2022-01-01", 0, 0),
			current:  point("2022-02-01", 100, 100),
			want:     1.0,
		},
		{
			name:     "negative growth is clamped",
			previous: point("2022-01-01", 100, 100),
			current:  point("2022-02-01", 300, 50),
			want:     1.0,
		},
		{
			name:     "total loss",
			previous: point("2022-01-01", 100, 100),
			current:  point("2022-02-01", 100, 0),
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seq(tt.previous, tt.current)

			_, ok := s.PeriodReturn(0)
			assert.False(t, ok)

			got, ok := s.PeriodReturn(1)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestChainedTWR_Fixture(t *testing.T) {
	set := NewChangeSet(fixtureChanges())
	p := set.Portfolio()

	twr := chainedTWR(window{seq: p, from: 0, to: len(p)})
	assert.InDelta(t, 0.18787, twr, 0.00001)
}

func TestChange_Profit(t *testing.T) {
	c := point("2022-01-01", 600, 630.005)
	assert.True(t, c.Profit().Equal(decimal.RequireFromString("30.01")), c.Profit().String())
}
