package performance

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

func TestSetAllChanges_Grouping(t *testing.T) {
	set := NewChangeSet(fixtureChanges())

	a1 := set.Asset(assetA1)
	a2 := set.Asset(assetA2)
	require.Len(t, a1, 3)
	require.Len(t, a2, 4)

	assert.Equal(t, "2021-12-01", a1[0].Date.String())
	assert.Equal(t, "2021-12-31", a1[1].Date.String())
	assert.Equal(t, "2022-12-31", a1[2].Date.String())
	assert.True(t, a1[2].Value.Equal(decimal.NewFromInt(1210)))

	assert.Equal(t, "2022-06-01", a2[0].Date.String())
	assert.True(t, a2[3].Capital.Equal(decimal.NewFromInt(600)))

	assert.Nil(t, set.Asset(uuid.New()))
	assert.Equal(t, []uuid.UUID{assetA1, assetA2}, set.AssetIDs())
}

func TestSetAllChanges_PortfolioSummation(t *testing.T) {
	set := NewChangeSet(fixtureChanges())
	portfolio := set.Portfolio()

	expected := []struct {
		date    string
		capital int64
		value   int64
	}{
		{"2021-12-01", 1000, 1000},
		{"2021-12-31", 1000, 1100},
		{"2022-06-01", 1500, 1600},
		{"2022-09-01", 1500, 1550},
		{"2022-12-01", 1600, 1640},
		{"2022-12-31", 1600, 1840}, // A1 and A2 on the same day merge into one point
	}

	require.Len(t, portfolio, len(expected))
	for i, want := range expected {
		assert.Equal(t, want.date, portfolio[i].Date.String(), "date of point %d", i)
		assert.True(t, portfolio[i].Capital.Equal(decimal.NewFromInt(want.capital)), "capital of point %d: %s", i, portfolio[i].Capital)
		assert.True(t, portfolio[i].Value.Equal(decimal.NewFromInt(want.value)), "value of point %d: %s", i, portfolio[i].Value)
	}
}

func TestSetAllChanges_PredecessorChains(t *testing.T) {
	set := NewChangeSet(fixtureChanges())

	sequences := map[string]Sequence{
		"A1":        set.Asset(assetA1),
		"A2":        set.Asset(assetA2),
		"portfolio": set.Portfolio(),
	}

	for name, s := range sequences {
		t.Run(name, func(t *testing.T) {
			_, ok := s.Predecessor(0)
			assert.False(t, ok, "first change must not have a predecessor")
			assert.Equal(t, NoPrevious, s[0].Previous)

			for i := 1; i < len(s); i++ {
				assert.Equal(t, i-1, s[i].Previous)
				prev, ok := s.Predecessor(i)
				require.True(t, ok)
				assert.Equal(t, s[i-1].Date, prev.Date)
			}
		})
	}
}

func TestSetAllChanges_Empty(t *testing.T) {
	set := NewChangeSet(nil)

	assert.Empty(t, set.Portfolio())
	assert.Empty(t, set.AssetIDs())

	endDate := fixtureChanges()[6].Date
	calc := set.PrepareCalculationsForPortfolio(endDate, true)
	assert.Nil(t, calc.Total())
	for _, p := range Periods {
		assert.Nil(t, calc[p.Name])
	}
	assert.Empty(t, set.PrepareCalculationsForAssets(endDate, true))
	assert.Empty(t, set.PrepareHistoryForPortfolio())
	assert.Empty(t, set.PrepareHistoryForAssets())
}

func TestSetAllChanges_ResetsPreviousContent(t *testing.T) {
	set := NewChangeSet(fixtureChanges())
	set.SetAllChanges([]domain.AssetBalanceChange{change(assetA2, "2022-01-01", 10, 10)})

	assert.Nil(t, set.Asset(assetA1))
	assert.Len(t, set.Asset(assetA2), 1)
	require.Len(t, set.Portfolio(), 1)
	assert.True(t, set.Portfolio()[0].Value.Equal(decimal.NewFromInt(10)))
}

func TestSetAllChanges_KeepsAssetsWithoutNewChanges(t *testing.T) {
	// A1 keeps contributing its last known state to later portfolio points
	set := NewChangeSet([]domain.AssetBalanceChange{
		change(assetA1, "2022-01-01", 100, 100),
		change(assetA2, "2022-02-01", 50, 60),
		change(assetA2, "2022-03-01", 50, 70),
	})

	portfolio := set.Portfolio()
	require.Len(t, portfolio, 3)
	assert.True(t, portfolio[1].Value.Equal(decimal.NewFromInt(160)))
	assert.True(t, portfolio[2].Value.Equal(decimal.NewFromInt(170)))
	assert.True(t, portfolio[2].Capital.Equal(decimal.NewFromInt(150)))
}

func TestAssetIDs_LexicalOrder(t *testing.T) {
	b := uuid.MustParse("b0000000-0000-0000-0000-000000000000")
	a := uuid.MustParse("a0000000-0000-0000-0000-000000000000")
	c := uuid.MustParse("c0000000-0000-0000-0000-000000000000")

	set := NewChangeSet([]domain.AssetBalanceChange{
		change(c, "2022-01-01", 1, 1),
		change(a, "2022-01-02", 1, 1),
		change(b, "2022-01-03", 1, 1),
	})

	assert.Equal(t, []uuid.UUID{a, b, c}, set.AssetIDs())

	calcs := set.PrepareCalculationsForAssets(fixtureChanges()[6].Date, true)
	require.Len(t, calcs, 3)
	assert.Equal(t, a, calcs[0].AssetID)
	assert.Equal(t, c, calcs[2].AssetID)
}

func TestCheckChronological(t *testing.T) {
	assert.NoError(t, CheckChronological(nil))
	assert.NoError(t, CheckChronological(fixtureChanges()))

	unordered := []domain.AssetBalanceChange{
		change(assetA1, "2022-01-02", 1, 1),
		change(assetA2, "2022-01-01", 1, 1),
	}
	err := CheckChronological(unordered)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnordered))
	assert.Contains(t, err.Error(), "2022-01-01")
}
