package performance

import "github.com/google/uuid"

// HistoryEntry is the calculation as it looked on the day of Change.
type HistoryEntry struct {
	Change      Change
	Calculation PeriodCalculation
}

// PeriodHistory has one entry per change of a sequence, in the same order.
type PeriodHistory []HistoryEntry

// AssetHistory pairs an asset with its history.
type AssetHistory struct {
	AssetID uuid.UUID
	History PeriodHistory
}

// PrepareHistoryForPortfolio projects the portfolio sequence.
func (s *ChangeSet) PrepareHistoryForPortfolio() PeriodHistory {
	return History(s.portfolio)
}

// PrepareHistoryForAssets projects every asset sequence, ordered by asset ID.
func (s *ChangeSet) PrepareHistoryForAssets() []AssetHistory {
	ids := s.AssetIDs()
	result := make([]AssetHistory, 0, len(ids))
	for _, id := range ids {
		result = append(result, AssetHistory{AssetID: id, History: History(s.assets[id])})
	}
	return result
}

// History computes, for every change, the period calculation over the changes
// observed up to it with the change's own date as reference date. Deltas are
// left out, only the annualized TWR of each window is set.
func History(seq Sequence) PeriodHistory {
	history := make(PeriodHistory, 0, len(seq))
	for i, change := range seq {
		past := window{seq: seq, from: 0, to: i + 1}
		history = append(history, HistoryEntry{
			Change:      change,
			Calculation: calculatePeriods(past, change.Date, false),
		})
	}
	return history
}
