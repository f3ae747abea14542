package performance

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthtrack-backend/internal/date"
)

// TotalKey is the PeriodCalculation key of the full-history window.
const TotalKey = "total"

// Period is a trailing window ending at the reference date.
type Period struct {
	Name   string
	Months int
}

// Periods are the trailing windows computed next to the total, in output order.
var Periods = []Period{
	{Name: "1M", Months: 1},
	{Name: "1Y", Months: 12},
	{Name: "3Y", Months: 36},
}

// AnnualizedCalculation is the result for one window. Any field may be unset:
// AnnualizedTWR when no time elapsed, the deltas when they were not requested.
type AnnualizedCalculation struct {
	AnnualizedTWR *float64
	CapitalChange decimal.NullDecimal
	ValueChange   decimal.NullDecimal
	ProfitChange  decimal.NullDecimal
}

// PeriodCalculation maps TotalKey and every Period name to its calculation.
// A nil value means there is not enough data for that window.
type PeriodCalculation map[string]*AnnualizedCalculation

// Total returns the full-history calculation.
func (c PeriodCalculation) Total() *AnnualizedCalculation { return c[TotalKey] }

// AssetCalculation pairs an asset with its calculation.
type AssetCalculation struct {
	AssetID     uuid.UUID
	Calculation PeriodCalculation
}

// PrepareCalculationsForPortfolio computes the portfolio windows as of endDate.
func (s *ChangeSet) PrepareCalculationsForPortfolio(endDate date.Date, withCapitalAndProfit bool) PeriodCalculation {
	return CalculatePeriods(s.portfolio, endDate, withCapitalAndProfit)
}

// PrepareCalculationsForAssets computes the windows of every asset as of
// endDate, ordered by asset ID.
func (s *ChangeSet) PrepareCalculationsForAssets(endDate date.Date, withCapitalAndProfit bool) []AssetCalculation {
	ids := s.AssetIDs()
	result := make([]AssetCalculation, 0, len(ids))
	for _, id := range ids {
		result = append(result, AssetCalculation{
			AssetID:     id,
			Calculation: CalculatePeriods(s.assets[id], endDate, withCapitalAndProfit),
		})
	}
	return result
}

// CalculatePeriods computes the total and trailing windows of seq as of endDate.
func CalculatePeriods(seq Sequence, endDate date.Date, withCapitalAndProfit bool) PeriodCalculation {
	return calculatePeriods(window{seq: seq, from: 0, to: len(seq)}, endDate, withCapitalAndProfit)
}

// window is the run seq[from:to]. Predecessors are resolved against the whole
// seq, so the first change of a window may have one lying outside it.
type window struct {
	seq      Sequence
	from, to int
}

func (w window) len() int      { return w.to - w.from }
func (w window) first() Change { return w.seq[w.from] }
func (w window) last() Change  { return w.seq[w.to-1] }

// since keeps the changes dated strictly after minDate. Sequences are
// chronological, so the result is a suffix of w.
func (w window) since(minDate date.Date) window {
	from := w.from
	for from < w.to && !w.seq[from].Date.After(minDate) {
		from++
	}
	return window{seq: w.seq, from: from, to: w.to}
}

// hasSignal is false for an empty window or a lone change with no predecessor.
func (w window) hasSignal() bool {
	switch w.len() {
	case 0:
		return false
	case 1:
		return w.first().Previous != NoPrevious
	default:
		return true
	}
}

func calculatePeriods(w window, endDate date.Date, withCapitalAndProfit bool) PeriodCalculation {
	total := calculateChanges(w, endDate, withCapitalAndProfit, 0)

	result := make(PeriodCalculation, len(Periods)+1)
	result[TotalKey] = total
	for _, p := range Periods {
		sub := w.since(endDate.AddMonths(-p.Months))
		if sub.len() < w.len() {
			result[p.Name] = calculateChanges(sub, endDate, withCapitalAndProfit, p.Months)
			continue
		}
		// Whole history fits in the window
		result[p.Name] = total
	}

	return result
}

// calculateChanges computes one window. monthsInPeriod is 0 for the total,
// which is annualized over the days actually elapsed.
func calculateChanges(w window, endDate date.Date, withCapitalAndProfit bool, monthsInPeriod int) *AnnualizedCalculation {
	if !w.hasSignal() {
		return nil
	}

	calc := &AnnualizedCalculation{
		AnnualizedTWR: annualizedTWR(w, endDate, monthsInPeriod),
	}

	if withCapitalAndProfit {
		// Anchor on the state just before the window when it is known
		oldest := w.first()
		if prev, ok := w.seq.Predecessor(w.from); ok {
			oldest = prev
		}
		latest := w.last()

		calc.CapitalChange = decimal.NewNullDecimal(latest.Capital.Sub(oldest.Capital))
		calc.ValueChange = decimal.NewNullDecimal(latest.Value.Sub(oldest.Value))
		calc.ProfitChange = decimal.NewNullDecimal(latest.Profit().Sub(oldest.Profit()))
	}

	return calc
}

func annualizedTWR(w window, endDate date.Date, monthsInPeriod int) *float64 {
	if !w.hasSignal() {
		return nil
	}

	var exponent float64
	if monthsInPeriod > 0 {
		exponent = 12 / float64(monthsInPeriod)
	} else {
		days := endDate.DaysSince(w.first().Date)
		if days == 0 {
			return nil
		}
		exponent = 365 / float64(days)
	}

	twr := math.Pow(chainedTWR(w)+1, exponent) - 1
	return &twr
}

// chainedTWR multiplies the growth factors of the window and returns the
// non-annualized time-weighted return.
func chainedTWR(w window) float64 {
	product := 1.0
	for i := w.from; i < w.to; i++ {
		if factor, ok := w.seq.PeriodReturn(i); ok {
			product *= factor
		}
	}
	return product - 1
}
