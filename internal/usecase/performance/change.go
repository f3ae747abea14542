// Package performance aggregates per-asset balance changes into a portfolio
// timeline and computes time-weighted returns and capital/value/profit deltas
// over a total window and trailing 1M/1Y/3Y windows.
//
// The package does no I/O. A ChangeSet is built per request and discarded
// afterwards.
package performance

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthtrack-backend/internal/date"
)

// NoPrevious is the Previous index of the first change of a sequence.
const NoPrevious = -1

// Change is one point of a balance-change sequence, either an asset's own
// observations or the synthesized portfolio aggregate.
type Change struct {
	Capital decimal.Decimal
	Value   decimal.Decimal
	Date    date.Date

	// Previous is the index of the chronologically preceding change in the
	// owning Sequence, or NoPrevious.
	Previous int
}

// Profit returns Value - Capital rounded to cents.
func (c Change) Profit() decimal.Decimal {
	return c.Value.Sub(c.Capital).Round(2)
}

// Sequence is a chronologically ordered list of changes. Previous indexes of
// its elements always point into the same Sequence.
type Sequence []Change

// Predecessor returns the change preceding s[i], if any.
func (s Sequence) Predecessor(i int) (Change, bool) {
	prev := s[i].Previous
	if prev == NoPrevious {
		return Change{}, false
	}
	return s[prev], true
}

// PeriodReturn returns the growth factor of s[i] relative to its predecessor,
// net of the capital contributed in between. The second result is false when
// s[i] has no predecessor.
//
// A zero-valued predecessor and a negative growth factor both yield 1.0.
func (s Sequence) PeriodReturn(i int) (float64, bool) {
	prev, ok := s.Predecessor(i)
	if !ok {
		return 0, false
	}

	if prev.Value.IsZero() {
		return 1, true
	}

	capitalDelta := s[i].Capital.InexactFloat64() - prev.Capital.InexactFloat64()
	growth := (s[i].Value.InexactFloat64() - capitalDelta) / prev.Value.InexactFloat64()
	if growth < 0 {
		// TODO: distinguish losses beyond the contributed capital from zero-base growth.
		return 1, true
	}

	return growth, true
}

// link points every change at the one just before it.
func (s Sequence) link() {
	for i := range s {
		if i == 0 {
			s[i].Previous = NoPrevious
			continue
		}
		s[i].Previous = i - 1
	}
}
