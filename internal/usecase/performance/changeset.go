package performance

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthtrack-backend/internal/date"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// ErrUnordered is returned by CheckChronological when input dates go backwards.
var ErrUnordered = errors.New("balance changes are not sorted by date")

// ChangeSet holds the per-asset sequences and the derived portfolio sequence
// of one calculation pass. It is not safe for concurrent use.
type ChangeSet struct {
	assets    map[uuid.UUID]Sequence
	portfolio Sequence
}

// NewChangeSet groups the changes and links predecessors.
// changes must be sorted ascending by date (see CheckChronological).
func NewChangeSet(changes []domain.AssetBalanceChange) *ChangeSet {
	s := &ChangeSet{}
	s.SetAllChanges(changes)
	return s
}

// SetAllChanges replaces the content of the set with changes, which must be
// sorted ascending by date. Changes observed on the same day are merged into
// a single portfolio point once the day is over.
func (s *ChangeSet) SetAllChanges(changes []domain.AssetBalanceChange) {
	s.assets = make(map[uuid.UUID]Sequence)
	s.portfolio = nil

	var lastDate date.Date
	for i, c := range changes {
		if i > 0 && c.Date.After(lastDate) {
			s.snapshot(lastDate)
		}

		s.assets[c.AssetID] = append(s.assets[c.AssetID], Change{
			Capital:  c.Capital,
			Value:    c.Value,
			Date:     c.Date,
			Previous: NoPrevious,
		})
		lastDate = c.Date
	}

	if len(changes) > 0 {
		s.snapshot(lastDate)
	}

	s.setChangesPredecessors()
}

// snapshot appends a portfolio point summing the latest state of every asset.
func (s *ChangeSet) snapshot(on date.Date) {
	capital, value := decimal.Zero, decimal.Zero
	for _, seq := range s.assets {
		latest := seq[len(seq)-1]
		capital = capital.Add(latest.Capital)
		value = value.Add(latest.Value)
	}

	s.portfolio = append(s.portfolio, Change{
		Capital:  capital,
		Value:    value,
		Date:     on,
		Previous: NoPrevious,
	})
}

func (s *ChangeSet) setChangesPredecessors() {
	for _, seq := range s.assets {
		seq.link()
	}
	s.portfolio.link()
}

// Portfolio returns the aggregated portfolio sequence, one change per distinct date.
func (s *ChangeSet) Portfolio() Sequence { return s.portfolio }

// Asset returns the sequence of a single asset, nil if the asset has no changes.
func (s *ChangeSet) Asset(id uuid.UUID) Sequence { return s.assets[id] }

// AssetIDs returns the IDs of all assets with at least one change, in
// ascending lexical order.
func (s *ChangeSet) AssetIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.assets))
	for id := range s.assets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// CheckChronological reports the first change whose date is before the one
// preceding it.
func CheckChronological(changes []domain.AssetBalanceChange) error {
	for i := 1; i < len(changes); i++ {
		if changes[i].Date.Before(changes[i-1].Date) {
			return fmt.Errorf("%w: change %d (%s) is dated before change %d (%s)",
				ErrUnordered, i, changes[i].Date, i-1, changes[i-1].Date)
		}
	}
	return nil
}
