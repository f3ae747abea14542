package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Asset represents a tracked asset (a brokerage account, a fund, a savings account...)
// Balance changes are recorded against an asset; a portfolio is the set of assets sharing a PortfolioID
type Asset struct {
	ID          uuid.UUID
	PortfolioID uuid.UUID
	Name        string
	Group       string // Free-form grouping used by charts (e.g. "Stocks", "Bonds")
}

// Validate ensures the asset adheres to domain rules
// Returns an error wrapping ErrInvalidArgument if validation fails
func (a *Asset) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: asset name cannot be empty", ErrInvalidArgument)
	}

	if a.PortfolioID == uuid.Nil {
		return fmt.Errorf("%w: asset must belong to a portfolio", ErrInvalidArgument)
	}

	return nil
}
