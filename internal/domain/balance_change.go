package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthtrack-backend/internal/date"
)

// AssetBalanceChange is one observation of an asset's capital and market value on a given day
// Capital is the cumulative principal contributed (what you paid), Value is what the asset is worth
type AssetBalanceChange struct {
	ID      uuid.UUID
	AssetID uuid.UUID
	Capital decimal.Decimal
	Value   decimal.Decimal
	Date    date.Date
}

// Profit returns Value - Capital rounded to cents
func (c *AssetBalanceChange) Profit() decimal.Decimal {
	return c.Value.Sub(c.Capital).Round(2)
}

// Validate ensures the balance change adheres to domain rules
func (c *AssetBalanceChange) Validate() error {
	if c.AssetID == uuid.Nil {
		return fmt.Errorf("%w: balance change must reference an asset", ErrInvalidArgument)
	}

	if c.Date.IsZero() {
		return fmt.Errorf("%w: balance change must have a date", ErrInvalidArgument)
	}

	// Capital may go negative after withdrawals exceeding contributions, value may not
	if c.Value.IsNegative() {
		return fmt.Errorf("%w: market value must not be negative", ErrInvalidArgument)
	}

	return nil
}
