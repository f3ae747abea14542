package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthtrack-backend/internal/date"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
)

// balanceChangeRepository implements domain.BalanceChangeRepository
type balanceChangeRepository struct {
	db *DB
}

// NewBalanceChangeRepository creates a new balance change repository
func NewBalanceChangeRepository(db *DB) domain.BalanceChangeRepository {
	return &balanceChangeRepository{db: db}
}

// rowScanner is implemented by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Add creates a new balance change entry
func (r *balanceChangeRepository) Add(ctx context.Context, change *domain.AssetBalanceChange) error {
	query := `
		INSERT INTO asset_balance_changes (id, asset_id, capital, value, date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		change.ID,
		change.AssetID,
		change.Capital.String(),
		change.Value.String(),
		change.Date.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert balance change: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recent balance change for a given asset
func (r *balanceChangeRepository) GetLatest(ctx context.Context, assetID uuid.UUID) (*domain.AssetBalanceChange, error) {
	query := `
		SELECT id, asset_id, capital, value, date
		FROM asset_balance_changes
		WHERE asset_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT 1
	`

	change, err := scanBalanceChange(r.db.QueryRowContext(ctx, query, assetID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("balance history of asset %s %w", assetID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest balance change: %w", err)
	}

	return change, nil
}

// ListByPortfolio retrieves the balance changes of a portfolio up to a date, oldest first
// Changes of the same day keep their insertion order
func (r *balanceChangeRepository) ListByPortfolio(ctx context.Context, portfolioID uuid.UUID, until date.Date) ([]domain.AssetBalanceChange, error) {
	query := `
		SELECT c.id, c.asset_id, c.capital, c.value, c.date
		FROM asset_balance_changes c
		JOIN assets a ON a.id = c.asset_id
		WHERE a.portfolio_id = $1 AND c.date <= $2
		ORDER BY c.date ASC, c.created_at ASC, c.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, portfolioID, until.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list balance changes: %w", err)
	}
	defer rows.Close()

	changes := make([]domain.AssetBalanceChange, 0)
	for rows.Next() {
		change, err := scanBalanceChange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance change: %w", err)
		}
		changes = append(changes, *change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balance changes: %w", err)
	}

	return changes, nil
}

func scanBalanceChange(row rowScanner) (*domain.AssetBalanceChange, error) {
	var change domain.AssetBalanceChange
	var capitalStr, valueStr string
	var on time.Time

	if err := row.Scan(&change.ID, &change.AssetID, &capitalStr, &valueStr, &on); err != nil {
		return nil, err
	}

	// Parse capital and value (DECIMAL)
	capital, err := decimal.NewFromString(capitalStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse capital: %w", err)
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse value: %w", err)
	}

	change.Capital = capital
	change.Value = value
	change.Date = date.FromTime(on)

	return &change, nil
}
