package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=wealthtrack sslmode=disable"
func NewDB(connectionString string, maxOpenConns int) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// schema creates the tables used by the repositories
// Amounts are DECIMAL with 2 digits, dates are calendar days
const schema = `
CREATE TABLE IF NOT EXISTS assets (
	id           UUID PRIMARY KEY,
	portfolio_id UUID NOT NULL,
	name         TEXT NOT NULL,
	asset_group  TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS assets_portfolio_id_idx ON assets (portfolio_id);

CREATE TABLE IF NOT EXISTS asset_balance_changes (
	id         UUID PRIMARY KEY,
	asset_id   UUID NOT NULL REFERENCES assets (id),
	capital    DECIMAL(19, 2) NOT NULL,
	value      DECIMAL(19, 2) NOT NULL,
	date       DATE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS asset_balance_changes_asset_date_idx ON asset_balance_changes (asset_id, date);
`

// Migrate creates the schema if it does not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
