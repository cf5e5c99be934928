package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/shopspring/decimal"

	"github.com/prasongk/slipledger/internal/domain"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=slipledger sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// ledgerRepository implements domain.Ledger over PostgreSQL.
// Decimal columns are read and written as strings to keep exact
// precision across the wire.
type ledgerRepository struct {
	db *DB
}

// NewLedger creates a new PostgreSQL-backed ledger
func NewLedger(db *DB) domain.Ledger {
	return &ledgerRepository{db: db}
}

// nullDecimalString renders an optional decimal as a nullable SQL value
func nullDecimalString(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}
