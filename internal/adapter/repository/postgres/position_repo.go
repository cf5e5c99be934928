package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prasongk/slipledger/internal/domain"
)

// UpsertPosition writes the position for a pair, creating it if absent
func (r *ledgerRepository) UpsertPosition(ctx context.Context, pair string, qty, avgCost decimal.Decimal) error {
	query := `
		INSERT INTO positions (pair, position_qty, avg_cost, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (pair) DO UPDATE
		SET position_qty = EXCLUDED.position_qty,
		    avg_cost = EXCLUDED.avg_cost,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, pair, qty.String(), avgCost.String(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert position for %s: %w", pair, err)
	}

	return nil
}

// GetPosition retrieves the position for a pair. A pair never traded
// before yields a zero position, not an error.
func (r *ledgerRepository) GetPosition(ctx context.Context, pair string) (*domain.Position, error) {
	query := `
		SELECT pair, position_qty, avg_cost, updated_at
		FROM positions
		WHERE pair = $1
	`

	pos, err := r.scanPosition(r.db.QueryRowContext(ctx, query, pair))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.Position{Pair: pair, Qty: decimal.Zero, AvgCost: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("failed to get position for %s: %w", pair, err)
	}

	return pos, nil
}

// GetAllPositions retrieves every known position
func (r *ledgerRepository) GetAllPositions(ctx context.Context) ([]*domain.Position, error) {
	query := `
		SELECT pair, position_qty, avg_cost, updated_at
		FROM positions
		ORDER BY pair
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []*domain.Position
	for rows.Next() {
		pos, err := r.scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate positions: %w", err)
	}

	return positions, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func (r *ledgerRepository) scanPosition(row scanner) (*domain.Position, error) {
	var pos domain.Position
	var qtyStr, avgCostStr string

	if err := row.Scan(&pos.Pair, &qtyStr, &avgCostStr, &pos.UpdatedAt); err != nil {
		return nil, err
	}

	qty, err := decimal.NewFromString(qtyStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse position_qty: %w", err)
	}
	avgCost, err := decimal.NewFromString(avgCostStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse avg_cost: %w", err)
	}
	pos.Qty = qty
	pos.AvgCost = avgCost

	return &pos, nil
}
