package postgres

import (
	"context"
	"fmt"

	"github.com/prasongk/slipledger/internal/domain"
)

// AppendRealized appends a realized-P&L entry
func (r *ledgerRepository) AppendRealized(ctx context.Context, entry *domain.RealizedEntry) error {
	query := `
		INSERT INTO realized (id, created_at, pair, qty, avg_cost_used, sell_price, fee, realized_pnl, note, src_image_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.CreatedAt,
		entry.Pair,
		entry.Qty.String(),
		entry.AvgCostUsed.String(),
		entry.SellPrice.String(),
		entry.Fee.String(),
		entry.RealizedPnL.String(),
		entry.Note,
		entry.SrcImageID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert realized entry: %w", err)
	}

	return nil
}
