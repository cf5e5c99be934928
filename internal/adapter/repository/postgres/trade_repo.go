package postgres

import (
	"context"
	"fmt"

	"github.com/prasongk/slipledger/internal/domain"
)

// AppendTrade appends a trade to the immutable trade log
func (r *ledgerRepository) AppendTrade(ctx context.Context, trade *domain.TradeRecord) error {
	query := `
		INSERT INTO trades (id, ts_iso, exchange, pair, side, price, qty, fee, fee_asset, gross_value, src_image_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		trade.ID,
		trade.TimestampISO,
		trade.Exchange,
		trade.Pair,
		string(trade.Side),
		nullDecimalString(trade.Price),
		nullDecimalString(trade.Qty),
		nullDecimalString(trade.Fee),
		trade.FeeAsset,
		trade.GrossValue().String(),
		trade.SrcImageID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}
