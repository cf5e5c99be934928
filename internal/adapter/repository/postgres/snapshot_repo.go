package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prasongk/slipledger/internal/domain"
)

// AppendSnapshot appends every row of a wallet snapshot under a shared
// snapshot ID, in a single database transaction so a snapshot is never
// half-written.
func (r *ledgerRepository) AppendSnapshot(ctx context.Context, snapshot *domain.WalletSnapshot) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO wallet_snapshots (snapshot_id, created_at, asset, qty, usd_value, src_image_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	snapshotID := uuid.New()
	now := time.Now().UTC()
	for _, entry := range snapshot.Entries {
		_, err := dbTx.ExecContext(ctx, query,
			snapshotID,
			now,
			entry.Asset,
			entry.Qty.String(),
			nullDecimalString(entry.USD),
			snapshot.SrcImageID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot row for %s: %w", entry.Asset, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}
