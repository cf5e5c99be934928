package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Ledger defines the interface for trade, position and realized-P&L
// persistence. The accounting engine is storage-agnostic: the same
// operations are served by the remote database backend or a local
// flat-file store.
type Ledger interface {
	// AppendTrade appends a committed trade to the immutable trade log
	AppendTrade(ctx context.Context, trade *TradeRecord) error

	// UpsertPosition writes the position for a pair, creating it if absent
	UpsertPosition(ctx context.Context, pair string, qty, avgCost decimal.Decimal) error

	// AppendRealized appends a realized-P&L entry
	AppendRealized(ctx context.Context, entry *RealizedEntry) error

	// GetPosition retrieves the position for a pair.
	// A pair never traded before yields a zero position (qty=0,
	// avg_cost=0), not an error.
	GetPosition(ctx context.Context, pair string) (*Position, error)

	// GetAllPositions retrieves every known position
	GetAllPositions(ctx context.Context) ([]*Position, error)

	// AppendSnapshot appends a wallet snapshot
	AppendSnapshot(ctx context.Context, snapshot *WalletSnapshot) error
}
