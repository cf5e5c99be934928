package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Position represents the per-pair ledger state under weighted-average
// cost accounting. One Position exists per pair, created lazily on the
// first trade for that pair. AvgCost is meaningless while Qty is zero.
type Position struct {
	Pair      string
	Qty       decimal.Decimal
	AvgCost   decimal.Decimal
	UpdatedAt time.Time
}

// Validate ensures the position adheres to domain rules
func (p *Position) Validate() error {
	if p.Pair == "" {
		return errors.New("position pair cannot be empty")
	}
	if p.Qty.IsNegative() {
		return errors.New("position qty cannot be negative")
	}
	if p.AvgCost.IsNegative() {
		return errors.New("position avg cost cannot be negative")
	}
	return nil
}

// RealizedEntry represents one sell event: quantity sold against the
// average cost basis in force at the time, and the resulting realized
// P&L. Entries are append-only and never mutated after creation.
type RealizedEntry struct {
	ID          uuid.UUID
	Pair        string
	Qty         decimal.Decimal // quantity actually sold (after clamping)
	AvgCostUsed decimal.Decimal
	SellPrice   decimal.Decimal
	Fee         decimal.Decimal
	RealizedPnL decimal.Decimal
	Note        string
	SrcImageID  string
	CreatedAt   time.Time
}
