// Package accounting implements weighted-average-cost position
// accounting: buys move the average cost, sells realize P&L against it.
package accounting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prasongk/slipledger/internal/domain"
)

// Outcome describes the ledger mutations one trade produces, computed
// before anything is persisted.
type Outcome struct {
	Trade    *domain.TradeRecord
	Position domain.Position       // position after the trade
	Realized *domain.RealizedEntry // set on sells only

	// Clamped reports that a sell exceeded the held quantity and was
	// cut to it. Advisory, not an error.
	Clamped      bool
	RequestedQty decimal.Decimal // qty asked for, before any clamp
}

// ApplyToPosition computes the effect of a trade on a position.
// Pure function of (current position, trade): no I/O, no hidden state.
// Preconditions: pair, side, price and qty present, side BUY or SELL;
// violations return IncompleteTradeError or InvalidSideError and the
// position is untouched.
func ApplyToPosition(pos domain.Position, trade *domain.TradeRecord, now time.Time) (*Outcome, error) {
	if missing := trade.MissingForAccounting(); len(missing) > 0 {
		return nil, &domain.IncompleteTradeError{Missing: missing}
	}
	if trade.Side != domain.SideBuy && trade.Side != domain.SideSell {
		return nil, &domain.InvalidSideError{Side: string(trade.Side)}
	}

	price := trade.Price.Decimal
	qty := trade.Qty.Decimal
	fee := trade.FeeOrZero()

	out := &Outcome{Trade: trade, RequestedQty: qty}

	switch trade.Side {
	case domain.SideBuy:
		newQty := pos.Qty.Add(qty)
		newAvg := price
		if newQty.GreaterThan(decimal.Zero) {
			// Standard moving-average cost basis
			newAvg = pos.Qty.Mul(pos.AvgCost).Add(qty.Mul(price)).Div(newQty)
		}
		out.Position = domain.Position{
			Pair:      trade.Pair,
			Qty:       newQty,
			AvgCost:   newAvg,
			UpdatedAt: now,
		}

	case domain.SideSell:
		// Never drive the position negative: sell at most what is held
		sellQty := qty
		if sellQty.GreaterThan(pos.Qty) {
			sellQty = pos.Qty
			out.Clamped = true
		}
		realized := price.Sub(pos.AvgCost).Mul(sellQty).Sub(fee)

		entry := &domain.RealizedEntry{
			ID:          uuid.New(),
			Pair:        trade.Pair,
			Qty:         sellQty,
			AvgCostUsed: pos.AvgCost,
			SellPrice:   price,
			Fee:         fee,
			RealizedPnL: realized,
			SrcImageID:  trade.SrcImageID,
			CreatedAt:   now,
		}
		if out.Clamped {
			entry.Note = fmt.Sprintf("sell qty %s exceeded position %s, clamped to %s",
				qty.String(), pos.Qty.String(), sellQty.String())
		}
		out.Realized = entry

		newQty := pos.Qty.Sub(sellQty)
		newAvg := pos.AvgCost
		if !newQty.GreaterThan(decimal.Zero) {
			// Average cost of an empty position is conventionally zero
			newAvg = decimal.Zero
		}
		out.Position = domain.Position{
			Pair:      trade.Pair,
			Qty:       newQty,
			AvgCost:   newAvg,
			UpdatedAt: now,
		}
	}

	return out, nil
}

// String renders the outcome as a one-shot human-readable summary.
// Localization is the front-end's concern; this is the structured
// fallback rendering.
func (o *Outcome) String() string {
	switch {
	case o.Realized != nil:
		s := fmt.Sprintf("recorded SELL %s qty=%s at %s\nrealized P&L = %s",
			o.Trade.Pair, o.Realized.Qty.String(), o.Realized.SellPrice.String(),
			o.Realized.RealizedPnL.String())
		if o.Clamped {
			s += fmt.Sprintf("\nnote: sell qty (%s) > position, clamped to %s",
				o.RequestedQty.String(), o.Realized.Qty.String())
		}
		return s + fmt.Sprintf("\nposition: qty=%s, avg_cost=%s",
			o.Position.Qty.String(), o.Position.AvgCost.String())
	default:
		return fmt.Sprintf("recorded BUY %s qty=%s at %s\nposition: qty=%s, avg_cost=%s",
			o.Trade.Pair, o.Trade.Qty.Decimal.String(), o.Trade.Price.Decimal.String(),
			o.Position.Qty.String(), o.Position.AvgCost.String())
	}
}
