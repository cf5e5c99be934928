// Package memory is an in-memory ledger used by tests and dry runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prasongk/slipledger/internal/domain"
)

// Ledger implements domain.Ledger with mutex-guarded maps
type Ledger struct {
	mu        sync.RWMutex
	trades    []*domain.TradeRecord
	realized  []*domain.RealizedEntry
	snapshots []*domain.WalletSnapshot
	positions map[string]*domain.Position
}

// New creates an empty in-memory ledger
func New() *Ledger {
	return &Ledger{positions: make(map[string]*domain.Position)}
}

// AppendTrade appends a trade to the in-memory trade log
func (l *Ledger) AppendTrade(_ context.Context, trade *domain.TradeRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	copied := *trade
	l.trades = append(l.trades, &copied)
	return nil
}

// AppendRealized appends a realized-P&L entry
func (l *Ledger) AppendRealized(_ context.Context, entry *domain.RealizedEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	copied := *entry
	l.realized = append(l.realized, &copied)
	return nil
}

// AppendSnapshot appends a wallet snapshot
func (l *Ledger) AppendSnapshot(_ context.Context, snapshot *domain.WalletSnapshot) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	copied := *snapshot
	copied.Entries = append([]domain.WalletEntry(nil), snapshot.Entries...)
	l.snapshots = append(l.snapshots, &copied)
	return nil
}

// UpsertPosition writes the position for a pair
func (l *Ledger) UpsertPosition(_ context.Context, pair string, qty, avgCost decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.positions[pair] = &domain.Position{
		Pair:      pair,
		Qty:       qty,
		AvgCost:   avgCost,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

// GetPosition retrieves the position for a pair, zero when never traded
func (l *Ledger) GetPosition(_ context.Context, pair string) (*domain.Position, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if pos, ok := l.positions[pair]; ok {
		copied := *pos
		return &copied, nil
	}
	return &domain.Position{Pair: pair, Qty: decimal.Zero, AvgCost: decimal.Zero}, nil
}

// GetAllPositions retrieves every known position, ordered by pair
func (l *Ledger) GetAllPositions(_ context.Context) ([]*domain.Position, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	positions := make([]*domain.Position, 0, len(l.positions))
	for _, pos := range l.positions {
		copied := *pos
		positions = append(positions, &copied)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Pair < positions[j].Pair })
	return positions, nil
}

// Trades returns the trade log, for tests and dry-run inspection
func (l *Ledger) Trades() []*domain.TradeRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*domain.TradeRecord(nil), l.trades...)
}

// Realized returns the realized-P&L log
func (l *Ledger) Realized() []*domain.RealizedEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*domain.RealizedEntry(nil), l.realized...)
}

// Snapshots returns the recorded wallet snapshots
func (l *Ledger) Snapshots() []*domain.WalletSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*domain.WalletSnapshot(nil), l.snapshots...)
}
