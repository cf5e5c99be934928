package accounting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prasongk/slipledger/internal/domain"
)

// Service applies trades to the ledger. The read-modify-write against
// the position store is not atomic on its own, so the service
// serializes updates per pair; concurrent trades on different pairs
// proceed independently.
type Service struct {
	Ledger domain.Ledger

	mu    sync.Mutex
	pairs map[string]*sync.Mutex
}

// NewService creates a new accounting Service instance
func NewService(ledger domain.Ledger) *Service {
	return &Service{
		Ledger: ledger,
		pairs:  make(map[string]*sync.Mutex),
	}
}

// Record validates a trade, applies it to the pair's position and
// persists the results: the trade itself, the realized entry on sells,
// and the updated position. Precondition failures return before any
// ledger mutation.
func (s *Service) Record(ctx context.Context, trade *domain.TradeRecord) (*Outcome, error) {
	if missing := trade.MissingForAccounting(); len(missing) > 0 {
		return nil, &domain.IncompleteTradeError{Missing: missing}
	}
	if trade.Side != domain.SideBuy && trade.Side != domain.SideSell {
		return nil, &domain.InvalidSideError{Side: string(trade.Side)}
	}

	if trade.ID == uuid.Nil {
		trade.ID = uuid.New()
	}
	now := time.Now().UTC()
	if trade.TimestampISO == "" {
		trade.TimestampISO = now.Format(time.RFC3339)
	}

	lock := s.pairLock(trade.Pair)
	lock.Lock()
	defer lock.Unlock()

	pos, err := s.Ledger.GetPosition(ctx, trade.Pair)
	if err != nil {
		return nil, fmt.Errorf("get position for %s: %w", trade.Pair, err)
	}

	out, err := ApplyToPosition(*pos, trade, now)
	if err != nil {
		return nil, err
	}

	// Trade log first, then the derived rows
	if err := s.Ledger.AppendTrade(ctx, trade); err != nil {
		return nil, fmt.Errorf("append trade: %w", err)
	}
	if out.Realized != nil {
		if err := s.Ledger.AppendRealized(ctx, out.Realized); err != nil {
			return nil, fmt.Errorf("append realized entry: %w", err)
		}
	}
	if err := s.Ledger.UpsertPosition(ctx, out.Position.Pair, out.Position.Qty, out.Position.AvgCost); err != nil {
		return nil, fmt.Errorf("upsert position: %w", err)
	}

	return out, nil
}

// RecordSnapshot persists a confirmed wallet snapshot
func (s *Service) RecordSnapshot(ctx context.Context, snapshot *domain.WalletSnapshot) error {
	if snapshot == nil || len(snapshot.Entries) == 0 {
		return fmt.Errorf("wallet snapshot has no entries")
	}
	return s.Ledger.AppendSnapshot(ctx, snapshot)
}

// Positions lists every known position for the status view
func (s *Service) Positions(ctx context.Context) ([]*domain.Position, error) {
	return s.Ledger.GetAllPositions(ctx)
}

func (s *Service) pairLock(pair string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.pairs[pair]
	if !ok {
		lock = &sync.Mutex{}
		s.pairs[pair] = lock
	}
	return lock
}
