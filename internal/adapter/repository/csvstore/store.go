// Package csvstore is the local flat-file ledger: append-only CSV logs
// for trades, realized P&L and wallet snapshots, plus a rewritten
// positions file. It mirrors the remote database backend behind the
// same domain.Ledger interface.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prasongk/slipledger/internal/domain"
)

var (
	tradeHeaders    = []string{"id", "ts_iso", "exchange", "pair", "side", "price", "qty", "fee", "fee_asset", "gross_value", "src_image_id"}
	positionHeaders = []string{"pair", "position_qty", "avg_cost", "updated_at"}
	realizedHeaders = []string{"id", "created_at", "pair", "qty", "avg_cost_used", "sell_price", "fee", "realized_pnl", "note", "src_image_id"}
	snapshotHeaders = []string{"snapshot_id", "created_at", "asset", "qty", "usd_value", "src_image_id"}
)

// Store implements domain.Ledger over CSV files in a data directory
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates the data directory if needed and returns a Store
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// AppendTrade appends a trade to trades.csv
func (s *Store) AppendTrade(_ context.Context, trade *domain.TradeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := []string{
		trade.ID.String(),
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
	}
	return s.appendRow("trades.csv", tradeHeaders, row)
}

// AppendRealized appends a realized-P&L entry to realized.csv
func (s *Store) AppendRealized(_ context.Context, entry *domain.RealizedEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := []string{
		entry.ID.String(),
		entry.CreatedAt.UTC().Format(time.RFC3339),
		entry.Pair,
		entry.Qty.String(),
		entry.AvgCostUsed.String(),
		entry.SellPrice.String(),
		entry.Fee.String(),
		entry.RealizedPnL.String(),
		entry.Note,
		entry.SrcImageID,
	}
	return s.appendRow("realized.csv", realizedHeaders, row)
}

// AppendSnapshot appends every wallet row under a shared snapshot ID
func (s *Store) AppendSnapshot(_ context.Context, snapshot *domain.WalletSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshotID := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339)
	for _, entry := range snapshot.Entries {
		row := []string{
			snapshotID,
			now,
			entry.Asset,
			entry.Qty.String(),
			nullDecimalString(entry.USD),
			snapshot.SrcImageID,
		}
		if err := s.appendRow("snapshots.csv", snapshotHeaders, row); err != nil {
			return err
		}
	}
	return nil
}

// UpsertPosition rewrites positions.csv with the pair's row updated.
// The rewrite goes through a temp file and rename so a crash never
// leaves a truncated positions file.
func (s *Store) UpsertPosition(_ context.Context, pair string, qty, avgCost decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readPositionRows()
	if err != nil {
		return err
	}

	ts := time.Now().UTC().Format(time.RFC3339)
	updated := false
	for i, row := range rows {
		if row[0] == pair {
			rows[i] = []string{pair, qty.String(), avgCost.String(), ts}
			updated = true
		}
	}
	if !updated {
		rows = append(rows, []string{pair, qty.String(), avgCost.String(), ts})
	}

	return s.writePositions(rows)
}

// GetPosition retrieves the position for a pair, zero when never traded
func (s *Store) GetPosition(_ context.Context, pair string) (*domain.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readPositionRows()
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row[0] == pair {
			return parsePositionRow(row)
		}
	}
	return &domain.Position{Pair: pair, Qty: decimal.Zero, AvgCost: decimal.Zero}, nil
}

// GetAllPositions retrieves every known position
func (s *Store) GetAllPositions(_ context.Context) ([]*domain.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readPositionRows()
	if err != nil {
		return nil, err
	}
	positions := make([]*domain.Position, 0, len(rows))
	for _, row := range rows {
		pos, err := parsePositionRow(row)
		if err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

func (s *Store) appendRow(name string, headers, row []string) error {
	path := filepath.Join(s.dir, name)
	_, statErr := os.Stat(path)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if errors.Is(statErr, os.ErrNotExist) {
		if err := w.Write(headers); err != nil {
			return fmt.Errorf("write %s headers: %w", name, err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write %s row: %w", name, err)
	}
	w.Flush()
	return w.Error()
}

// readPositionRows returns the position rows without the header line
func (s *Store) readPositionRows() ([][]string, error) {
	path := filepath.Join(s.dir, "positions.csv")
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open positions.csv: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read positions.csv: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}

func (s *Store) writePositions(rows [][]string) error {
	path := filepath.Join(s.dir, "positions.csv")
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create positions temp file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(positionHeaders); err == nil {
		err = w.WriteAll(rows)
	}
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write positions.csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flush positions.csv: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close positions temp file: %w", err)
	}

	return os.Rename(tmp, path)
}

func parsePositionRow(row []string) (*domain.Position, error) {
	if len(row) < 4 {
		return nil, fmt.Errorf("malformed position row: %v", row)
	}
	qty, err := decimal.NewFromString(row[1])
	if err != nil {
		return nil, fmt.Errorf("parse position_qty for %s: %w", row[0], err)
	}
	avgCost, err := decimal.NewFromString(row[2])
	if err != nil {
		return nil, fmt.Errorf("parse avg_cost for %s: %w", row[0], err)
	}
	updatedAt, err := time.Parse(time.RFC3339, row[3])
	if err != nil {
		return nil, fmt.Errorf("parse updated_at for %s: %w", row[0], err)
	}
	return &domain.Position{Pair: row[0], Qty: qty, AvgCost: avgCost, UpdatedAt: updatedAt}, nil
}

func nullDecimalString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
