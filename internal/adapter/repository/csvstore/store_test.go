package csvstore

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasongk/slipledger/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	return store, dir
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestStore_AppendTrade(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	trade := &domain.TradeRecord{
		ID:           uuid.New(),
		TimestampISO: "2024-05-01T09:30:00Z",
		Exchange:     "binance",
		Pair:         "BTC/USDT",
		Side:         domain.SideBuy,
		Price:        nd("68000.5"),
		Qty:          nd("0.5"),
		Fee:          nd("1.2"),
		FeeAsset:     "USDT",
		SrcImageID:   "slip-001.png",
	}
	require.NoError(t, store.AppendTrade(ctx, trade))
	require.NoError(t, store.AppendTrade(ctx, trade))

	records := readCSV(t, filepath.Join(dir, "trades.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, "pair", records[0][3])
	assert.Equal(t, "BTC/USDT", records[1][3])
	assert.Equal(t, "68000.5", records[1][5])
	assert.Equal(t, "34000.25", records[1][9])
	assert.Equal(t, records[1], records[2])
}

func TestStore_AppendTrade_AbsentFieldsStayEmpty(t *testing.T) {
	store, dir := newTestStore(t)

	trade := &domain.TradeRecord{
		ID:    uuid.New(),
		Pair:  "BTC/USDT",
		Side:  domain.SideBuy,
		Price: nd("68000"),
		Qty:   nd("0.5"),
	}
	require.NoError(t, store.AppendTrade(context.Background(), trade))

	records := readCSV(t, filepath.Join(dir, "trades.csv"))
	// fee column empty, not "0"
	assert.Equal(t, "", records[1][7])
}

func TestStore_UpsertPosition(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertPosition(ctx, "BTC/USDT", dec("0.5"), dec("68000")))
	require.NoError(t, store.UpsertPosition(ctx, "ETH/USDT", dec("10"), dec("2600")))
	require.NoError(t, store.UpsertPosition(ctx, "BTC/USDT", dec("1"), dec("67000")))

	pos, err := store.GetPosition(ctx, "BTC/USDT")
	require.NoError(t, err)
	assert.True(t, pos.Qty.Equal(dec("1")))
	assert.True(t, pos.AvgCost.Equal(dec("67000")))
	assert.False(t, pos.UpdatedAt.IsZero())

	all, err := store.GetAllPositions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestStore_GetPosition_UnknownPairIsZero(t *testing.T) {
	store, _ := newTestStore(t)

	pos, err := store.GetPosition(context.Background(), "DOGE/USDT")
	require.NoError(t, err)
	assert.Equal(t, "DOGE/USDT", pos.Pair)
	assert.True(t, pos.Qty.IsZero())
	assert.True(t, pos.AvgCost.IsZero())
}

func TestStore_UpsertPosition_LeavesNoTempFile(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, store.UpsertPosition(context.Background(), "BTC/USDT", dec("1"), dec("1")))

	_, err := os.Stat(filepath.Join(dir, "positions.csv.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_AppendRealized(t *testing.T) {
	store, dir := newTestStore(t)

	entry := &domain.RealizedEntry{
		ID:          uuid.New(),
		Pair:        "BTC/USDT",
		Qty:         dec("0.5"),
		AvgCostUsed: dec("60000"),
		SellPrice:   dec("68000"),
		Fee:         dec("2"),
		RealizedPnL: dec("3998"),
		Note:        "",
	}
	require.NoError(t, store.AppendRealized(context.Background(), entry))

	records := readCSV(t, filepath.Join(dir, "realized.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, "3998", records[1][7])
}

func TestStore_AppendSnapshot_SharesSnapshotID(t *testing.T) {
	store, dir := newTestStore(t)

	snapshot := &domain.WalletSnapshot{
		Entries: []domain.WalletEntry{
			{Asset: "BTC", Qty: dec("0.5"), USD: nd("34000.25")},
			{Asset: "ETH", Qty: dec("10")},
		},
		SrcImageID: "wallet.png",
	}
	require.NoError(t, store.AppendSnapshot(context.Background(), snapshot))

	records := readCSV(t, filepath.Join(dir, "snapshots.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, records[1][0], records[2][0])
	assert.Equal(t, "BTC", records[1][2])
	assert.Equal(t, "", records[2][4])
	assert.Equal(t, "wallet.png", records[1][5])
}
