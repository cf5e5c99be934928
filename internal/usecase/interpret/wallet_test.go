package interpret

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallet_ParsesRows(t *testing.T) {
	text := `Estimated Balance
BTC 0.5 $34,000.25
ETH 10 26,000
ADA 1,200`

	snap, ok := Wallet(defaultRules(t), text)
	require.True(t, ok)
	require.Len(t, snap.Entries, 3)

	// Input order is preserved
	assert.Equal(t, "BTC", snap.Entries[0].Asset)
	assert.True(t, snap.Entries[0].Qty.Equal(decimal.RequireFromString("0.5")))
	require.True(t, snap.Entries[0].USD.Valid)
	assert.True(t, snap.Entries[0].USD.Decimal.Equal(decimal.RequireFromString("34000.25")))

	assert.Equal(t, "ETH", snap.Entries[1].Asset)
	assert.True(t, snap.Entries[1].USD.Decimal.Equal(decimal.NewFromInt(26000)))

	assert.Equal(t, "ADA", snap.Entries[2].Asset)
	assert.True(t, snap.Entries[2].Qty.Equal(decimal.NewFromInt(1200)))
	assert.False(t, snap.Entries[2].USD.Valid)
}

func TestWallet_DropsMalformedRows(t *testing.T) {
	text := `My Assets
BTC 0.5
DOGE garbled
usdt 500
XX
ETH 2`

	snap, ok := Wallet(defaultRules(t), text)
	require.True(t, ok)
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "BTC", snap.Entries[0].Asset)
	assert.Equal(t, "ETH", snap.Entries[1].Asset)
}

func TestWallet_RequiresDetector(t *testing.T) {
	// Rows alone are not enough without the wallet-page signature
	text := `BTC 0.5
ETH 10`

	_, ok := Wallet(defaultRules(t), text)
	assert.False(t, ok)
}

func TestWallet_ZeroValidRowsIsNoMatch(t *testing.T) {
	text := `Estimated Balance
nothing that looks like a holding`

	_, ok := Wallet(defaultRules(t), text)
	assert.False(t, ok)
}
