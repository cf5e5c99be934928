package interpret

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasongk/slipledger/internal/config"
	"github.com/prasongk/slipledger/internal/domain"
)

func defaultRules(t *testing.T) *Rules {
	t.Helper()
	rules, err := NewRules(config.Default())
	require.NoError(t, err)
	return rules
}

func TestTrade_ConvertSlip_InversePrice(t *testing.T) {
	text := `Binance Convert
Successful
You receive 0.5 BTC
1 BTC = 68,000.5 USDT
Transaction Amount 34,000.25 USDT`

	rec, ok := Trade(defaultRules(t), text)
	require.True(t, ok)

	assert.Equal(t, "BTC/USDT", rec.Pair)
	assert.Equal(t, domain.SideBuy, rec.Side)
	require.True(t, rec.Price.Valid)
	assert.True(t, rec.Price.Decimal.Equal(decimal.RequireFromString("68000.5")))
	require.True(t, rec.Qty.Valid)
	assert.True(t, rec.Qty.Decimal.Equal(decimal.RequireFromString("0.5")))
	// Conversions carry no fee
	require.True(t, rec.Fee.Valid)
	assert.True(t, rec.Fee.Decimal.IsZero())
	// The spent amount is captured for display only
	require.True(t, rec.QuoteAmount.Valid)
	assert.True(t, rec.QuoteAmount.Decimal.Equal(decimal.RequireFromString("34000.25")))
	assert.Equal(t, "USDT", rec.QuoteAsset)
}

func TestTrade_ConvertSlip_DirectPrice(t *testing.T) {
	text := `You receive 150 XRP
1 USDT = 2 XRP
Spent 75 USDT`

	rec, ok := Trade(defaultRules(t), text)
	require.True(t, ok)

	assert.Equal(t, "XRP/USDT", rec.Pair)
	assert.Equal(t, domain.SideBuy, rec.Side)
	// Direct quoting: 1 USDT = 2 XRP means price = 1/2
	require.True(t, rec.Price.Valid)
	assert.True(t, rec.Price.Decimal.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, rec.Qty.Decimal.Equal(decimal.NewFromInt(150)))
}

func TestTrade_ConvertSlip_InverseWinsOverDirect(t *testing.T) {
	// When both quoting forms appear, inverse wins regardless of
	// whether the two agree
	text := `You receive 0.5 BTC
1 BTC = 68,000 USDT
1 USDT = 0.0000147 BTC`

	rec, ok := Trade(defaultRules(t), text)
	require.True(t, ok)
	assert.True(t, rec.Price.Decimal.Equal(decimal.NewFromInt(68000)))
}

func TestTrade_ConvertSlip_ZeroDirectUnits(t *testing.T) {
	// A zero unit count cannot be inverted; price degrades to absent
	text := `You receive 5 ABC
1 USDT = 0 ABC`

	rec, ok := Trade(defaultRules(t), text)
	require.True(t, ok)
	assert.False(t, rec.Price.Valid)
	assert.Equal(t, "ABC/USDT", rec.Pair)
}

func TestTrade_SingleFill_Thai(t *testing.T) {
	text := `Bitkub
ขาย BTC/THB
ราคา 2,500,000
จำนวน 0.2
ค่าธรรมเนียม 12.5 THB
2024-03-15 14:22:01
Total 500,000 THB`

	rec, ok := Trade(defaultRules(t), text)
	require.True(t, ok)

	assert.Equal(t, "BTC/THB", rec.Pair)
	assert.Equal(t, domain.SideSell, rec.Side)
	assert.True(t, rec.Price.Decimal.Equal(decimal.NewFromInt(2500000)))
	assert.True(t, rec.Qty.Decimal.Equal(decimal.RequireFromString("0.2")))
	assert.True(t, rec.Fee.Decimal.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "THB", rec.FeeAsset)
	assert.Equal(t, "2024-03-15 14:22:01", rec.Time)
	assert.True(t, rec.QuoteAmount.Decimal.Equal(decimal.NewFromInt(500000)))
	assert.Equal(t, "THB", rec.QuoteAsset)
}

func TestTrade_SingleFill_PriceDerivedFromUnitLine(t *testing.T) {
	text := `BUY DOGE
Filled 100
1 DOGE = 0.25 USDT`

	rec, ok := Trade(defaultRules(t), text)
	require.True(t, ok)

	assert.Equal(t, "DOGE/USDT", rec.Pair)
	assert.Equal(t, domain.SideBuy, rec.Side)
	assert.True(t, rec.Price.Decimal.Equal(decimal.RequireFromString("0.25")))
	assert.True(t, rec.Qty.Decimal.Equal(decimal.NewFromInt(100)))
}

func TestTrade_SingleFill_BaseOnlyDefaultsQuote(t *testing.T) {
	text := `BUY DOGE
Qty 100
Price 0.25`

	rec, ok := Trade(defaultRules(t), text)
	require.True(t, ok)
	assert.Equal(t, "DOGE/USDT", rec.Pair)
}

func TestTrade_ValidityGate(t *testing.T) {
	_, ok := Trade(defaultRules(t), "just some unrelated words")
	assert.False(t, ok)

	_, ok = Trade(defaultRules(t), "")
	assert.False(t, ok)
}
