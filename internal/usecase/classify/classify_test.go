package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prasongk/slipledger/internal/config"
)

var testExchanges = []config.ExchangeKeywords{
	{ID: "binance", Keywords: []string{"binance", "bnb smart chain"}},
	{ID: "bitkub", Keywords: []string{"bitkub", "บิทคับ"}},
	{ID: "okx", Keywords: []string{"okx"}},
}

func TestExchange_KeywordHit(t *testing.T) {
	assert.Equal(t, "binance", Exchange(testExchanges, "Binance Convert Successful"))
	assert.Equal(t, "bitkub", Exchange(testExchanges, "ซื้อผ่าน บิทคับ เรียบร้อย"))
	assert.Equal(t, "okx", Exchange(testExchanges, "order filled on OKX"))
}

func TestExchange_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "binance", Exchange(testExchanges, "BINANCE wallet overview"))
}

func TestExchange_ConfiguredOrderWins(t *testing.T) {
	// Text mentioning two exchanges resolves to the first configured one
	assert.Equal(t, "binance", Exchange(testExchanges, "transfer from okx to binance"))
}

func TestExchange_Unknown(t *testing.T) {
	assert.Equal(t, Unknown, Exchange(testExchanges, "a slip from somewhere else"))
	assert.Equal(t, Unknown, Exchange(nil, "anything"))
	assert.Equal(t, Unknown, Exchange(testExchanges, ""))
}
