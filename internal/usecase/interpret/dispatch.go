package interpret

import "github.com/prasongk/slipledger/internal/domain"

// Kind identifies which interpreter recognized the text
type Kind string

const (
	KindTrade  Kind = "trade"
	KindWallet Kind = "wallet"
)

// Result is the outcome of interpreting one blob of OCR text.
// Exactly one of Trade or Wallet is set, according to Kind.
type Result struct {
	Kind   Kind
	Trade  *domain.TradeRecord
	Wallet *domain.WalletSnapshot
}

// Interpret tries the trade interpreter first and falls through to the
// wallet interpreter only when no usable trade was found. Trade-slip
// layouts are more common and more specific, so they win when a text
// ambiguously satisfies both. Returns domain.ErrNoMatch when neither
// interpreter recognizes the text.
func Interpret(r *Rules, text string) (*Result, error) {
	if trade, ok := Trade(r, text); ok {
		return &Result{Kind: KindTrade, Trade: trade}, nil
	}
	if wallet, ok := Wallet(r, text); ok {
		return &Result{Kind: KindWallet, Wallet: wallet}, nil
	}
	return nil, domain.ErrNoMatch
}
