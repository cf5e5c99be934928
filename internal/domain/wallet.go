package domain

import "github.com/shopspring/decimal"

// WalletEntry represents one asset row on a photographed portfolio page
type WalletEntry struct {
	Asset string          // non-empty uppercase symbol
	Qty   decimal.Decimal // non-negative
	USD   decimal.NullDecimal
}

// WalletSnapshot represents the balances captured from a single
// portfolio page, in the order the rows appeared.
// A snapshot with zero entries is not a snapshot; the interpreter
// reports "no match" instead of producing one.
type WalletSnapshot struct {
	Entries    []WalletEntry
	SrcImageID string
}
