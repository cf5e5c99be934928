// Package interpret turns raw OCR text into normalized trade records or
// wallet snapshots. It tries a cascade of layout-specific strategies
// and reports "no match" rather than guessing when none applies.
package interpret

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/prasongk/slipledger/internal/config"
	"github.com/prasongk/slipledger/internal/usecase/extract"
)

// Rules holds the compiled pattern cascades for every field category.
// Built once at startup; a malformed pattern fails here, not while a
// slip is being handled.
type Rules struct {
	ConvertReceive      []extract.Pattern
	ConvertInversePrice []extract.Pattern
	ConvertDirectPrice  []extract.Pattern
	ConvertAmount       []extract.Pattern
	Pair                []extract.Pattern
	Side                []extract.Pattern
	Price               []extract.Pattern
	Qty                 []extract.Pattern
	Fee                 []extract.Pattern
	Time                []extract.Pattern
	Total               []extract.Pattern
	TotalQuote          []extract.Pattern
	WalletDetector      []extract.Pattern
	WalletRow           []extract.Pattern
}

// NewRules compiles the pattern configuration into a Rules set.
func NewRules(cfg *config.Config) (*Rules, error) {
	r := &Rules{}
	for _, c := range []struct {
		dst   *[]extract.Pattern
		exprs []string
	}{
		{&r.ConvertReceive, cfg.Patterns.ConvertReceive},
		{&r.ConvertInversePrice, cfg.Patterns.ConvertInversePrice},
		{&r.ConvertDirectPrice, cfg.Patterns.ConvertDirectPrice},
		{&r.ConvertAmount, cfg.Patterns.ConvertAmount},
		{&r.Pair, cfg.Patterns.Pair},
		{&r.Side, cfg.Patterns.Side},
		{&r.Price, cfg.Patterns.Price},
		{&r.Qty, cfg.Patterns.Qty},
		{&r.Fee, cfg.Patterns.Fee},
		{&r.Time, cfg.Patterns.Time},
		{&r.Total, cfg.Patterns.Total},
		{&r.TotalQuote, cfg.Patterns.TotalQuote},
		{&r.WalletDetector, cfg.Patterns.WalletDetector},
		{&r.WalletRow, cfg.Patterns.WalletRow},
	} {
		patterns, err := extract.Compile(c.exprs)
		if err != nil {
			return nil, err
		}
		*c.dst = patterns
	}
	return r, nil
}

// parseDecimal parses a captured numeric string, tolerating thousands
// separators. OCR noise that fails to parse degrades to "absent".
func parseDecimal(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
