package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side represents the direction of a trade
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// DefaultQuote is assumed when a slip names only the base asset
const DefaultQuote = "USDT"

// TradeRecord represents one completed fill assembled from a slip.
// Optional numeric fields use decimal.NullDecimal so "absent" stays
// distinguishable from zero all the way into accounting.
type TradeRecord struct {
	ID          uuid.UUID
	Pair        string // BASE/QUOTE, uppercase, or empty when unknown
	Side        Side   // BUY, SELL, or empty
	Price       decimal.NullDecimal
	Qty         decimal.NullDecimal
	Fee         decimal.NullDecimal
	FeeAsset    string
	QuoteAmount decimal.NullDecimal // total consideration on the quote side
	QuoteAsset  string
	Time        string // timestamp text as captured, not parsed

	// Provenance, attached by the calling layer rather than the interpreter
	Exchange     string
	SrcImageID   string
	TimestampISO string
}

// ParseSide maps a captured side keyword (either language) to its
// canonical form. Returns false for anything outside the vocabulary.
func ParseSide(raw string) (Side, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BUY", "ซื้อ":
		return SideBuy, true
	case "SELL", "ขาย":
		return SideSell, true
	}
	return "", false
}

// NormalizePair renders a pair as BASE/QUOTE.
// An explicit textPair wins verbatim (uppercased, whitespace stripped);
// if it lacks a separator and a quote is known, the quote is appended.
// Otherwise base+quote are joined, and a base alone defaults the quote
// to USDT. Returns "" when nothing usable was captured.
func NormalizePair(textPair, baseOnly, base, quote string) string {
	if textPair != "" {
		up := strings.ToUpper(strings.ReplaceAll(textPair, " ", ""))
		if !strings.Contains(up, "/") && quote != "" {
			return up + "/" + strings.ToUpper(quote)
		}
		return up
	}
	if base != "" && quote != "" {
		return strings.ToUpper(base) + "/" + strings.ToUpper(quote)
	}
	if baseOnly != "" && quote != "" {
		return strings.ToUpper(baseOnly) + "/" + strings.ToUpper(quote)
	}
	if baseOnly != "" {
		return strings.ToUpper(baseOnly) + "/" + DefaultQuote
	}
	return ""
}

// Usable reports whether the record carries enough signal to be worth
// showing at all. A record failing this gate is treated as "no trade
// found" so dispatch can fall through to the wallet interpreter.
func (t *TradeRecord) Usable() bool {
	return t.Pair != "" || t.Side != "" || t.Price.Valid || t.Qty.Valid
}

// MissingForAccounting lists the fields the accounting engine requires
// but the record does not carry, in a fixed order.
func (t *TradeRecord) MissingForAccounting() []string {
	var missing []string
	if t.Pair == "" {
		missing = append(missing, "pair")
	}
	if t.Side == "" {
		missing = append(missing, "side")
	}
	if !t.Price.Valid {
		missing = append(missing, "price")
	}
	if !t.Qty.Valid {
		missing = append(missing, "qty")
	}
	return missing
}

// GrossValue returns price*qty, or zero when either is absent.
func (t *TradeRecord) GrossValue() decimal.Decimal {
	if !t.Price.Valid || !t.Qty.Valid {
		return decimal.Zero
	}
	return t.Price.Decimal.Mul(t.Qty.Decimal)
}

// FeeOrZero returns the fee, treating an absent fee as zero.
func (t *TradeRecord) FeeOrZero() decimal.Decimal {
	if !t.Fee.Valid {
		return decimal.Zero
	}
	return t.Fee.Decimal
}

// Merge applies a human-supplied correction patch (field name to
// replacement value) onto the record. Unknown field names and values
// that fail to parse are rejected so a typo cannot silently corrupt a
// pending trade.
func (t *TradeRecord) Merge(patch map[string]string) error {
	for field, value := range patch {
		switch field {
		case "pair":
			t.Pair = NormalizePair(value, "", "", "")
		case "side":
			side, ok := ParseSide(value)
			if !ok {
				return &InvalidSideError{Side: value}
			}
			t.Side = side
		case "price":
			d, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", value, err)
			}
			t.Price = decimal.NewNullDecimal(d)
		case "qty":
			d, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("invalid qty %q: %w", value, err)
			}
			t.Qty = decimal.NewNullDecimal(d)
		case "fee":
			d, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("invalid fee %q: %w", value, err)
			}
			t.Fee = decimal.NewNullDecimal(d)
		case "fee_asset":
			t.FeeAsset = strings.ToUpper(value)
		case "quote_amount":
			d, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("invalid quote_amount %q: %w", value, err)
			}
			t.QuoteAmount = decimal.NewNullDecimal(d)
		case "quote_asset":
			t.QuoteAsset = strings.ToUpper(value)
		case "time":
			t.Time = value
		default:
			return fmt.Errorf("unknown trade field %q", field)
		}
	}
	return nil
}
