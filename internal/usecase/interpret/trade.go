package interpret

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/prasongk/slipledger/internal/domain"
	"github.com/prasongk/slipledger/internal/usecase/extract"
)

// Trade attempts to assemble a trade record from slip text.
// Two mutually exclusive strategies run in order: the conversion-slip
// layout (instant-convert confirmations), then the generic single-fill
// layout. Returns false when neither yields a usable record.
func Trade(r *Rules, text string) (*domain.TradeRecord, bool) {
	if rec, ok := convertSlip(r, text); ok {
		return rec, true
	}
	return singleFill(r, text)
}

// convertSlip handles instant-convert confirmations: a received
// quantity plus a unit-price line. Side is always BUY (the base asset
// is being received). Price always comes from the unit-price line,
// never from the spent amount, to avoid rounding drift; the spent
// amount is captured for display only.
func convertSlip(r *Rules, text string) (*domain.TradeRecord, bool) {
	qty, _ := extract.First(r.ConvertReceive, text, "qty")
	base, _ := extract.First(r.ConvertReceive, text, "base")
	if qty == "" || base == "" {
		return nil, false
	}

	invUnits, _ := extract.First(r.ConvertInversePrice, text, "units")
	invQuote, _ := extract.First(r.ConvertInversePrice, text, "quote")
	dirUnits, _ := extract.First(r.ConvertDirectPrice, text, "units")
	dirQuote, _ := extract.First(r.ConvertDirectPrice, text, "quote")
	txAmount, _ := extract.First(r.ConvertAmount, text, "amount")
	txQuote, _ := extract.First(r.ConvertAmount, text, "quote")

	var price decimal.NullDecimal
	var quoteSym string
	switch {
	// Inverse quoting wins when both forms are present: 1 BASE = X QUOTE
	case invUnits != "" && (invQuote != "" || txQuote != ""):
		price = parseDecimal(invUnits)
		quoteSym = invQuote
		if quoteSym == "" {
			quoteSym = txQuote
		}
	// Direct quoting: 1 QUOTE = Y BASE, so price = 1/Y
	case dirUnits != "" && (dirQuote != "" || txQuote != ""):
		price = invertUnits(parseDecimal(dirUnits))
		quoteSym = dirQuote
		if quoteSym == "" {
			quoteSym = txQuote
		}
	default:
		return nil, false
	}

	rec := &domain.TradeRecord{
		Pair:        domain.NormalizePair("", "", base, quoteSym),
		Side:        domain.SideBuy,
		Price:       price,
		Qty:         parseDecimal(qty),
		Fee:         decimal.NewNullDecimal(decimal.Zero),
		QuoteAmount: parseDecimal(txAmount),
		QuoteAsset:  strings.ToUpper(txQuote),
	}
	return rec, true
}

// singleFill handles generic order-fill slips (Easy Buy/Sell details
// and the like).
func singleFill(r *Rules, text string) (*domain.TradeRecord, bool) {
	pair, _ := extract.First(r.Pair, text, "pair")
	baseOnly, _ := extract.First(r.Pair, text, "base")
	sideRaw, _ := extract.First(r.Side, text, "side")
	priceStr, _ := extract.First(r.Price, text, "price")
	qtyStr, _ := extract.First(r.ConvertReceive, text, "qty")
	if qtyStr == "" {
		qtyStr, _ = extract.First(r.Qty, text, "qty")
	}
	feeStr, _ := extract.First(r.Fee, text, "fee")
	feeAsset, _ := extract.First(r.Fee, text, "fee_asset")
	timeStr, _ := extract.First(r.Time, text, "time")
	totalAmt, _ := extract.First(r.Total, text, "total")
	totalQuote, _ := extract.First(r.TotalQuote, text, "quote")

	// Some slips carry no explicit price field but do show a unit-price
	// line; derive from it with the same inverse-before-direct policy.
	price := parseDecimal(priceStr)
	if !price.Valid {
		if invUnits, ok := extract.First(r.ConvertInversePrice, text, "units"); ok {
			price = parseDecimal(invUnits)
		} else if dirUnits, ok := extract.First(r.ConvertDirectPrice, text, "units"); ok {
			price = invertUnits(parseDecimal(dirUnits))
		}
	}

	// Assemble the pair when only a base symbol was spotted
	if (pair == "" || !strings.Contains(pair, "/")) && baseOnly != "" {
		qsym := totalQuote
		if qsym == "" {
			qsym, _ = extract.First(r.ConvertDirectPrice, text, "quote")
		}
		if qsym == "" {
			qsym, _ = extract.First(r.ConvertInversePrice, text, "quote")
		}
		if qsym != "" {
			pair = baseOnly + "/" + qsym
		}
	}

	var side domain.Side
	if sideRaw != "" {
		side, _ = domain.ParseSide(sideRaw)
	}

	rec := &domain.TradeRecord{
		Pair:        domain.NormalizePair(pair, baseOnly, "", ""),
		Side:        side,
		Price:       price,
		Qty:         parseDecimal(qtyStr),
		Fee:         parseDecimal(feeStr),
		FeeAsset:    strings.ToUpper(feeAsset),
		Time:        timeStr,
		QuoteAmount: parseDecimal(totalAmt),
		QuoteAsset:  strings.ToUpper(totalQuote),
	}
	if !rec.Usable() {
		return nil, false
	}
	return rec, true
}

// invertUnits converts a direct-quoted unit count (1 QUOTE = Y BASE)
// into a price. Zero or absent units yield an absent price.
func invertUnits(units decimal.NullDecimal) decimal.NullDecimal {
	if !units.Valid || units.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromInt(1).Div(units.Decimal))
}
