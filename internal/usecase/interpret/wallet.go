package interpret

import (
	"strings"

	"github.com/prasongk/slipledger/internal/domain"
	"github.com/prasongk/slipledger/internal/usecase/extract"
)

// Wallet attempts to read a portfolio-listing page: one asset row per
// line. Malformed rows are dropped silently; a page yielding zero valid
// rows is no match at all.
func Wallet(r *Rules, text string) (*domain.WalletSnapshot, bool) {
	// A wallet signature must be present before rows are trusted,
	// unless no detector is configured.
	if len(r.WalletDetector) > 0 {
		if _, ok := extract.First(r.WalletDetector, text, ""); !ok {
			return nil, false
		}
	}

	var entries []domain.WalletEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, p := range r.WalletRow {
			captures, ok := p.Captures(line)
			if !ok {
				continue
			}
			asset := captures["asset"]
			qty := parseDecimal(captures["qty"])
			// Keep only rows whose symbol looks like a real ticker:
			// rendered uppercase in the source text, with a parseable
			// quantity.
			if !isUpperSymbol(asset) || !qty.Valid || qty.Decimal.IsNegative() {
				continue
			}
			entries = append(entries, domain.WalletEntry{
				Asset: asset,
				Qty:   qty.Decimal,
				USD:   parseDecimal(captures["usd"]),
			})
			break
		}
	}

	if len(entries) == 0 {
		return nil, false
	}
	return &domain.WalletSnapshot{Entries: entries}, true
}

// isUpperSymbol reports whether s contains letters and every letter is
// uppercase.
func isUpperSymbol(s string) bool {
	if s == "" {
		return false
	}
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}
