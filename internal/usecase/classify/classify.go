// Package classify identifies the exchange a slip came from by keyword
// scan. No parsing, no state.
package classify

import (
	"strings"

	"github.com/prasongk/slipledger/internal/config"
)

// Unknown is returned when no configured exchange keyword appears in
// the text.
const Unknown = "unknown"

// Exchange returns the identifier of the first configured exchange with
// any of its keywords appearing as a case-insensitive substring of the
// text. Configured order is priority order.
func Exchange(exchanges []config.ExchangeKeywords, text string) string {
	lower := strings.ToLower(text)
	for _, ex := range exchanges {
		for _, kw := range ex.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(kw)) {
				return ex.ID
			}
		}
	}
	return Unknown
}
