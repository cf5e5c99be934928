package domain

import (
	"errors"
	"strings"
)

// ErrNoMatch is the normal "neither interpreter recognized the text"
// outcome. It is a value, not a fault: the caller should ask for a
// clearer image rather than abort.
var ErrNoMatch = errors.New("no recognizable trade or wallet layout")

// IncompleteTradeError reports that accounting preconditions were not
// met. It names the missing fields so a correction patch can supply
// them; no ledger mutation happens when it is returned.
type IncompleteTradeError struct {
	Missing []string
}

func (e *IncompleteTradeError) Error() string {
	return "incomplete trade: missing " + strings.Join(e.Missing, ", ")
}

// InvalidSideError reports a side outside {BUY, SELL}. Seeing one means
// the pattern configuration produced something the vocabulary mapping
// should have rejected.
type InvalidSideError struct {
	Side string
}

func (e *InvalidSideError) Error() string {
	return "invalid side " + e.Side + " (must be BUY or SELL)"
}
