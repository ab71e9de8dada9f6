package enums

import "fmt"

// QuoteStatus tracks the lifecycle of a non-binding quote.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusPending,
	QuoteStatusApproved,
	QuoteStatusRejected,
	QuoteStatusExpired,
}

// String implements fmt.Stringer.
func (s QuoteStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known QuoteStatus.
func (s QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusApproved || s == QuoteStatusRejected || s == QuoteStatusExpired
}

// CanTransitionTo reports whether the status change is legal, ignoring
// expiry timing (the service layer checks ExpiresAt before allowing
// the expired edge, and blocks approval of past-due quotes).
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	if !next.IsValid() || s == next {
		return false
	}
	if next == QuoteStatusExpired {
		return !s.IsTerminal()
	}
	return s == QuoteStatusPending
}

// ParseQuoteStatus converts raw input into a QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
