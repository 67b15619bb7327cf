package enums

import "strings"

// AttemptStatus tracks the lifecycle of a payment-link attempt. Provider
// statuses are adopted verbatim after uppercasing, so values outside the
// declared constants can legitimately appear on stored rows.
type AttemptStatus string

const (
	AttemptStatusPending   AttemptStatus = "PENDING"
	AttemptStatusActive    AttemptStatus = "ACTIVE"
	AttemptStatusPaid      AttemptStatus = "PAID"
	AttemptStatusExpired   AttemptStatus = "EXPIRED"
	AttemptStatusRejected  AttemptStatus = "REJECTED"
	AttemptStatusCancelled AttemptStatus = "CANCELLED"
)

var outstandingAttemptStatuses = []AttemptStatus{
	AttemptStatusPending,
	AttemptStatusActive,
}

var nonPayableTerminalStatuses = []AttemptStatus{
	AttemptStatusExpired,
	AttemptStatusRejected,
	AttemptStatusCancelled,
}

// String implements fmt.Stringer.
func (s AttemptStatus) String() string {
	return string(s)
}

// NormalizeAttemptStatus maps raw provider output onto the stored token form.
func NormalizeAttemptStatus(raw string) AttemptStatus {
	return AttemptStatus(strings.ToUpper(strings.TrimSpace(raw)))
}

// IsOutstanding reports whether the attempt still awaits a terminal outcome.
func (s AttemptStatus) IsOutstanding() bool {
	for _, candidate := range outstandingAttemptStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsNonPayableTerminal reports whether the status must release the reserved
// account back to the available pool.
func (s AttemptStatus) IsNonPayableTerminal() bool {
	for _, candidate := range nonPayableTerminalStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// OutstandingAttemptStatuses returns the statuses the sweep queries for.
func OutstandingAttemptStatuses() []AttemptStatus {
	out := make([]AttemptStatus, len(outstandingAttemptStatuses))
	copy(out, outstandingAttemptStatuses)
	return out
}
