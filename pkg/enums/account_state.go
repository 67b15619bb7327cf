package enums

import "fmt"

// AccountState tracks whether a streaming account can be rented out.
type AccountState string

const (
	AccountStateAvailable AccountState = "available"
	AccountStateReserved  AccountState = "reserved"
	AccountStateRented    AccountState = "rented"
	AccountStateSuspended AccountState = "suspended"
)

var validAccountStates = []AccountState{
	AccountStateAvailable,
	AccountStateReserved,
	AccountStateRented,
	AccountStateSuspended,
}

// String implements fmt.Stringer.
func (a AccountState) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AccountState.
func (a AccountState) IsValid() bool {
	for _, candidate := range validAccountStates {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAccountState converts raw input into an AccountState.
func ParseAccountState(value string) (AccountState, error) {
	for _, candidate := range validAccountStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid account state %q", value)
}
