package enums

import "testing"

func TestNormalizeAttemptStatus(t *testing.T) {
	cases := map[string]AttemptStatus{
		"paid":       AttemptStatusPaid,
		" Expired ":  AttemptStatusExpired,
		"REJECTED":   AttemptStatusRejected,
		"approved":   AttemptStatus("APPROVED"),
		"processing": AttemptStatus("PROCESSING"),
	}
	for raw, want := range cases {
		if got := NormalizeAttemptStatus(raw); got != want {
			t.Fatalf("normalize %q: expected %s, got %s", raw, want, got)
		}
	}
}

func TestAttemptStatusSets(t *testing.T) {
	if !AttemptStatusPending.IsOutstanding() || !AttemptStatusActive.IsOutstanding() {
		t.Fatal("PENDING and ACTIVE must be outstanding")
	}
	if AttemptStatusPaid.IsOutstanding() {
		t.Fatal("PAID is terminal, not outstanding")
	}
	for _, s := range []AttemptStatus{AttemptStatusExpired, AttemptStatusRejected, AttemptStatusCancelled} {
		if !s.IsNonPayableTerminal() {
			t.Fatalf("%s must be non-payable terminal", s)
		}
	}
	if AttemptStatusPaid.IsNonPayableTerminal() {
		t.Fatal("PAID must never trigger an account release")
	}
	// Provider tokens outside the declared set stay out of both sets.
	if AttemptStatus("APPROVED").IsOutstanding() || AttemptStatus("APPROVED").IsNonPayableTerminal() {
		t.Fatal("unknown provider tokens must not be outstanding or release accounts")
	}
}
