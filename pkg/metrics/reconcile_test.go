package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewReconcileMetrics_NilRegistererIsInert(t *testing.T) {
	m := NewReconcileMetrics(nil)
	// None of these should panic on the zero-value collector.
	m.ObserveDuration("sweep", time.Second)
	m.IncSuccess("sweep")
	m.IncFailure("sweep")
	m.ObserveSweep(3, 1, 2)
}

func TestNewReconcileMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReconcileMetrics(reg)
	m.ObserveSweep(5, 1, 2)
	m.IncSuccess("payment-sweep")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := map[string]bool{}
	for _, fam := range families {
		found[fam.GetName()] = true
	}
	for _, name := range []string{"reconcile_attempts_reviewed_total", "reconcile_sync_errors_total", "reconcile_forced_expirations_total", "job_success"} {
		if !found[name] {
			t.Fatalf("expected metric family %s to be registered", name)
		}
	}
}
