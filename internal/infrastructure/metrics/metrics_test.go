package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWithRegistryRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewWithRegistry(registry)

	if m.TransactionsPosted == nil || m.HTTPRequests == nil || m.LoanDecisions == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.TransactionsPosted.WithLabelValues("DEPOSIT").Inc()
	m.AccountsOpened.Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.TransactionsPosted.WithLabelValues("DEPOSIT")); got != 1 {
		t.Fatalf("expected 1 deposit, got %v", got)
	}
}

func TestNewWithRegistryTwiceOnSeparateRegistries(t *testing.T) {
	first := NewWithRegistry(prometheus.NewRegistry())
	second := NewWithRegistry(prometheus.NewRegistry())

	first.UsersRegistered.Inc()

	if got := testutil.ToFloat64(second.UsersRegistered); got != 0 {
		t.Fatalf("registries should be independent, got %v", got)
	}
}
