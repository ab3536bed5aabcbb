package metrics

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"polaris-hq/polaris/pkg/providers"
	"polaris-hq/polaris/pkg/usage"
)

func TestMetrics_RecordDiscovery(t *testing.T) {
	m := New(Config{})

	m.RecordDiscovery("minimax", providers.ModelListResult{Success: true, Source: providers.DiscoverySourceAPI})
	m.RecordDiscovery("minimax", providers.ModelListResult{Success: true, Source: providers.DiscoverySourceFallback})
	m.RecordDiscovery("minimax", providers.ModelListResult{Success: true, Source: providers.DiscoverySourceFallback})
	m.RecordDiscovery("minimax", providers.ModelListResult{Success: false, Error: "no key"})

	if got := testutil.ToFloat64(m.discoveryTotal.WithLabelValues("minimax", "api")); got != 1 {
		t.Errorf("expected 1 api discovery, got %v", got)
	}
	if got := testutil.ToFloat64(m.discoveryTotal.WithLabelValues("minimax", "fallback")); got != 2 {
		t.Errorf("expected 2 fallback discoveries, got %v", got)
	}
	if got := testutil.ToFloat64(m.discoveryTotal.WithLabelValues("minimax", "error")); got != 1 {
		t.Errorf("expected 1 failed discovery, got %v", got)
	}
}

func TestMetrics_RecordReport(t *testing.T) {
	m := New(Config{})

	m.RecordReport(&usage.Report{
		Provider:         "minimax",
		Model:            "MiniMax-M2",
		SentTokens:       700,
		ReceivedTokens:   500,
		CacheWriteTokens: 200,
		CacheReadTokens:  300,
		Cost:             1.5,
	})
	m.RecordReport(&usage.Report{
		Provider:       "minimax",
		Model:          "MiniMax-M2",
		SentTokens:     100,
		ReceivedTokens: 50,
		Cost:           0.25,
	})

	if got := testutil.ToFloat64(m.costTotal.WithLabelValues("minimax", "MiniMax-M2")); math.Abs(got-1.75) > 1e-9 {
		t.Errorf("expected 1.75 total cost, got %v", got)
	}

	tokens := map[string]float64{
		"sent":        800,
		"received":    550,
		"cache_write": 200,
		"cache_read":  300,
	}
	for class, want := range tokens {
		got := testutil.ToFloat64(m.tokensTotal.WithLabelValues("minimax", "MiniMax-M2", class))
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("class %s: expected %v tokens, got %v", class, want, got)
		}
	}
}

func TestMetrics_RecordReport_SkipsNegativeCounters(t *testing.T) {
	m := New(Config{})

	m.RecordReport(&usage.Report{
		Provider:        "minimax",
		Model:           "MiniMax-M2",
		SentTokens:      -150,
		CacheReadTokens: 250,
		Cost:            -0.1,
	})

	if got := testutil.ToFloat64(m.tokensTotal.WithLabelValues("minimax", "MiniMax-M2", "sent")); got != 0 {
		t.Errorf("expected negative sent tokens skipped, got %v", got)
	}
	if got := testutil.ToFloat64(m.tokensTotal.WithLabelValues("minimax", "MiniMax-M2", "cache_read")); got != 250 {
		t.Errorf("expected 250 cache-read tokens, got %v", got)
	}
	if got := testutil.ToFloat64(m.costTotal.WithLabelValues("minimax", "MiniMax-M2")); got != 0 {
		t.Errorf("expected negative cost skipped, got %v", got)
	}
}
