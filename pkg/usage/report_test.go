package usage

import (
	"math"
	"testing"
	"time"

	"polaris-hq/polaris/pkg/providers"
)

func intPtr(v int) *int { return &v }

func testModel() providers.Model {
	return providers.Model{
		ID:       "MiniMax-M2",
		Provider: "minimax",
		Info: &providers.ModelInfo{
			InputCostPerToken:     0.001,
			OutputCostPerToken:    0.002,
			CacheReadCostPerToken: ptr(0.0001),
		},
	}
}

func TestBuildReport(t *testing.T) {
	task := Task{ID: "task-42", TotalCost: 5.0}
	u := providers.TokenUsage{InputTokens: 1000, OutputTokens: 500}
	meta := &providers.CallMetadata{
		CacheWriteTokens: 200,
		CacheReadTokens:  intPtr(300),
	}

	report := BuildReport(task, testModel(), u, meta)

	if report.ID == "" {
		t.Error("expected a non-empty report ID")
	}
	if report.TaskID != "task-42" {
		t.Errorf("expected task ID task-42, got %q", report.TaskID)
	}
	if report.Provider != "minimax" || report.Model != "MiniMax-M2" {
		t.Errorf("unexpected provenance: %s/%s", report.Provider, report.Model)
	}

	// Cache reads are carved out of the input total.
	if report.SentTokens != 700 {
		t.Errorf("expected 700 sent tokens, got %d", report.SentTokens)
	}
	if report.ReceivedTokens != 500 {
		t.Errorf("expected 500 received tokens, got %d", report.ReceivedTokens)
	}
	if report.CacheWriteTokens != 200 {
		t.Errorf("expected 200 cache-write tokens, got %d", report.CacheWriteTokens)
	}
	if report.CacheReadTokens != 300 {
		t.Errorf("expected 300 cache-read tokens, got %d", report.CacheReadTokens)
	}

	// 700*0.001 + 500*0.002 + 200*0.001 (input rate) + 300*0.0001
	wantCost := 0.7 + 1.0 + 0.2 + 0.03
	if math.Abs(report.Cost-wantCost) > 1e-12 {
		t.Errorf("expected cost %v, got %v", wantCost, report.Cost)
	}
	if math.Abs(report.TotalCost-(5.0+wantCost)) > 1e-12 {
		t.Errorf("expected total %v, got %v", 5.0+wantCost, report.TotalCost)
	}

	if report.CreatedAt.IsZero() || time.Since(report.CreatedAt) > time.Minute {
		t.Errorf("unexpected creation time %v", report.CreatedAt)
	}
}

func TestBuildReport_CacheReadFallback(t *testing.T) {
	tests := []struct {
		name          string
		usage         providers.TokenUsage
		meta          *providers.CallMetadata
		wantCacheRead int
		wantSent      int
	}{
		{
			name:          "provider counter wins over the generic field",
			usage:         providers.TokenUsage{InputTokens: 1000, CachedTokens: 50},
			meta:          &providers.CallMetadata{CacheReadTokens: intPtr(300)},
			wantCacheRead: 300,
			wantSent:      700,
		},
		{
			name:          "nil provider counter falls back to the generic field",
			usage:         providers.TokenUsage{InputTokens: 1000, CachedTokens: 50},
			meta:          &providers.CallMetadata{CacheWriteTokens: 10},
			wantCacheRead: 50,
			wantSent:      950,
		},
		{
			name:          "no metadata falls back to the generic field",
			usage:         providers.TokenUsage{InputTokens: 1000, CachedTokens: 50},
			meta:          nil,
			wantCacheRead: 50,
			wantSent:      950,
		},
		{
			name:          "explicit zero counter beats the generic field",
			usage:         providers.TokenUsage{InputTokens: 1000, CachedTokens: 50},
			meta:          &providers.CallMetadata{CacheReadTokens: intPtr(0)},
			wantCacheRead: 0,
			wantSent:      1000,
		},
		{
			name:          "nothing cached",
			usage:         providers.TokenUsage{InputTokens: 1000},
			meta:          nil,
			wantCacheRead: 0,
			wantSent:      1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := BuildReport(Task{}, testModel(), tt.usage, tt.meta)
			if report.CacheReadTokens != tt.wantCacheRead {
				t.Errorf("expected %d cache-read tokens, got %d", tt.wantCacheRead, report.CacheReadTokens)
			}
			if report.SentTokens != tt.wantSent {
				t.Errorf("expected %d sent tokens, got %d", tt.wantSent, report.SentTokens)
			}
		})
	}
}

func TestBuildReport_NegativeSentTokens(t *testing.T) {
	// A provider reporting more cache reads than input tokens drives the
	// sent count negative. That is surfaced, not clamped.
	u := providers.TokenUsage{InputTokens: 100, OutputTokens: 0}
	meta := &providers.CallMetadata{CacheReadTokens: intPtr(250)}

	report := BuildReport(Task{}, testModel(), u, meta)

	if report.SentTokens != -150 {
		t.Errorf("expected -150 sent tokens, got %d", report.SentTokens)
	}
	wantCost := -150*0.001 + 250*0.0001
	if math.Abs(report.Cost-wantCost) > 1e-12 {
		t.Errorf("expected cost %v, got %v", wantCost, report.Cost)
	}
}

func TestBuildReport_UnknownModel(t *testing.T) {
	model := providers.Model{ID: "mystery", Provider: "minimax"}
	u := providers.TokenUsage{InputTokens: 1000, OutputTokens: 500}

	report := BuildReport(Task{TotalCost: 3.0}, model, u, nil)

	if report.Cost != 0 {
		t.Errorf("expected zero cost for an unknown model, got %v", report.Cost)
	}
	if report.TotalCost != 3.0 {
		t.Errorf("expected the prior total carried through, got %v", report.TotalCost)
	}
}
