package usage

import (
	"time"

	"github.com/google/uuid"

	"polaris-hq/polaris/pkg/providers"
)

// Task is the host task record a report accumulates into. It carries the
// running total cost of all prior calls in the task.
type Task struct {
	// ID identifies the task. May be empty for one-off computations.
	ID string `json:"id,omitempty"`

	// TotalCost is the accumulated cost of the task's prior calls, in USD.
	TotalCost float64 `json:"total_cost"`
}

// Report is the usage record computed once per LLM call.
type Report struct {
	// ID is a unique report identifier.
	ID string `json:"id"`

	// TaskID is the owning task, when one was supplied.
	TaskID string `json:"task_id,omitempty"`

	// Provider is the profile ID the call went through.
	Provider string `json:"provider"`

	// Model is the model identifier.
	Model string `json:"model"`

	// SentTokens is the input token count excluding cache reads
	// (InputTokens - CacheReadTokens). It is NOT clamped: if the provider
	// reports cache reads outside the input total, this goes negative and
	// the input cost component goes negative with it. That accounting
	// ambiguity is deliberately surfaced rather than hidden.
	SentTokens int `json:"sent_tokens"`

	// ReceivedTokens is the generated token count.
	ReceivedTokens int `json:"received_tokens"`

	// CacheWriteTokens is the cache-creation token count.
	CacheWriteTokens int `json:"cache_write_tokens"`

	// CacheReadTokens is the cache-read token count.
	CacheReadTokens int `json:"cache_read_tokens"`

	// Cost is this call's cost in USD.
	Cost float64 `json:"cost"`

	// TotalCost is the task's running total including this call.
	TotalCost float64 `json:"total_cost"`

	// CreatedAt is when the report was computed.
	CreatedAt time.Time `json:"created_at"`
}

// BuildReport computes the usage report for one call.
//
// Cache-write tokens come from the provider metadata's cache-creation
// counter (zero without metadata). Cache-read tokens resolve through a
// two-level fallback: the provider-specific counter when the provider
// reported one, else the snapshot's generic cached-token field, else zero.
// The running total is pure accumulation with no rounding.
func BuildReport(task Task, model providers.Model, u providers.TokenUsage, meta *providers.CallMetadata) Report {
	var cacheWrite int
	cacheRead := u.CachedTokens
	if meta != nil {
		cacheWrite = meta.CacheWriteTokens
		if meta.CacheReadTokens != nil {
			cacheRead = *meta.CacheReadTokens
		}
	}

	sent := u.InputTokens - cacheRead
	cost := Cost(model.Info, sent, u.OutputTokens, cacheWrite, cacheRead)

	return Report{
		ID:               uuid.NewString(),
		TaskID:           task.ID,
		Provider:         model.Provider,
		Model:            model.ID,
		SentTokens:       sent,
		ReceivedTokens:   u.OutputTokens,
		CacheWriteTokens: cacheWrite,
		CacheReadTokens:  cacheRead,
		Cost:             cost,
		TotalCost:        task.TotalCost + cost,
		CreatedAt:        time.Now().UTC(),
	}
}
