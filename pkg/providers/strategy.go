package providers

import (
	"context"

	"polaris-hq/polaris/pkg/settings"
)

// Strategy is the contract every provider integration implements.
//
// All operations take immutable inputs and produce fresh values. The only
// suspending operation is ListModels, which performs a single network fetch;
// everything else is pure. Concurrent invocations are independent: the host
// may parallelize calls freely but must not assume request coalescing.
type Strategy interface {
	// Kind returns the profile kind this strategy handles.
	Kind() Kind

	// ListModels discovers the models the provider currently exposes.
	// Transport, protocol, and parse failures are recovered locally by
	// falling back to a static model list; the result is unsuccessful only
	// when the profile kind does not match or no API key is configured.
	ListModels(ctx context.Context, profile Profile, resolver settings.Resolver) ModelListResult

	// NewClient constructs a callable model handle bound to the provider's
	// base URL and the profile's headers. The API key is resolved from the
	// profile first, then from the environment scoped to projectDir.
	// Returns a *ConfigError when no key is found in either place.
	NewClient(profile Profile, model Model, resolver settings.Resolver, projectDir string) (ModelClient, error)

	// AiderMapping maps the profile and model onto environment variables
	// for a downstream aider subprocess. Only an explicit profile key is
	// exported; environment fallback is deliberately not consulted here,
	// because aider resolves its own process environment.
	AiderMapping(profile Profile, modelID string) AiderMapping

	// EnvConfigured reports whether the provider's API key environment
	// variable resolves to a non-empty value. Global scope only.
	EnvConfigured(resolver settings.Resolver) bool

	// CacheControl returns the cache-control directive the provider's
	// dialect wants on eligible content blocks.
	CacheControl() string
}

// ModelClient is a callable model handle produced by a Strategy.
type ModelClient interface {
	// Model returns the model record the client is bound to.
	Model() Model

	// Complete sends a conversation to the provider and returns the reply
	// along with the provider's usage counters.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// Message is a single conversation turn.
type Message struct {
	// Role identifies the sender ("user" or "assistant").
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Cache marks the message as a prompt-cache breakpoint. Strategies
	// attach their dialect's cache-control directive to cached blocks.
	Cache bool `json:"cache,omitempty"`
}

// Message role constants
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionRequest is a provider-agnostic completion request.
type CompletionRequest struct {
	// System is the system prompt, if any.
	System string `json:"system,omitempty"`

	// Messages is the conversation history.
	Messages []Message `json:"messages"`

	// MaxTokens caps the generated token count. Strategies apply a default
	// when zero.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls sampling randomness.
	Temperature *float64 `json:"temperature,omitempty"`
}

// CompletionResponse is a provider-agnostic completion response.
type CompletionResponse struct {
	// Content is the generated text.
	Content string `json:"content"`

	// StopReason indicates why generation stopped.
	StopReason string `json:"stop_reason,omitempty"`

	// Usage contains the provider's token counters for the call.
	Usage TokenUsage `json:"usage"`

	// Metadata carries dialect-specific cache counters, when reported.
	Metadata *CallMetadata `json:"metadata,omitempty"`
}
