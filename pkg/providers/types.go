package providers

// Kind identifies a provider strategy implementation.
type Kind string

// Profile identifies a configured provider instance. It is owned by the
// host's settings store and treated as immutable for the duration of a call.
type Profile struct {
	// ID namespaces the models produced by discovery (e.g., "minimax").
	ID string `json:"id" yaml:"id"`

	// Kind selects the strategy that handles this profile.
	Kind Kind `json:"kind" yaml:"kind"`

	// APIKey is the explicit API key, if one is configured on the profile.
	// When empty, strategies fall back to environment resolution.
	APIKey string `json:"api_key,omitempty" yaml:"api_key"`

	// Headers are extra HTTP headers attached to model calls.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers"`
}

// ModelInfo is static per-model pricing metadata supplied by the host
// catalog. All rates are in USD per token, pre-multiplied.
type ModelInfo struct {
	// InputCostPerToken is the rate for non-cached input tokens.
	InputCostPerToken float64 `json:"input_cost_per_token" yaml:"input_cost_per_token"`

	// OutputCostPerToken is the rate for generated tokens.
	OutputCostPerToken float64 `json:"output_cost_per_token" yaml:"output_cost_per_token"`

	// CacheWriteCostPerToken is the rate for cache-write tokens.
	// When nil, cache writes are billed at the input rate.
	CacheWriteCostPerToken *float64 `json:"cache_write_cost_per_token,omitempty" yaml:"cache_write_cost_per_token"`

	// CacheReadCostPerToken is the rate for cache-read tokens.
	// When nil, cache reads are free.
	CacheReadCostPerToken *float64 `json:"cache_read_cost_per_token,omitempty" yaml:"cache_read_cost_per_token"`
}

// Model is a runtime-usable model record produced by discovery.
type Model struct {
	// ID is the provider's model identifier.
	ID string `json:"id"`

	// Provider is the owning profile ID.
	Provider string `json:"provider"`

	// Info is the merged static metadata. Nil for models the catalog does
	// not know; all pricing then defaults to zero.
	Info *ModelInfo `json:"info,omitempty"`
}

// ModelListResult is the outcome of model discovery.
//
// Success is false only when no API key is configured anywhere (or the
// profile kind does not match the strategy); transport and protocol
// failures are recovered by falling back to a static model list and still
// report success.
type ModelListResult struct {
	Models  []Model `json:"models"`
	Success bool    `json:"success"`

	// Error carries a human-readable reason when Success is false.
	Error string `json:"error,omitempty"`

	// Source reports where the models came from when Success is true.
	Source DiscoverySource `json:"source,omitempty"`
}

// DiscoverySource indicates where discovered models came from.
type DiscoverySource string

const (
	// DiscoverySourceAPI indicates models were fetched from the provider.
	DiscoverySourceAPI DiscoverySource = "api"

	// DiscoverySourceFallback indicates the static fallback list was used.
	DiscoverySourceFallback DiscoverySource = "fallback"
)

// AiderMapping maps a provider profile and model onto the environment of a
// downstream aider subprocess. It is a value object with no identity beyond
// its fields.
type AiderMapping struct {
	// ModelName is the model identifier prefixed so aider routes the call
	// through its Anthropic-compatible code path.
	ModelName string `json:"model_name"`

	// Env is the environment variable name to value mapping.
	Env map[string]string `json:"env"`
}

// TokenUsage is a per-call token usage snapshot as reported by a provider.
type TokenUsage struct {
	// InputTokens is the total input token count, including cache reads.
	InputTokens int `json:"input_tokens"`

	// OutputTokens is the generated token count.
	OutputTokens int `json:"output_tokens"`

	// CachedTokens is a generic cached-token counter some providers report
	// when no dialect-specific cache counters are available.
	CachedTokens int `json:"cached_tokens,omitempty"`
}

// CallMetadata carries provider-specific usage counters that accompany a
// TokenUsage snapshot.
type CallMetadata struct {
	// CacheWriteTokens is the provider's cache-creation counter.
	CacheWriteTokens int `json:"cache_write_tokens"`

	// CacheReadTokens is the provider's cache-read counter. Nil means the
	// provider did not report one and callers should fall back to the
	// generic TokenUsage.CachedTokens field.
	CacheReadTokens *int `json:"cache_read_tokens,omitempty"`
}

// Cache-control directive values for prompt caching dialects.
const (
	// CacheControlEphemeral requests ephemeral caching on eligible content
	// blocks (Anthropic-compatible dialects).
	CacheControlEphemeral = "ephemeral"
)
