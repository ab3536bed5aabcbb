package minimax

import (
	"fmt"
	"log/slog"
	"time"

	"polaris-hq/polaris/pkg/providers"
	"polaris-hq/polaris/pkg/settings"
)

const (
	// KindMiniMax is the profile kind handled by this strategy.
	KindMiniMax providers.Kind = "minimax"

	// DefaultBaseURL is the provider's fixed Anthropic-compatible endpoint.
	DefaultBaseURL = "https://api.minimax.io/anthropic"

	// EnvAPIKey is the environment variable consulted when a profile
	// carries no explicit API key.
	EnvAPIKey = "MINIMAX_API_KEY"

	// anthropicVersion is the protocol version header sent on every call.
	anthropicVersion = "2023-06-01"

	// aiderModelPrefix routes aider through its Anthropic-compatible path.
	aiderModelPrefix = "anthropic/"

	// Environment variables produced for the aider subprocess.
	aiderEnvBaseURL = "ANTHROPIC_API_URL"
	aiderEnvAPIKey  = "ANTHROPIC_API_KEY"
)

var _ providers.Strategy = (*Strategy)(nil)

// ModelInfoSource supplies static model metadata for discovery merging.
// *catalog.Catalog satisfies it.
type ModelInfoSource interface {
	Lookup(id string) (providers.ModelInfo, bool)
}

// Strategy is the MiniMax provider strategy.
type Strategy struct {
	baseURL string
	catalog ModelInfoSource
	http    *providers.HTTPClient
	logger  *slog.Logger
}

// Options configures a Strategy. The zero value is usable.
type Options struct {
	// BaseURL overrides the provider endpoint. Intended for tests.
	BaseURL string

	// Catalog supplies model metadata. Defaults to the built-in table.
	Catalog ModelInfoSource

	// Timeout is the discovery request timeout. Zero means no timeout.
	Timeout time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// New creates a MiniMax strategy.
func New(opts Options) *Strategy {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Catalog == nil {
		opts.Catalog = builtinCatalog{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Strategy{
		baseURL: opts.BaseURL,
		catalog: opts.Catalog,
		// The discovery fetch is a single attempt; failures fall back to
		// the static model list instead of retrying.
		http: providers.NewHTTPClient(providers.HTTPConfig{
			Provider:   string(KindMiniMax),
			Timeout:    opts.Timeout,
			MaxRetries: 0,
		}),
		logger: opts.Logger.With("provider_kind", string(KindMiniMax)),
	}
}

// Kind implements providers.Strategy.
func (s *Strategy) Kind() providers.Kind {
	return KindMiniMax
}

// EnvConfigured reports whether MINIMAX_API_KEY resolves to a non-empty
// value. Global scope only: no project directory is consulted.
func (s *Strategy) EnvConfigured(resolver settings.Resolver) bool {
	res, ok := resolver.ResolveEnvVar(EnvAPIKey, "")
	return ok && res.Value != ""
}

// AiderMapping maps a profile and model onto the aider subprocess
// environment. The base URL is always exported; the API key is exported
// only when the profile carries an explicit key. Environment resolution is
// deliberately not consulted here: aider reads its own process environment,
// so a key that only exists there is already visible to it.
func (s *Strategy) AiderMapping(profile providers.Profile, modelID string) providers.AiderMapping {
	env := map[string]string{
		aiderEnvBaseURL: s.baseURL,
	}
	if profile.APIKey != "" {
		env[aiderEnvAPIKey] = profile.APIKey
	}

	return providers.AiderMapping{
		ModelName: aiderModelPrefix + modelID,
		Env:       env,
	}
}

// CacheControl implements providers.Strategy. MiniMax's Anthropic dialect
// wants ephemeral caching on eligible content blocks.
func (s *Strategy) CacheControl() string {
	return providers.CacheControlEphemeral
}

// NewClient constructs a callable model handle. The API key is resolved
// from the profile first, then from the environment scoped to projectDir.
// This is the one operation that fails synchronously on a missing key: a
// client cannot exist without one.
func (s *Strategy) NewClient(profile providers.Profile, model providers.Model, resolver settings.Resolver, projectDir string) (providers.ModelClient, error) {
	key := profile.APIKey
	if key == "" {
		if res, ok := resolver.ResolveEnvVar(EnvAPIKey, projectDir); ok && res.Value != "" {
			key = res.Value
			s.logger.Debug("resolved API key from the environment",
				"provider", profile.ID,
				"variable", EnvAPIKey,
				"source", res.Source,
			)
		}
	}
	if key == "" {
		return nil, &providers.ConfigError{
			Provider: profile.ID,
			Field:    "api_key",
			Message:  fmt.Sprintf("no API key found: set %s or configure a key on the provider profile", EnvAPIKey),
		}
	}

	return newClient(clientConfig{
		provider: profile.ID,
		baseURL:  s.baseURL,
		apiKey:   key,
		model:    model,
		headers:  profile.Headers,
	}), nil
}

// builtinCatalog serves the package's static pricing table.
type builtinCatalog struct{}

func (builtinCatalog) Lookup(id string) (providers.ModelInfo, bool) {
	info, ok := defaultModelInfo[id]
	return info, ok
}
