package minimax

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"polaris-hq/polaris/pkg/providers"
	"polaris-hq/polaris/pkg/settings"
	"polaris-hq/polaris/pkg/telemetry/logging"
)

const modelsPath = "/v1/models"

// maxReasonLen caps the sanitized failure reason logged on fallback.
const maxReasonLen = 300

// ListModels discovers the models MiniMax currently exposes.
//
// Key resolution: the profile's explicit key wins, otherwise MINIMAX_API_KEY
// is resolved at global scope. With no key anywhere the result is a
// structured failure. Once a key exists the operation always succeeds:
// transport, protocol, and parse failures (including an empty model list)
// fall back to the static model list with a sanitized warning.
func (s *Strategy) ListModels(ctx context.Context, profile providers.Profile, resolver settings.Resolver) providers.ModelListResult {
	if profile.Kind != KindMiniMax {
		return providers.ModelListResult{Success: false}
	}

	key := profile.APIKey
	if key == "" {
		if res, ok := resolver.ResolveEnvVar(EnvAPIKey, ""); ok {
			key = res.Value
		}
	}
	if key == "" {
		return providers.ModelListResult{
			Success: false,
			Error:   fmt.Sprintf("MiniMax API key is not configured: set %s or add a key to the provider profile", EnvAPIKey),
		}
	}

	source := providers.DiscoverySourceAPI
	ids, err := s.fetchModelIDs(ctx, key)
	if err != nil || len(ids) == 0 {
		reason := "provider returned an empty model list"
		if err != nil {
			reason = logging.Sanitize(err.Error(), maxReasonLen)
		}
		s.logger.Warn("model discovery failed, falling back to static model list",
			"provider", profile.ID,
			"reason", reason,
		)
		ids = fallbackModelIDs
		source = providers.DiscoverySourceFallback
	}

	models := make([]providers.Model, 0, len(ids))
	for _, id := range ids {
		models = append(models, s.buildModel(profile, id))
	}

	return providers.ModelListResult{
		Models:  models,
		Success: true,
		Source:  source,
	}
}

// fetchModelIDs performs the single discovery fetch and returns the usable
// model identifiers from the response, in response order.
func (s *Strategy) fetchModelIDs(ctx context.Context, key string) ([]string, error) {
	headers := map[string]string{
		"x-api-key":         key,
		"anthropic-version": anthropicVersion,
	}

	var payload modelListPayload
	if err := s.http.DoJSON(ctx, http.MethodGet, s.baseURL+modelsPath, nil, &payload, headers); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(payload.Data))
	for _, raw := range payload.Data {
		if id, ok := parseModelEntry(raw); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// buildModel merges static metadata into a discovered model identifier.
// Metadata is optional: unknown models keep a nil Info.
func (s *Strategy) buildModel(profile providers.Profile, id string) providers.Model {
	m := providers.Model{
		ID:       id,
		Provider: profile.ID,
	}
	if info, ok := s.catalog.Lookup(id); ok {
		m.Info = &info
	}
	return m
}

// modelListPayload is the expected discovery response shape. Entries are
// kept raw so each can be parsed permissively.
type modelListPayload struct {
	Data []json.RawMessage `json:"data"`
}

// modelEntryKeys is the identifier field priority for object entries.
var modelEntryKeys = [...]string{"id", "model", "name"}

// parseModelEntry extracts a model identifier from one response entry.
// An entry is either a bare string or an object carrying a string "id",
// "model", or "name" field, checked in that order. Anything else is
// discarded.
func parseModelEntry(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}

	for _, key := range modelEntryKeys {
		field, ok := obj[key]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(field, &value); err == nil && value != "" {
			return value, true
		}
	}

	return "", false
}
