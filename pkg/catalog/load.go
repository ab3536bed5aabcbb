package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"polaris-hq/polaris/pkg/providers"
)

// catalogFile is the on-disk shape of a catalog override file.
type catalogFile struct {
	Models map[string]providers.ModelInfo `yaml:"models"`
}

// LoadFile reads model metadata overrides from a YAML file.
//
// File shape:
//
//	models:
//	  MiniMax-M2:
//	    input_cost_per_token: 0.0000003
//	    output_cost_per_token: 0.0000012
//	    cache_read_cost_per_token: 0.00000003
func LoadFile(path string) (map[string]providers.ModelInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %q: %w", path, err)
	}

	var parsed catalogFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %q: %w", path, err)
	}

	if parsed.Models == nil {
		parsed.Models = map[string]providers.ModelInfo{}
	}
	return parsed.Models, nil
}
