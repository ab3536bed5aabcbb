package minimax

import "polaris-hq/polaris/pkg/providers"

// rate converts a per-million-token USD price to a per-token rate.
func rate(perMillion float64) float64 {
	return perMillion / 1_000_000
}

func ptr(v float64) *float64 { return &v }

// defaultModelInfo is the built-in pricing table for known MiniMax models.
// Cache writes bill at the input rate (no explicit cache-write rate), so
// CacheWriteCostPerToken is left unset.
var defaultModelInfo = map[string]providers.ModelInfo{
	"MiniMax-M2": {
		InputCostPerToken:     rate(0.30),
		OutputCostPerToken:    rate(1.20),
		CacheReadCostPerToken: ptr(rate(0.03)),
	},
	"MiniMax-M1": {
		InputCostPerToken:     rate(0.40),
		OutputCostPerToken:    rate(2.20),
		CacheReadCostPerToken: ptr(rate(0.04)),
	},
	"MiniMax-Text-01": {
		InputCostPerToken:  rate(0.20),
		OutputCostPerToken: rate(1.10),
	},
}

// fallbackModelIDs is the static model list used when discovery cannot
// reach or parse the provider's catalog. Order is stable and mirrors the
// pricing table's flagship-first ordering.
var fallbackModelIDs = []string{
	"MiniMax-M2",
	"MiniMax-M1",
	"MiniMax-Text-01",
}

// DefaultCatalogSeed returns a copy of the built-in pricing table, suitable
// for seeding a catalog.Catalog that operators then override from a file.
func DefaultCatalogSeed() map[string]providers.ModelInfo {
	seed := make(map[string]providers.ModelInfo, len(defaultModelInfo))
	for id, info := range defaultModelInfo {
		seed[id] = info
	}
	return seed
}
