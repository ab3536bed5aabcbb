package usage

import "polaris-hq/polaris/pkg/providers"

// Cost computes the monetary cost of a call from token counters and the
// model's per-token rates.
//
//	cost = sent*input + received*output + cacheWrite*cw + cacheRead*cr
//
// When the model carries no explicit cache-write rate, cache writes bill at
// the input rate; an absent cache-read rate means cache reads are free.
// A nil info means an unknown model: every rate is zero and so is the cost.
//
// No rounding or clamping is performed. Negative token counts produce
// negative components; see Report for where that can arise.
func Cost(info *providers.ModelInfo, sentTokens, receivedTokens, cacheWriteTokens, cacheReadTokens int) float64 {
	if info == nil {
		return 0
	}

	cacheWriteRate := info.InputCostPerToken
	if info.CacheWriteCostPerToken != nil {
		cacheWriteRate = *info.CacheWriteCostPerToken
	}

	var cacheReadRate float64
	if info.CacheReadCostPerToken != nil {
		cacheReadRate = *info.CacheReadCostPerToken
	}

	return float64(sentTokens)*info.InputCostPerToken +
		float64(receivedTokens)*info.OutputCostPerToken +
		float64(cacheWriteTokens)*cacheWriteRate +
		float64(cacheReadTokens)*cacheReadRate
}
