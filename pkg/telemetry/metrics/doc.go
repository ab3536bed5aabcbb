// Package metrics exposes Prometheus metrics for discovery outcomes, call
// costs, and token throughput.
//
// Metrics:
//   - polaris_provider_discovery_total: discovery runs by provider and source
//   - polaris_provider_cost_total: accumulated call cost in USD
//   - polaris_provider_cost_per_call: per-call cost distribution
//   - polaris_provider_tokens_total: token counters by class
package metrics
