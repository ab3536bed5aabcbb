// Package catalog holds static per-model pricing metadata.
//
// The catalog maps model identifiers to providers.ModelInfo records. It is
// seeded from a strategy's built-in table, optionally merged with operator
// overrides from a YAML file, and consulted by model discovery when merging
// metadata into discovered models. Metadata is optional everywhere: a model
// absent from the catalog is still usable, with all pricing at zero.
//
// Refresher re-runs a refresh job on a cron schedule, for long-running
// deployments that want the discovered model snapshot to track the provider.
package catalog
