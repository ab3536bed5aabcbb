// Package usage computes per-call monetary cost and usage reports from
// provider token counters.
//
// Cost is a pure linear formula over four token classes (sent, received,
// cache write, cache read) and the model's per-token rates. A usage report
// is computed once per LLM call and consumed immediately by the caller;
// this package performs no persistence (see usage/storage for the optional
// ledger used by the serve command).
package usage
