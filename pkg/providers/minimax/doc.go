// Package minimax implements the provider strategy for MiniMax's hosted
// Anthropic-compatible inference API.
//
// MiniMax speaks the Anthropic wire protocol behind its own endpoint, so the
// strategy authenticates with x-api-key, pins anthropic-version, and routes
// aider through its Anthropic code path by prefixing model names with
// "anthropic/".
//
// Model discovery fetches the live catalog from the provider and merges in
// static pricing metadata. Any transport or protocol failure falls back to a
// small built-in model list rather than surfacing an error: an unreachable
// catalog endpoint should never make configured models disappear from the
// host. Discovery fails outright only when no API key is configured at all.
package minimax
