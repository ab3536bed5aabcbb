// Package providers defines the provider strategy abstraction used by the
// host application to integrate hosted LLM providers.
//
// A Strategy adapts one provider to four host concerns:
//
//  1. Model discovery - list the models the provider currently exposes,
//     merged with static pricing metadata from the catalog
//  2. Client construction - build a callable model handle for one model
//  3. External tool mapping - map a provider profile onto environment
//     variables for a downstream CLI integration (aider)
//  4. Prompt cache policy - declare which cache-control directive the
//     provider dialect expects on eligible content blocks
//
// Strategies are registered by profile kind in a Registry and looked up by
// the host when it needs to act on a configured provider profile. All
// strategy operations take immutable inputs and return fresh values; the
// package holds no shared mutable state beyond the registry itself.
package providers
