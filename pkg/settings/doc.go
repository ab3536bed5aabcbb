// Package settings implements the host-side settings store and environment
// variable resolution used by provider strategies.
//
// Provider strategies never read process environment variables directly.
// Instead they receive a Resolver, which resolves a variable name to a value
// and a human-readable source. The default Store resolves in three layers:
//
//  1. Project-scoped entries from the settings file (when a project directory
//     is supplied)
//  2. Global entries from the settings file
//  3. The process environment
//
// The Store can be reloaded at runtime; Watcher reloads it automatically when
// the settings file changes on disk.
package settings
