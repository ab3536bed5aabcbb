// Package config loads and validates the Polaris configuration file.
//
// Configuration is YAML with three layers: file values, defaults for
// anything the file omits, and POLARIS_* environment variable overrides on
// top. Validation runs after all layers are applied, so an override can
// both fix and break a configuration; the final state is what is checked.
package config
