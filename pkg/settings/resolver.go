package settings

import "os"

// Resolution is the result of resolving an environment variable.
type Resolution struct {
	// Value is the resolved value.
	Value string

	// Source is a human-readable description of where the value came from
	// (e.g., "process environment", "settings file"). It is intended for
	// diagnostic logging, never for program logic.
	Source string
}

// Resolver resolves environment variables on behalf of provider strategies.
//
// scopeDir is an optional project directory. When non-empty, implementations
// may consult project-scoped configuration before global configuration.
// When empty, only global sources are consulted.
type Resolver interface {
	// ResolveEnvVar resolves name to a value. The boolean reports whether a
	// non-empty value was found.
	ResolveEnvVar(name string, scopeDir string) (Resolution, bool)
}

// EnvResolver resolves variables from the process environment only.
// It ignores scopeDir because the process environment has no project scoping.
type EnvResolver struct{}

// ResolveEnvVar implements Resolver.
func (EnvResolver) ResolveEnvVar(name string, _ string) (Resolution, bool) {
	value := os.Getenv(name)
	if value == "" {
		return Resolution{}, false
	}
	return Resolution{Value: value, Source: "process environment"}, true
}
