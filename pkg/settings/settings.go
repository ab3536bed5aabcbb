package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings is the on-disk shape of the settings file.
type Settings struct {
	// Env contains global environment variable overrides.
	Env map[string]string `yaml:"env"`

	// Projects maps a project directory (absolute path) to project-scoped
	// settings. Project entries take precedence over global entries when a
	// scope directory is supplied to ResolveEnvVar.
	Projects map[string]ProjectSettings `yaml:"projects"`
}

// ProjectSettings contains settings scoped to a single project directory.
type ProjectSettings struct {
	Env map[string]string `yaml:"env"`
}

// Store is a reloadable settings store backed by a YAML file.
// It implements Resolver. A Store with an empty path resolves from the
// process environment only.
//
// Store is safe for concurrent use.
type Store struct {
	path string

	mu       sync.RWMutex
	settings Settings
}

// NewStore creates a store for the given settings file path and performs an
// initial load. A missing file is not an error; the store starts empty and
// falls through to the process environment.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}
	if err := s.Reload(); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	return s, nil
}

// Path returns the settings file path. Empty if the store is env-only.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the settings file from disk and replaces the in-memory
// snapshot atomically.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var parsed Settings
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse settings file %q: %w", s.path, err)
	}

	s.mu.Lock()
	s.settings = parsed
	s.mu.Unlock()

	return nil
}

// ResolveEnvVar implements Resolver.
//
// Resolution order: project-scoped entry (when scopeDir is non-empty),
// global settings entry, process environment. Empty values are treated as
// absent at every layer.
func (s *Store) ResolveEnvVar(name string, scopeDir string) (Resolution, bool) {
	s.mu.RLock()
	settings := s.settings
	s.mu.RUnlock()

	if scopeDir != "" {
		key := filepath.Clean(scopeDir)
		if project, ok := settings.Projects[key]; ok {
			if value := project.Env[name]; value != "" {
				return Resolution{Value: value, Source: fmt.Sprintf("settings file (project %s)", key)}, true
			}
		}
	}

	if value := settings.Env[name]; value != "" {
		return Resolution{Value: value, Source: "settings file"}, true
	}

	if value := os.Getenv(name); value != "" {
		return Resolution{Value: value, Source: "process environment"}, true
	}

	return Resolution{}, false
}
