package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}
	return path
}

func TestEnvResolver(t *testing.T) {
	t.Setenv("POLARIS_TEST_VAR", "from-process")

	var r EnvResolver
	res, ok := r.ResolveEnvVar("POLARIS_TEST_VAR", "/ignored")
	if !ok {
		t.Fatal("expected a resolution")
	}
	if res.Value != "from-process" {
		t.Errorf("expected from-process, got %q", res.Value)
	}
	if res.Source != "process environment" {
		t.Errorf("unexpected source %q", res.Source)
	}

	if _, ok := r.ResolveEnvVar("POLARIS_TEST_UNSET", ""); ok {
		t.Error("expected no resolution for an unset variable")
	}
}

func TestStore_ResolutionOrder(t *testing.T) {
	path := writeSettings(t, `
env:
  MINIMAX_API_KEY: global-key
  GLOBAL_ONLY: global-value
projects:
  /work/alpha:
    env:
      MINIMAX_API_KEY: alpha-key
`)

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	t.Setenv("MINIMAX_API_KEY", "process-key")
	t.Setenv("PROCESS_ONLY", "process-value")

	tests := []struct {
		name       string
		variable   string
		scopeDir   string
		wantValue  string
		wantFound  bool
		wantSource string
	}{
		{
			name:       "project entry wins in scope",
			variable:   "MINIMAX_API_KEY",
			scopeDir:   "/work/alpha",
			wantValue:  "alpha-key",
			wantFound:  true,
			wantSource: "settings file (project /work/alpha)",
		},
		{
			name:       "unscoped resolution skips projects",
			variable:   "MINIMAX_API_KEY",
			wantValue:  "global-key",
			wantFound:  true,
			wantSource: "settings file",
		},
		{
			name:      "unknown project falls through to global",
			variable:  "MINIMAX_API_KEY",
			scopeDir:  "/work/other",
			wantValue: "global-key",
			wantFound: true,
		},
		{
			name:      "global entry without a project entry",
			variable:  "GLOBAL_ONLY",
			scopeDir:  "/work/alpha",
			wantValue: "global-value",
			wantFound: true,
		},
		{
			name:       "process environment is the last layer",
			variable:   "PROCESS_ONLY",
			scopeDir:   "/work/alpha",
			wantValue:  "process-value",
			wantFound:  true,
			wantSource: "process environment",
		},
		{
			name:      "nothing anywhere",
			variable:  "NOWHERE",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := store.ResolveEnvVar(tt.variable, tt.scopeDir)
			if ok != tt.wantFound {
				t.Fatalf("expected found=%v, got %v", tt.wantFound, ok)
			}
			if res.Value != tt.wantValue {
				t.Errorf("expected %q, got %q", tt.wantValue, res.Value)
			}
			if tt.wantSource != "" && res.Source != tt.wantSource {
				t.Errorf("expected source %q, got %q", tt.wantSource, res.Source)
			}
		})
	}
}

func TestStore_MissingFile(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected a missing file to be tolerated, got %v", err)
	}

	t.Setenv("POLARIS_FALLTHROUGH", "still-works")
	res, ok := store.ResolveEnvVar("POLARIS_FALLTHROUGH", "")
	if !ok || res.Value != "still-works" {
		t.Errorf("expected process fallthrough, got %v %q", ok, res.Value)
	}
}

func TestStore_EmptyPath(t *testing.T) {
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Path() != "" {
		t.Errorf("expected an empty path, got %q", store.Path())
	}
}

func TestStore_MalformedFile(t *testing.T) {
	path := writeSettings(t, "env: [not a map")
	if _, err := NewStore(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestStore_Reload(t *testing.T) {
	path := writeSettings(t, "env:\n  KEY: before\n")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	if res, _ := store.ResolveEnvVar("KEY", ""); res.Value != "before" {
		t.Fatalf("expected before, got %q", res.Value)
	}

	if err := os.WriteFile(path, []byte("env:\n  KEY: after\n"), 0o600); err != nil {
		t.Fatalf("failed to rewrite settings file: %v", err)
	}
	if err := store.Reload(); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}

	if res, _ := store.ResolveEnvVar("KEY", ""); res.Value != "after" {
		t.Errorf("expected after, got %q", res.Value)
	}
}
