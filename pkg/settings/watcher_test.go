package settings

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := writeSettings(t, "env:\n  KEY: before\n")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	watcher, err := NewWatcher(store, WatcherConfig{DebounceInterval: 10 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- watcher.Watch(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("env:\n  KEY: after\n"), 0o600); err != nil {
		t.Fatalf("failed to rewrite settings file: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if res, _ := store.ResolveEnvVar("KEY", ""); res.Value == "after" {
			cancel()
			if err := <-done; err != nil {
				t.Errorf("watcher returned an error: %v", err)
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("store was not reloaded within the deadline")
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	path := writeSettings(t, "env:\n  KEY: v0\n")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	watcher, err := NewWatcher(store, WatcherConfig{DebounceInterval: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = watcher.Watch(ctx) }()

	time.Sleep(100 * time.Millisecond)

	// Two bursts separated by more than the debounce window: the second
	// burst re-arms a timer that has already fired once. Each burst must
	// settle on its final write.
	for burst := 1; burst <= 2; burst++ {
		want := ""
		for i := 0; i < 3; i++ {
			want = fmt.Sprintf("b%d-w%d", burst, i)
			content := fmt.Sprintf("env:\n  KEY: %s\n", want)
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				t.Fatalf("failed to rewrite settings file: %v", err)
			}
			time.Sleep(5 * time.Millisecond)
		}

		deadline := time.Now().Add(5 * time.Second)
		for {
			if res, _ := store.ResolveEnvVar("KEY", ""); res.Value == want {
				break
			}
			if time.Now().After(deadline) {
				res, _ := store.ResolveEnvVar("KEY", "")
				t.Fatalf("burst %d: expected %q after debounce, got %q", burst, want, res.Value)
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func TestNewWatcher_RequiresPath(t *testing.T) {
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewWatcher(store, WatcherConfig{}, nil); err == nil {
		t.Error("expected an error for an env-only store")
	}
}
