package providers

import (
	"context"
	"reflect"
	"testing"

	"polaris-hq/polaris/pkg/settings"
)

// stubStrategy is a minimal Strategy for registry tests.
type stubStrategy struct {
	kind Kind
}

func (s *stubStrategy) Kind() Kind { return s.kind }
func (s *stubStrategy) ListModels(context.Context, Profile, settings.Resolver) ModelListResult {
	return ModelListResult{Success: true}
}
func (s *stubStrategy) NewClient(Profile, Model, settings.Resolver, string) (ModelClient, error) {
	return nil, nil
}
func (s *stubStrategy) AiderMapping(Profile, string) AiderMapping { return AiderMapping{} }
func (s *stubStrategy) EnvConfigured(settings.Resolver) bool      { return false }
func (s *stubStrategy) CacheControl() string                      { return "" }

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Get("minimax"); err == nil {
		t.Error("expected an error before registration")
	}

	minimax := &stubStrategy{kind: "minimax"}
	other := &stubStrategy{kind: "other"}
	r.Register(minimax)
	r.Register(other)

	got, err := r.Get("minimax")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Strategy(minimax) {
		t.Error("expected the registered strategy back")
	}

	got, err = r.ForProfile(Profile{ID: "p", Kind: "other"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Strategy(other) {
		t.Error("expected profile routing by kind")
	}

	if kinds := r.Kinds(); !reflect.DeepEqual(kinds, []Kind{"minimax", "other"}) {
		t.Errorf("expected sorted kinds, got %v", kinds)
	}
}

func TestRegistry_ReplaceKind(t *testing.T) {
	r := NewRegistry()

	first := &stubStrategy{kind: "minimax"}
	second := &stubStrategy{kind: "minimax"}
	r.Register(first)
	r.Register(second)

	got, err := r.Get("minimax")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Strategy(second) {
		t.Error("expected the later registration to win")
	}
}
