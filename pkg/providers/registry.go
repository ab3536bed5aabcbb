package providers

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Registry maps profile kinds to strategy implementations.
//
// Registry is thread-safe and can be used concurrently.
type Registry struct {
	strategies map[Kind]Strategy
	mu         sync.RWMutex
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[Kind]Strategy),
	}
}

// Register adds a strategy to the registry.
// Registering the same kind twice replaces the earlier strategy.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.strategies[s.Kind()]; ok {
		slog.Warn("replacing registered provider strategy", "kind", string(s.Kind()))
	}
	r.strategies[s.Kind()] = s
}

// Get returns the strategy for a profile kind.
func (r *Registry) Get(kind Kind) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.strategies[kind]
	if !ok {
		return nil, fmt.Errorf("no provider strategy registered for kind %q (registered: %v)", kind, r.kindsLocked())
	}
	return s, nil
}

// ForProfile returns the strategy that handles the given profile.
func (r *Registry) ForProfile(profile Profile) (Strategy, error) {
	return r.Get(profile.Kind)
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.kindsLocked()
}

func (r *Registry) kindsLocked() []Kind {
	kinds := make([]Kind, 0, len(r.strategies))
	for k := range r.strategies {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
