package catalog

import (
	"sort"
	"sync"

	"polaris-hq/polaris/pkg/providers"
)

// Catalog is a concurrency-safe model metadata table.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]providers.ModelInfo
}

// New creates a catalog seeded with the given entries. The seed map is
// copied; later mutation of the argument does not affect the catalog.
func New(seed map[string]providers.ModelInfo) *Catalog {
	entries := make(map[string]providers.ModelInfo, len(seed))
	for id, info := range seed {
		entries[id] = info
	}
	return &Catalog{entries: entries}
}

// Lookup returns the metadata for a model identifier.
func (c *Catalog) Lookup(id string) (providers.ModelInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	info, ok := c.entries[id]
	return info, ok
}

// Merge adds or replaces entries. Existing models not named in the argument
// are kept.
func (c *Catalog) Merge(entries map[string]providers.ModelInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, info := range entries {
		c.entries[id] = info
	}
}

// IDs returns the known model identifiers in sorted order.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
