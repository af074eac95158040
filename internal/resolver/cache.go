package resolver

import "atelier/internal/model"

// Cache is the run-scoped reference cache: normalized name → id per kind.
// Constructed once per mapping run and injected, never shared across runs.
// Not safe for concurrent writers; the persistence layer's uniqueness
// constraint is the last line of defense against concurrent duplicates.
type Cache struct {
	ids map[string]string
}

// NewCache creates an empty run-scoped cache.
func NewCache() *Cache {
	return &Cache{ids: make(map[string]string)}
}

func cacheKey(kind model.ReferenceKind, normalized string) string {
	return string(kind) + "\x00" + normalized
}

// Get returns the cached id for a normalized name.
func (c *Cache) Get(kind model.ReferenceKind, normalized string) (string, bool) {
	id, ok := c.ids[cacheKey(kind, normalized)]
	return id, ok
}

// Put records the id resolved for a normalized name.
func (c *Cache) Put(kind model.ReferenceKind, normalized, id string) {
	c.ids[cacheKey(kind, normalized)] = id
}

// Len returns the number of cached resolutions.
func (c *Cache) Len() int {
	return len(c.ids)
}
