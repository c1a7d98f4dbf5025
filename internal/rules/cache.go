package rules

import "sync"

// EngagementCache remembers the last observed engagement-set size per
// document. It backs the follower rule, where the feed does not reliably
// supply a before snapshot. Process-local and lossy: a restart rebuilds it
// from zero, so one follow around a restart may be missed or doubled.
type EngagementCache struct {
	mu    sync.Mutex
	sizes map[string]int
}

// NewEngagementCache creates an empty cache.
func NewEngagementCache() *EngagementCache {
	return &EngagementCache{sizes: make(map[string]int)}
}

// Swap stores the latest size for the document and returns the previously
// observed one. seen is false on the first observation.
func (c *EngagementCache) Swap(docID string, size int) (prev int, seen bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev, seen = c.sizes[docID]
	c.sizes[docID] = size
	return prev, seen
}
