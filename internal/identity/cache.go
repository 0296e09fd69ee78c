package identity

import "sync"

// Cache memoizes vendor-to-internal id mappings for the lifetime of the
// process. Entries are added lazily on first resolution and never evicted; a
// restart starts empty. Concurrent batches may still race to resolve the same
// vendor id, which costs a redundant remote lookup but cannot corrupt the
// mapping because values are idempotent per vendor id.
type Cache struct {
	mu  sync.Mutex
	ids map[string]string
}

// NewCache returns an empty cache. Construct one at process start and share it
// across batches.
func NewCache() *Cache {
	return &Cache{ids: make(map[string]string)}
}

// Get returns the cached internal user id for a vendor id, if present.
func (c *Cache) Get(vendorUserID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	userID, ok := c.ids[vendorUserID]
	return userID, ok
}

// Put stores a resolved mapping. Last writer wins.
func (c *Cache) Put(vendorUserID, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids[vendorUserID] = userID
}
