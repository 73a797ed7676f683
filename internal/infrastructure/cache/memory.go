package cache

import (
	"sync"

	"github.com/calories/backend/internal/domain"
	"github.com/calories/backend/internal/metrics"
)

// keySeparator joins a namespace and a caller key into the full cache key
const keySeparator = "::"

// MemoryCache is a thread-safe in-memory cache partitioned by namespace.
// Entries never expire; a namespace is dropped as a whole by Invalidate.
type MemoryCache struct {
	data  map[string]map[string]any
	mutex sync.RWMutex
}

var _ domain.NamespacedCache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]map[string]any),
	}
}

// Key returns the full key for an entry, as used in logs
func Key(namespace, key string) string {
	return namespace + keySeparator + key
}

// Get returns the value stored under (namespace, key)
func (c *MemoryCache) Get(namespace, key string) (any, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	value, ok := c.data[namespace][key]
	if !ok {
		metrics.CacheMisses.WithLabelValues(namespace).Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues(namespace).Inc()
	return value, true
}

// Put stores value under (namespace, key), replacing any previous entry
func (c *MemoryCache) Put(namespace, key string, value any) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entries, ok := c.data[namespace]
	if !ok {
		entries = make(map[string]any)
		c.data[namespace] = entries
	}
	entries[key] = value
}

// Invalidate removes every entry of a namespace
func (c *MemoryCache) Invalidate(namespace string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.data[namespace]; !ok {
		return
	}
	delete(c.data, namespace)
	metrics.CacheInvalidations.WithLabelValues(namespace).Inc()
}

// Size returns the number of entries across all namespaces (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	n := 0
	for _, entries := range c.data {
		n += len(entries)
	}
	return n
}

// Clear removes all entries
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]map[string]any)
}

// GetList reads a copy of a typed slice from the cache. A value stored with a
// different element type is reported as a miss.
func GetList[T any](c domain.NamespacedCache, namespace, key string) ([]T, bool) {
	value, ok := c.Get(namespace, key)
	if !ok {
		return nil, false
	}
	list, ok := value.([]T)
	if !ok {
		return nil, false
	}
	out := make([]T, len(list))
	copy(out, list)
	return out, true
}

// PutList stores a copy of list so later mutation by the caller is not observed
func PutList[T any](c domain.NamespacedCache, namespace, key string, list []T) {
	stored := make([]T, len(list))
	copy(stored, list)
	c.Put(namespace, key, stored)
}
