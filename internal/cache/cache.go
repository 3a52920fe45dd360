package cache

import (
	"sync"
	"time"

	"menusync/internal/models"
	"menusync/internal/registry"
)

// Cache is the authoritative, provider-partitioned store of the most recent
// successfully normalized products. A sync replaces a whole partition in one
// swap under the lock, so readers never observe a half-written partition.
// A failed sync leaves the previous partition untouched (last known good).
type Cache struct {
	mu         sync.RWMutex
	partitions map[string][]models.Product
	lastSync   map[string]time.Time
	providers  *registry.Registry
}

func New(providers *registry.Registry) *Cache {
	return &Cache{
		partitions: make(map[string][]models.Product),
		lastSync:   make(map[string]time.Time),
		providers:  providers,
	}
}

// Replace swaps a provider's partition with the given product list and
// records the sync time.
func (c *Cache) Replace(providerID string, products []models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.partitions[providerID] = products
	c.lastSync[providerID] = time.Now()
}

// GetAll returns every cached product across all providers, in provider
// declaration order so menu generation is deterministic.
func (c *Cache) GetAll() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []models.Product
	for _, id := range c.providers.IDs() {
		out = append(out, c.partitions[id]...)
	}
	return out
}

// GetByProvider returns a copy of one provider's partition.
func (c *Cache) GetByProvider(providerID string) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	partition := c.partitions[providerID]
	out := make([]models.Product, len(partition))
	copy(out, partition)
	return out
}

// LastSync returns when the provider last synced successfully; the zero time
// means it never has.
func (c *Cache) LastSync(providerID string) time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSync[providerID]
}

// Status reports every configured provider's partition state. A provider is
// active once it has completed at least one successful sync.
func (c *Cache) Status() []models.ProviderStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.ProviderStatus, 0, len(c.providers.IDs()))
	for _, conn := range c.providers.All() {
		last := c.lastSync[conn.ID]
		out = append(out, models.ProviderStatus{
			ProviderID:   conn.ID,
			Name:         conn.Name,
			LastSync:     last,
			ProductCount: len(c.partitions[conn.ID]),
			Active:       !last.IsZero(),
		})
	}
	return out
}

// Size returns the total number of cached products.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, partition := range c.partitions {
		total += len(partition)
	}
	return total
}
