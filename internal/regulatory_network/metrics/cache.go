package metrics

import (
	"sync"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
)

// Cache memoizes the last aggregation keyed by dataset identity. Recomputation is an
// explicit Get with a new identity; there is no subscription.
type Cache struct {
	mu      sync.Mutex
	version string
	result  *AggregatedMetrics
}

func NewCache() *Cache {
	return &Cache{}
}

// Get returns the metrics for the dataset identified by version, aggregating only when
// the identity differs from the cached one.
func (c *Cache) Get(version string, ds domain.Dataset) *AggregatedMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.result != nil && c.version == version {
		return c.result
	}
	c.result = Aggregate(ds)
	c.version = version
	return c.result
}
