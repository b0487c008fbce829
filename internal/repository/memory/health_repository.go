package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"ai-videostudio-be/pkg/storage"
)

const storageHealthKey = "storage_health"

// HealthRepository caches storage health probes so the health endpoint does
// not hit the bucket on every poll.
type HealthRepository struct {
	cache *cache.Cache
}

func NewHealthRepository() *HealthRepository {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &HealthRepository{
		cache: c,
	}
}

func (r *HealthRepository) SaveStorageHealth(report *storage.HealthReport) {
	r.cache.Set(storageHealthKey, report, cache.DefaultExpiration)
}

func (r *HealthRepository) GetStorageHealth() (*storage.HealthReport, bool) {
	if x, found := r.cache.Get(storageHealthKey); found {
		return x.(*storage.HealthReport), true
	}
	return nil, false
}

func (r *HealthRepository) InvalidateStorageHealth() {
	r.cache.Delete(storageHealthKey)
}
