// FILE: internal/service/health_service_test.go
package service

import (
	"context"
	"testing"

	"ai-videostudio-be/internal/repository/memory"
	"ai-videostudio-be/pkg/storage"

	"github.com/stretchr/testify/assert"
)

func TestStorageHealthCachesProbe(t *testing.T) {
	store := storage.NewService("", "", "")
	repo := memory.NewHealthRepository()
	svc := NewHealthService(store, repo)

	first := svc.StorageHealth(context.Background())
	assert.False(t, first.Healthy)
	assert.False(t, first.Configured)
	assert.NotEmpty(t, first.Detail)

	// Second call within the cache window returns the stored report
	// without probing again.
	second := svc.StorageHealth(context.Background())
	assert.Same(t, first, second)

	repo.InvalidateStorageHealth()
	third := svc.StorageHealth(context.Background())
	assert.NotSame(t, first, third)
	assert.False(t, third.Healthy)
}
