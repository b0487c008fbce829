// FILE: internal/service/health_service.go
package service

import (
	"context"

	"ai-videostudio-be/internal/repository/memory"
	"ai-videostudio-be/pkg/storage"
)

type IHealthService interface {
	// StorageHealth returns the cached probe when fresh, otherwise runs a
	// new one. Probes are cached for five minutes.
	StorageHealth(ctx context.Context) *storage.HealthReport
}

type healthService struct {
	store      *storage.Service
	healthRepo *memory.HealthRepository
}

func NewHealthService(store *storage.Service, healthRepo *memory.HealthRepository) IHealthService {
	return &healthService{
		store:      store,
		healthRepo: healthRepo,
	}
}

func (s *healthService) StorageHealth(ctx context.Context) *storage.HealthReport {
	if report, ok := s.healthRepo.GetStorageHealth(); ok {
		return report
	}

	report := s.store.HealthCheck(ctx)
	s.healthRepo.SaveStorageHealth(&report)
	return &report
}
