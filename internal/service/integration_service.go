// FILE: internal/service/integration_service.go
package service

import (
	"context"
	"strings"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/repository/specification"
	"ai-videostudio-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const maxIntegrationsPerProvider = 5

type IIntegrationService interface {
	ListIntegrations(ctx context.Context, userId uuid.UUID) ([]*dto.IntegrationResponse, error)
	CreateIntegration(ctx context.Context, userId uuid.UUID, req *dto.CreateIntegrationRequest) (*dto.IntegrationResponse, error)
	DeleteIntegration(ctx context.Context, userId uuid.UUID, integrationId uuid.UUID) error
}

type integrationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewIntegrationService(uowFactory unitofwork.RepositoryFactory) IIntegrationService {
	return &integrationService{uowFactory: uowFactory}
}

// keyHint shows the trailing characters only; the full key never leaves the
// database through this service.
func keyHint(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return "..." + key[len(key)-4:]
}

func integrationToResponse(in *entity.Integration) *dto.IntegrationResponse {
	return &dto.IntegrationResponse{
		Id:        in.Id,
		Provider:  in.Provider,
		Label:     in.Label,
		KeyHint:   keyHint(in.ApiKey),
		CreatedAt: in.CreatedAt,
	}
}

func (s *integrationService) ListIntegrations(ctx context.Context, userId uuid.UUID) ([]*dto.IntegrationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	integrations, err := uow.IntegrationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.IntegrationResponse, 0, len(integrations))
	for _, in := range integrations {
		res = append(res, integrationToResponse(in))
	}
	return res, nil
}

func (s *integrationService) CreateIntegration(ctx context.Context, userId uuid.UUID, req *dto.CreateIntegrationRequest) (*dto.IntegrationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.IntegrationRepository()

	count, err := repo.Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByProvider{Provider: req.Provider},
	)
	if err != nil {
		return nil, err
	}
	if count >= maxIntegrationsPerProvider {
		return nil, serverutils.Forbidden("integration limit reached for this provider")
	}

	integration := &entity.Integration{
		Id:       uuid.New(),
		UserId:   userId,
		Provider: req.Provider,
		Label:    req.Label,
		ApiKey:   req.ApiKey,
	}
	if err := repo.Create(ctx, integration); err != nil {
		return nil, err
	}
	return integrationToResponse(integration), nil
}

func (s *integrationService) DeleteIntegration(ctx context.Context, userId uuid.UUID, integrationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.IntegrationRepository()

	in, err := repo.FindOne(ctx, specification.ByID{ID: integrationId}, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if in == nil {
		return serverutils.NotFound("integration not found")
	}
	return repo.Delete(ctx, integrationId)
}
