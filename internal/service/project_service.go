// FILE: internal/service/project_service.go
package service

import (
	"context"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/repository/specification"
	"ai-videostudio-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProjectService interface {
	ListProjects(ctx context.Context, userId uuid.UUID) ([]*dto.ProjectResponse, error)
	GetProject(ctx context.Context, userId uuid.UUID, projectId uuid.UUID) (*dto.ProjectResponse, error)
	CreateProject(ctx context.Context, userId uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, userId uuid.UUID, projectId uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, userId uuid.UUID, projectId uuid.UUID) error
}

type projectService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProjectService(uowFactory unitofwork.RepositoryFactory) IProjectService {
	return &projectService{uowFactory: uowFactory}
}

func projectToResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		Id:        p.Id,
		Title:     p.Title,
		Timeline:  p.Timeline,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (s *projectService) ListProjects(ctx context.Context, userId uuid.UUID) ([]*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	projects, err := uow.ProjectRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		res = append(res, projectToResponse(p))
	}
	return res, nil
}

func (s *projectService) GetProject(ctx context.Context, userId uuid.UUID, projectId uuid.UUID) (*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	p, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: projectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, serverutils.NotFound("project not found")
	}
	return projectToResponse(p), nil
}

func (s *projectService) CreateProject(ctx context.Context, userId uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	project := &entity.Project{
		Id:       uuid.New(),
		UserId:   userId,
		Title:    req.Title,
		Timeline: req.Timeline,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProjectRepository().Create(ctx, project); err != nil {
		return nil, err
	}
	return projectToResponse(project), nil
}

func (s *projectService) UpdateProject(ctx context.Context, userId uuid.UUID, projectId uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ProjectRepository()

	p, err := repo.FindOne(ctx, specification.ByID{ID: projectId}, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, serverutils.NotFound("project not found")
	}

	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Timeline != nil {
		p.Timeline = req.Timeline
	}
	if err := repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return projectToResponse(p), nil
}

func (s *projectService) DeleteProject(ctx context.Context, userId uuid.UUID, projectId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ProjectRepository()

	p, err := repo.FindOne(ctx, specification.ByID{ID: projectId}, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if p == nil {
		return serverutils.NotFound("project not found")
	}
	return repo.Delete(ctx, projectId)
}
