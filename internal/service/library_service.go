// FILE: internal/service/library_service.go
package service

import (
	"context"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/pkg/logger"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/repository/specification"
	"ai-videostudio-be/internal/repository/unitofwork"
	"ai-videostudio-be/pkg/storage"

	"github.com/google/uuid"
)

type ILibraryService interface {
	ListImages(ctx context.Context, userId uuid.UUID, q *dto.ListQuery) ([]*dto.UserImageResponse, error)
	DeleteImage(ctx context.Context, userId uuid.UUID, imageId uuid.UUID) error
	ListVideos(ctx context.Context, userId uuid.UUID, q *dto.ListQuery) ([]*dto.UserVideoResponse, error)
	DeleteVideo(ctx context.Context, userId uuid.UUID, videoId uuid.UUID) error
	ListAssets(ctx context.Context, userId uuid.UUID, q *dto.ListQuery) ([]*dto.UserAssetResponse, error)
	CreateAsset(ctx context.Context, userId uuid.UUID, req *dto.CreateAssetRequest) (*dto.UserAssetResponse, error)
	DeleteAsset(ctx context.Context, userId uuid.UUID, assetId uuid.UUID) error
}

type libraryService struct {
	uowFactory unitofwork.RepositoryFactory
	store      *storage.Service
	logger     logger.ILogger
}

func NewLibraryService(uowFactory unitofwork.RepositoryFactory, store *storage.Service, log logger.ILogger) ILibraryService {
	return &libraryService{
		uowFactory: uowFactory,
		store:      store,
		logger:     log,
	}
}

func listSpecs(userId uuid.UUID, q *dto.ListQuery) []specification.Specification {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if q != nil {
		if q.ProjectId != nil {
			specs = append(specs, specification.ByProject{ProjectID: *q.ProjectId})
		}
		limit := q.Limit
		if limit == 0 {
			limit = 50
		}
		offset := 0
		if q.Page > 1 {
			offset = (q.Page - 1) * limit
		}
		specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	}
	return specs
}

func (s *libraryService) ListImages(ctx context.Context, userId uuid.UUID, q *dto.ListQuery) ([]*dto.UserImageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	images, err := uow.ImageRepository().FindAll(ctx, listSpecs(userId, q)...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.UserImageResponse, 0, len(images))
	for _, img := range images {
		item := &dto.UserImageResponse{
			Id:             img.Id,
			URL:            img.URL,
			StorageSuccess: img.StoragePath != nil,
			Prompt:         img.Prompt,
			Model:          img.Model,
			ProjectId:      img.ProjectId,
			CreatedAt:      img.CreatedAt,
		}
		if img.AspectRatio != nil {
			item.AspectRatio = *img.AspectRatio
		}
		if img.ClipId != nil {
			item.ClipId = *img.ClipId
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *libraryService) DeleteImage(ctx context.Context, userId uuid.UUID, imageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ImageRepository()

	img, err := repo.FindOne(ctx, specification.ByID{ID: imageId}, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if img == nil {
		return serverutils.NotFound("image not found")
	}

	if img.StoragePath != nil {
		if err := s.store.Remove(*img.StoragePath); err != nil {
			s.logger.Warn("LibraryService", "Failed to remove stored object", map[string]interface{}{
				"path":  *img.StoragePath,
				"error": err.Error(),
			})
		}
	}
	return repo.Delete(ctx, imageId)
}

func (s *libraryService) ListVideos(ctx context.Context, userId uuid.UUID, q *dto.ListQuery) ([]*dto.UserVideoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	videos, err := uow.VideoRepository().FindAll(ctx, listSpecs(userId, q)...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.UserVideoResponse, 0, len(videos))
	for _, v := range videos {
		item := &dto.UserVideoResponse{
			Id:             v.Id,
			URL:            v.URL,
			StorageSuccess: v.StoragePath != nil,
			Prompt:         v.Prompt,
			Model:          v.Model,
			ProjectId:      v.ProjectId,
			CreatedAt:      v.CreatedAt,
		}
		if v.DurationSec != nil {
			item.Duration = *v.DurationSec
		}
		if v.AspectRatio != nil {
			item.AspectRatio = *v.AspectRatio
		}
		if v.ClipId != nil {
			item.ClipId = *v.ClipId
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *libraryService) DeleteVideo(ctx context.Context, userId uuid.UUID, videoId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.VideoRepository()

	v, err := repo.FindOne(ctx, specification.ByID{ID: videoId}, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if v == nil {
		return serverutils.NotFound("video not found")
	}

	if v.StoragePath != nil {
		if err := s.store.Remove(*v.StoragePath); err != nil {
			s.logger.Warn("LibraryService", "Failed to remove stored object", map[string]interface{}{
				"path":  *v.StoragePath,
				"error": err.Error(),
			})
		}
	}
	return repo.Delete(ctx, videoId)
}

func (s *libraryService) ListAssets(ctx context.Context, userId uuid.UUID, q *dto.ListQuery) ([]*dto.UserAssetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	assets, err := uow.AssetRepository().FindAll(ctx, listSpecs(userId, q)...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.UserAssetResponse, 0, len(assets))
	for _, a := range assets {
		res = append(res, assetToResponse(a))
	}
	return res, nil
}

func assetToResponse(a *entity.UserAsset) *dto.UserAssetResponse {
	item := &dto.UserAssetResponse{
		Id:             a.Id,
		Kind:           string(a.Kind),
		URL:            a.URL,
		StorageSuccess: a.StoragePath != nil,
		Name:           a.Name,
		ProjectId:      a.ProjectId,
		CreatedAt:      a.CreatedAt,
	}
	if a.ContentType != nil {
		item.ContentType = *a.ContentType
	}
	if a.SizeBytes != nil {
		item.SizeBytes = *a.SizeBytes
	}
	if a.ClipId != nil {
		item.ClipId = *a.ClipId
	}
	return item
}

func (s *libraryService) CreateAsset(ctx context.Context, userId uuid.UUID, req *dto.CreateAssetRequest) (*dto.UserAssetResponse, error) {
	asset := &entity.UserAsset{
		Id:        uuid.New(),
		UserId:    userId,
		ProjectId: req.ProjectId,
		ClipId:    req.ClipId,
		Kind:      entity.AssetKind(req.Kind),
		URL:       req.URL,
		Name:      req.Name,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AssetRepository().Create(ctx, asset); err != nil {
		return nil, err
	}
	return assetToResponse(asset), nil
}

func (s *libraryService) DeleteAsset(ctx context.Context, userId uuid.UUID, assetId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.AssetRepository()

	a, err := repo.FindOne(ctx, specification.ByID{ID: assetId}, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if a == nil {
		return serverutils.NotFound("asset not found")
	}

	if a.StoragePath != nil {
		if err := s.store.Remove(*a.StoragePath); err != nil {
			s.logger.Warn("LibraryService", "Failed to remove stored object", map[string]interface{}{
				"path":  *a.StoragePath,
				"error": err.Error(),
			})
		}
	}
	return repo.Delete(ctx, assetId)
}
