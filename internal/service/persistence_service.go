// FILE: internal/service/persistence_service.go
package service

import (
	"context"
	"encoding/json"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/pkg/logger"
	"ai-videostudio-be/internal/repository/unitofwork"
	"ai-videostudio-be/pkg/storage"

	"github.com/google/uuid"
)

// PersistMediaRequest describes one generated artifact: either an ephemeral
// provider URL to download, or inline bytes for providers that return audio
// directly.
type PersistMediaRequest struct {
	UserId      uuid.UUID
	ProjectId   *uuid.UUID
	ClipId      *string
	SourceURL   string
	Data        []byte
	ContentType string
	Ext         string
	Prompt      string
	Model       string
	RequestId   string
	DurationSec int
	AspectRatio string
	AssetName   string
}

type PersistOutcome struct {
	MediaId        uuid.UUID
	URL            string
	StorageSuccess bool
}

// IPersistenceService uploads generated media to durable storage and records
// a metadata row. Storage failure falls back to the ephemeral URL; metadata
// failure is logged and swallowed. The caller always gets a usable URL back.
type IPersistenceService interface {
	PersistImage(ctx context.Context, req PersistMediaRequest) PersistOutcome
	PersistVideo(ctx context.Context, req PersistMediaRequest) PersistOutcome
	PersistAudio(ctx context.Context, req PersistMediaRequest) PersistOutcome
}

type persistenceService struct {
	uowFactory unitofwork.RepositoryFactory
	store      *storage.Service
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewPersistenceService(
	uowFactory unitofwork.RepositoryFactory,
	store *storage.Service,
	publisher IPublisherService,
	log logger.ILogger,
) IPersistenceService {
	return &persistenceService{
		uowFactory: uowFactory,
		store:      store,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *persistenceService) persist(ctx context.Context, kind string, req PersistMediaRequest) storage.PersistResult {
	projectID := ""
	if req.ProjectId != nil {
		projectID = req.ProjectId.String()
	}
	clipID := ""
	if req.ClipId != nil {
		clipID = *req.ClipId
	}
	objectPath := storage.ObjectPath(kind, req.UserId.String(), projectID, clipID, req.Ext)
	if len(req.Data) > 0 {
		return s.store.PersistBytes(ctx, req.Data, objectPath, req.ContentType)
	}
	return s.store.PersistURL(ctx, req.SourceURL, objectPath, req.ContentType)
}

func (s *persistenceService) publishGenerated(ctx context.Context, kind string, mediaId uuid.UUID, url string, req PersistMediaRequest) {
	if s.publisher == nil {
		return
	}
	msg := dto.MediaGeneratedMessage{
		UserId:    req.UserId,
		MediaId:   mediaId,
		MediaKind: kind,
		URL:       url,
		Model:     req.Model,
		ProjectId: req.ProjectId,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("PersistenceService", "Failed to publish media.generated", map[string]interface{}{
			"media_id": mediaId,
			"error":    err.Error(),
		})
	}
}

func (s *persistenceService) PersistImage(ctx context.Context, req PersistMediaRequest) PersistOutcome {
	result := s.persist(ctx, "images", req)

	image := &entity.UserImage{
		Id:        uuid.New(),
		UserId:    req.UserId,
		ProjectId: req.ProjectId,
		ClipId:    req.ClipId,
		URL:       result.URL,
		Prompt:    req.Prompt,
		Model:     req.Model,
	}
	if req.SourceURL != "" && result.Success {
		image.EphemeralURL = &req.SourceURL
	}
	if result.Success {
		image.StoragePath = &result.StoragePath
		image.Bucket = &result.Bucket
	}
	if req.AspectRatio != "" {
		image.AspectRatio = &req.AspectRatio
	}
	if req.RequestId != "" {
		image.Metadata = map[string]interface{}{"request_id": req.RequestId}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ImageRepository().Create(ctx, image); err != nil {
		s.logger.Warn("PersistenceService", "Image metadata write failed", map[string]interface{}{
			"user_id": req.UserId,
			"error":   err.Error(),
		})
	}

	s.publishGenerated(ctx, "image", image.Id, result.URL, req)

	return PersistOutcome{MediaId: image.Id, URL: result.URL, StorageSuccess: result.Success}
}

func (s *persistenceService) PersistVideo(ctx context.Context, req PersistMediaRequest) PersistOutcome {
	result := s.persist(ctx, "videos", req)

	video := &entity.UserVideo{
		Id:        uuid.New(),
		UserId:    req.UserId,
		ProjectId: req.ProjectId,
		ClipId:    req.ClipId,
		URL:       result.URL,
		Prompt:    req.Prompt,
		Model:     req.Model,
	}
	if req.SourceURL != "" && result.Success {
		video.EphemeralURL = &req.SourceURL
	}
	if result.Success {
		video.StoragePath = &result.StoragePath
		video.Bucket = &result.Bucket
	}
	if req.DurationSec > 0 {
		video.DurationSec = &req.DurationSec
	}
	if req.AspectRatio != "" {
		video.AspectRatio = &req.AspectRatio
	}
	if req.RequestId != "" {
		video.Metadata = map[string]interface{}{"request_id": req.RequestId}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.VideoRepository().Create(ctx, video); err != nil {
		s.logger.Warn("PersistenceService", "Video metadata write failed", map[string]interface{}{
			"user_id": req.UserId,
			"error":   err.Error(),
		})
	}

	s.publishGenerated(ctx, "video", video.Id, result.URL, req)

	return PersistOutcome{MediaId: video.Id, URL: result.URL, StorageSuccess: result.Success}
}

func (s *persistenceService) PersistAudio(ctx context.Context, req PersistMediaRequest) PersistOutcome {
	result := s.persist(ctx, "audio", req)

	name := req.AssetName
	if name == "" {
		name = "Generated audio"
	}

	asset := &entity.UserAsset{
		Id:        uuid.New(),
		UserId:    req.UserId,
		ProjectId: req.ProjectId,
		ClipId:    req.ClipId,
		Kind:      entity.AssetKindAudio,
		URL:       result.URL,
		Name:      name,
	}
	if req.SourceURL != "" && result.Success {
		asset.EphemeralURL = &req.SourceURL
	}
	if result.Success {
		asset.StoragePath = &result.StoragePath
		asset.Bucket = &result.Bucket
	}
	if req.ContentType != "" {
		asset.ContentType = &req.ContentType
	}
	if req.RequestId != "" {
		asset.Metadata = map[string]interface{}{"request_id": req.RequestId, "model": req.Model}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AssetRepository().Create(ctx, asset); err != nil {
		s.logger.Warn("PersistenceService", "Audio metadata write failed", map[string]interface{}{
			"user_id": req.UserId,
			"error":   err.Error(),
		})
	}

	s.publishGenerated(ctx, "audio", asset.Id, result.URL, req)

	return PersistOutcome{MediaId: asset.Id, URL: result.URL, StorageSuccess: result.Success}
}
