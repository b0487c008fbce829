// FILE: internal/service/image_service.go
package service

import (
	"context"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/pkg/logger"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/pkg/pricing"
	"ai-videostudio-be/pkg/provider"
	"ai-videostudio-be/pkg/provider/fal"
	"ai-videostudio-be/pkg/provider/gemini"
	"ai-videostudio-be/pkg/provider/openai"

	"github.com/google/uuid"
)

type IImageService interface {
	GenerateImage(ctx context.Context, userId uuid.UUID, req *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error)
	RemixImage(ctx context.Context, userId uuid.UUID, req *dto.RemixImageRequest) (*dto.GenerateImageResponse, error)
}

type imageService struct {
	credits     ICreditService
	persistence IPersistenceService
	openaiImage *openai.Client
	geminiImage *gemini.Client
	falImage    *fal.Client
	logger      logger.ILogger
}

func NewImageService(
	credits ICreditService,
	persistence IPersistenceService,
	openaiClient *openai.Client,
	geminiClient *gemini.Client,
	falClient *fal.Client,
	log logger.ILogger,
) IImageService {
	return &imageService{
		credits:     credits,
		persistence: persistence,
		openaiImage: openaiClient,
		geminiImage: geminiClient,
		falImage:    falClient,
		logger:      log,
	}
}

func (s *imageService) GenerateImage(ctx context.Context, userId uuid.UUID, req *dto.GenerateImageRequest) (*dto.GenerateImageResponse, error) {
	charge, err := s.credits.Charge(ctx, userId, pricing.OpImageGenerate, nil, map[string]interface{}{
		"model": req.Model,
	})
	if err != nil {
		return nil, err
	}

	var result *provider.Result
	var perr *provider.Error

	switch req.Model {
	case "gemini":
		result, perr = s.geminiImage.GenerateImage(ctx, req.Prompt)
	default: // dall-e-3
		size := req.Size
		if size == "" {
			size = sizeForAspect(req.AspectRatio)
		}
		result, perr = s.openaiImage.GenerateImage(ctx, openai.ImageRequest{
			Prompt: req.Prompt,
			Size:   size,
		})
	}

	if perr != nil {
		if rErr := s.credits.Refund(ctx, charge, "image generation failed"); rErr != nil {
			s.logger.Error("ImageService", "Refund after provider failure did not apply", map[string]interface{}{
				"user_id": userId,
				"error":   rErr.Error(),
			})
		}
		return nil, perr
	}

	persistReq := PersistMediaRequest{
		UserId:      userId,
		ProjectId:   req.ProjectId,
		ClipId:      req.ClipId,
		SourceURL:   result.URL,
		Data:        result.Data,
		ContentType: result.ContentType,
		Ext:         ".png",
		Prompt:      req.Prompt,
		Model:       modelLabel(req.Model, result),
		RequestId:   result.RequestID,
		AspectRatio: req.AspectRatio,
	}
	outcome := s.persistence.PersistImage(ctx, persistReq)
	// Gemini returns inline bytes with no ephemeral URL, so a storage
	// failure there leaves nothing to answer with.
	if outcome.URL == "" {
		if rErr := s.credits.Refund(ctx, charge, "image: persist failed"); rErr != nil {
			s.logger.Error("ImageService", "Refund after storage failure did not apply", map[string]interface{}{
				"user_id": userId,
				"error":   rErr.Error(),
			})
		}
		return nil, serverutils.ServiceUnavailable("durable storage is required for generated images")
	}

	return &dto.GenerateImageResponse{
		Success:        true,
		ImageUrl:       outcome.URL,
		StorageSuccess: outcome.StorageSuccess,
		Model:          persistReq.Model,
		RequestId:      result.RequestID,
	}, nil
}

func (s *imageService) RemixImage(ctx context.Context, userId uuid.UUID, req *dto.RemixImageRequest) (*dto.GenerateImageResponse, error) {
	model := fal.ImageModelForSelector(req.ImageModel)

	charge, err := s.credits.Charge(ctx, userId, pricing.OpImageRemix, nil, map[string]interface{}{
		"model": req.ImageModel,
	})
	if err != nil {
		return nil, err
	}

	result, perr := s.falImage.GenerateImage(ctx, fal.ImageRequest{
		Model:         model,
		Prompt:        req.Prompt,
		ReferenceURLs: req.ReferenceImageUrls,
		AspectRatio:   req.AspectRatio,
	})
	if perr != nil {
		if rErr := s.credits.Refund(ctx, charge, "image remix failed"); rErr != nil {
			s.logger.Error("ImageService", "Refund after provider failure did not apply", map[string]interface{}{
				"user_id": userId,
				"error":   rErr.Error(),
			})
		}
		return nil, perr
	}

	outcome := s.persistence.PersistImage(ctx, PersistMediaRequest{
		UserId:      userId,
		ProjectId:   req.ProjectId,
		ClipId:      req.ClipId,
		SourceURL:   result.URL,
		Ext:         ".png",
		Prompt:      req.Prompt,
		Model:       model,
		RequestId:   result.RequestID,
		AspectRatio: req.AspectRatio,
	})

	return &dto.GenerateImageResponse{
		Success:        true,
		ImageUrl:       outcome.URL,
		StorageSuccess: outcome.StorageSuccess,
		Model:          model,
		RequestId:      result.RequestID,
	}, nil
}

func sizeForAspect(aspectRatio string) string {
	switch aspectRatio {
	case "16:9", "4:3":
		return "1792x1024"
	case "9:16", "3:4":
		return "1024x1792"
	default:
		return "1024x1024"
	}
}

func modelLabel(selector string, result *provider.Result) string {
	if selector == "gemini" {
		return result.Model
	}
	return openai.ModelLabel
}
