// FILE: internal/service/video_service.go
package service

import (
	"context"
	"fmt"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/pkg/logger"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/repository/specification"
	"ai-videostudio-be/internal/repository/unitofwork"
	"ai-videostudio-be/pkg/pricing"
	"ai-videostudio-be/pkg/provider/elevenlabs"
	"ai-videostudio-be/pkg/provider/fal"

	"github.com/google/uuid"
)

type IVideoService interface {
	GenerateVideo(ctx context.Context, userId uuid.UUID, req *dto.GenerateVideoRequest) (*dto.GenerateVideoResponse, error)
	DubAndSync(ctx context.Context, userId uuid.UUID, req *dto.DubAndSyncRequest) (*dto.DubAndSyncResponse, error)
}

type videoService struct {
	uowFactory  unitofwork.RepositoryFactory
	credits     ICreditService
	persistence IPersistenceService
	falVideo    *fal.Client
	speech      *elevenlabs.Client
	logger      logger.ILogger
}

func NewVideoService(
	uowFactory unitofwork.RepositoryFactory,
	credits ICreditService,
	persistence IPersistenceService,
	falClient *fal.Client,
	speechClient *elevenlabs.Client,
	log logger.ILogger,
) IVideoService {
	return &videoService{
		uowFactory:  uowFactory,
		credits:     credits,
		persistence: persistence,
		falVideo:    falClient,
		speech:      speechClient,
		logger:      log,
	}
}

// videoModelSpec pins the allowed knob values per model family. Anything
// outside these sets is a 400 before any credits move.
type videoModelSpec struct {
	model          string
	durations      []int
	resolutions    []string
	aspectRatios   []string
	needsImage     bool
	needsReference bool
}

var videoModels = map[string]videoModelSpec{
	"vidu-text": {
		model:        fal.VideoModelViduText,
		durations:    []int{4, 8},
		resolutions:  []string{"360p", "720p", "1080p"},
		aspectRatios: []string{"16:9", "9:16", "1:1"},
	},
	"vidu-image": {
		model:        fal.VideoModelViduImage,
		durations:    []int{4, 8},
		resolutions:  []string{"360p", "720p", "1080p"},
		needsImage:   true,
		aspectRatios: []string{"16:9", "9:16", "1:1"},
	},
	"vidu-reference": {
		model:          fal.VideoModelViduReference,
		durations:      []int{4, 8},
		resolutions:    []string{"360p", "720p", "1080p"},
		needsReference: true,
		aspectRatios:   []string{"16:9", "9:16", "1:1"},
	},
	"kling-elements": {
		model:          fal.VideoModelKlingElements,
		durations:      []int{5, 10},
		needsReference: true,
		aspectRatios:   []string{"16:9", "9:16"},
	},
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func validateVideoRequest(req *dto.GenerateVideoRequest) (videoModelSpec, error) {
	spec, ok := videoModels[req.VideoModel]
	if !ok {
		return spec, serverutils.BadRequest(fmt.Sprintf("unknown video model %q", req.VideoModel))
	}
	if req.Duration != 0 && !containsInt(spec.durations, req.Duration) {
		return spec, serverutils.BadRequest(fmt.Sprintf("duration %d not supported by %s", req.Duration, req.VideoModel))
	}
	if req.Resolution != "" {
		if len(spec.resolutions) == 0 {
			return spec, serverutils.BadRequest(fmt.Sprintf("%s does not accept a resolution", req.VideoModel))
		}
		if !containsString(spec.resolutions, req.Resolution) {
			return spec, serverutils.BadRequest(fmt.Sprintf("resolution %s not supported by %s", req.Resolution, req.VideoModel))
		}
	}
	if req.AspectRatio != "" && !containsString(spec.aspectRatios, req.AspectRatio) {
		return spec, serverutils.BadRequest(fmt.Sprintf("aspect ratio %s not supported by %s", req.AspectRatio, req.VideoModel))
	}
	if spec.needsImage && req.ImageUrl == "" {
		return spec, serverutils.BadRequest(fmt.Sprintf("%s requires image_url", req.VideoModel))
	}
	if spec.needsReference && len(req.ReferenceImageUrls) == 0 {
		return spec, serverutils.BadRequest(fmt.Sprintf("%s requires reference_image_urls", req.VideoModel))
	}
	return spec, nil
}

func (s *videoService) GenerateVideo(ctx context.Context, userId uuid.UUID, req *dto.GenerateVideoRequest) (*dto.GenerateVideoResponse, error) {
	spec, err := validateVideoRequest(req)
	if err != nil {
		return nil, err
	}

	charge, err := s.credits.Charge(ctx, userId, pricing.OpVideoGenerate, nil, map[string]interface{}{
		"model":    req.VideoModel,
		"duration": req.Duration,
	})
	if err != nil {
		return nil, err
	}

	result, perr := s.falVideo.GenerateVideo(ctx, fal.VideoRequest{
		Model:         spec.model,
		Prompt:        req.Prompt,
		ImageURL:      req.ImageUrl,
		ReferenceURLs: req.ReferenceImageUrls,
		DurationSec:   req.Duration,
		Resolution:    req.Resolution,
		AspectRatio:   req.AspectRatio,
	})
	if perr != nil {
		if rErr := s.credits.Refund(ctx, charge, "video generation failed"); rErr != nil {
			s.logger.Error("VideoService", "Refund after provider failure did not apply", map[string]interface{}{
				"user_id": userId,
				"error":   rErr.Error(),
			})
		}
		return nil, perr
	}

	outcome := s.persistence.PersistVideo(ctx, PersistMediaRequest{
		UserId:      userId,
		ProjectId:   req.ProjectId,
		ClipId:      req.ClipId,
		SourceURL:   result.URL,
		Ext:         ".mp4",
		Prompt:      req.Prompt,
		Model:       spec.model,
		RequestId:   result.RequestID,
		DurationSec: result.DurationSec,
		AspectRatio: req.AspectRatio,
	})

	return &dto.GenerateVideoResponse{
		Success:        true,
		VideoUrl:       outcome.URL,
		StorageSuccess: outcome.StorageSuccess,
		Model:          spec.model,
		RequestId:      result.RequestID,
		Duration:       result.DurationSec,
	}, nil
}

func (s *videoService) resolveVoiceId(ctx context.Context, userId uuid.UUID, voiceId string, characterId *uuid.UUID) (string, error) {
	if voiceId != "" {
		return voiceId, nil
	}
	if characterId == nil {
		return "", serverutils.BadRequest("voice_id or voice_character_id is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	voice, err := uow.VoiceRepository().FindOne(ctx,
		specification.ByID{ID: *characterId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return "", err
	}
	if voice == nil {
		return "", serverutils.NotFound("voice character not found")
	}
	return voice.ProviderVoiceId, nil
}

// DubAndSync chains TTS, optional video extension and lip-sync. The chain
// aborts on the first failure and the single combined charge is refunded.
func (s *videoService) DubAndSync(ctx context.Context, userId uuid.UUID, req *dto.DubAndSyncRequest) (*dto.DubAndSyncResponse, error) {
	voiceId, err := s.resolveVoiceId(ctx, userId, req.VoiceId, req.VoiceCharacterId)
	if err != nil {
		return nil, err
	}

	charge, err := s.credits.Charge(ctx, userId, pricing.OpVideoDubAndSync, nil, map[string]interface{}{
		"voice_id": voiceId,
	})
	if err != nil {
		return nil, err
	}

	refund := func(reason string) {
		if rErr := s.credits.Refund(ctx, charge, reason); rErr != nil {
			s.logger.Error("VideoService", "Refund after chain failure did not apply", map[string]interface{}{
				"user_id": userId,
				"reason":  reason,
				"error":   rErr.Error(),
			})
		}
	}

	// Step 1: dub the narration.
	ttsResult, perr := s.speech.TextToSpeech(ctx, voiceId, req.Text, "")
	if perr != nil {
		refund("dub-and-sync: tts failed")
		return nil, perr
	}

	audioOutcome := s.persistence.PersistAudio(ctx, PersistMediaRequest{
		UserId:      userId,
		ProjectId:   req.ProjectId,
		ClipId:      req.ClipId,
		Data:        ttsResult.Data,
		ContentType: ttsResult.ContentType,
		Ext:         ".mp3",
		Prompt:      req.Text,
		Model:       ttsResult.Model,
		RequestId:   ttsResult.RequestID,
		AssetName:   "Dub narration",
	})
	// Lip-sync needs a fetchable audio URL, so this step cannot fall back.
	if !audioOutcome.StorageSuccess {
		refund("dub-and-sync: audio persist failed")
		return nil, serverutils.ServiceUnavailable("durable storage is required for dub and sync")
	}

	// Step 2: optionally extend the base video first.
	videoUrl := req.VideoUrl
	if req.ExtendPrompt != "" || req.ExtendDuration > 0 {
		duration := req.ExtendDuration
		if duration == 0 {
			duration = 4
		}
		extendResult, perr := s.falVideo.ExtendVideo(ctx, videoUrl, req.ExtendPrompt, duration)
		if perr != nil {
			refund("dub-and-sync: video extension failed")
			return nil, perr
		}
		videoUrl = extendResult.URL
	}

	// Step 3: lip-sync the dub onto the video.
	syncResult, perr := s.falVideo.LipSync(ctx, videoUrl, audioOutcome.URL)
	if perr != nil {
		refund("dub-and-sync: lip sync failed")
		return nil, perr
	}

	outcome := s.persistence.PersistVideo(ctx, PersistMediaRequest{
		UserId:    userId,
		ProjectId: req.ProjectId,
		ClipId:    req.ClipId,
		SourceURL: syncResult.URL,
		Ext:       ".mp4",
		Prompt:    req.Text,
		Model:     fal.VideoModelSyncLipsync,
		RequestId: syncResult.RequestID,
	})

	return &dto.DubAndSyncResponse{
		Success:        true,
		VideoUrl:       outcome.URL,
		AudioUrl:       audioOutcome.URL,
		StorageSuccess: outcome.StorageSuccess,
		Model:          fal.VideoModelSyncLipsync,
		RequestId:      syncResult.RequestID,
	}, nil
}
