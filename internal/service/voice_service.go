// FILE: internal/service/voice_service.go
package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"path/filepath"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/pkg/logger"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/repository/specification"
	"ai-videostudio-be/internal/repository/unitofwork"
	"ai-videostudio-be/pkg/pricing"
	"ai-videostudio-be/pkg/provider/elevenlabs"
	"ai-videostudio-be/pkg/storage"

	"github.com/google/uuid"
)

const maxVoiceCharacters = 5

type IVoiceService interface {
	ListVoices(ctx context.Context, userId uuid.UUID) ([]*dto.VoiceCharacterResponse, error)
	CreateVoice(ctx context.Context, userId uuid.UUID, name string, sample *multipart.FileHeader) (*dto.VoiceCharacterResponse, error)
	DeleteVoice(ctx context.Context, userId uuid.UUID, voiceId uuid.UUID) error
}

type voiceService struct {
	uowFactory unitofwork.RepositoryFactory
	credits    ICreditService
	speech     *elevenlabs.Client
	store      *storage.Service
	logger     logger.ILogger
}

func NewVoiceService(
	uowFactory unitofwork.RepositoryFactory,
	credits ICreditService,
	speechClient *elevenlabs.Client,
	store *storage.Service,
	log logger.ILogger,
) IVoiceService {
	return &voiceService{
		uowFactory: uowFactory,
		credits:    credits,
		speech:     speechClient,
		store:      store,
		logger:     log,
	}
}

func voiceToResponse(v *entity.VoiceCharacter) *dto.VoiceCharacterResponse {
	res := &dto.VoiceCharacterResponse{
		Id:        v.Id,
		Name:      v.Name,
		VoiceId:   v.ProviderVoiceId,
		CreatedAt: v.CreatedAt,
	}
	if v.PreviewURL != nil {
		res.PreviewURL = *v.PreviewURL
	}
	return res
}

func (s *voiceService) ListVoices(ctx context.Context, userId uuid.UUID) ([]*dto.VoiceCharacterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	voices, err := uow.VoiceRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.VoiceCharacterResponse, 0, len(voices))
	for _, v := range voices {
		res = append(res, voiceToResponse(v))
	}
	return res, nil
}

func (s *voiceService) CreateVoice(ctx context.Context, userId uuid.UUID, name string, sample *multipart.FileHeader) (*dto.VoiceCharacterResponse, error) {
	if name == "" {
		return nil, serverutils.BadRequest("name is required")
	}
	if sample == nil {
		return nil, serverutils.BadRequest("sample file is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.VoiceRepository()

	count, err := repo.Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if count >= maxVoiceCharacters {
		return nil, serverutils.Forbidden("voice character limit reached")
	}

	charge, err := s.credits.Charge(ctx, userId, pricing.OpVoiceClone, nil, nil)
	if err != nil {
		return nil, err
	}

	src, err := sample.Open()
	if err != nil {
		if rErr := s.credits.Refund(ctx, charge, "voice clone: sample unreadable"); rErr != nil {
			s.logger.Error("VoiceService", "Refund did not apply", map[string]interface{}{"user_id": userId, "error": rErr.Error()})
		}
		return nil, serverutils.BadRequest("sample file could not be read")
	}
	defer src.Close()

	// The sample feeds both the clone call and the stored preview, so
	// buffer it instead of streaming the reader once.
	sampleData, err := io.ReadAll(src)
	if err != nil {
		if rErr := s.credits.Refund(ctx, charge, "voice clone: sample unreadable"); rErr != nil {
			s.logger.Error("VoiceService", "Refund did not apply", map[string]interface{}{"user_id": userId, "error": rErr.Error()})
		}
		return nil, serverutils.BadRequest("sample file could not be read")
	}

	providerVoiceId, perr := s.speech.CloneVoice(ctx, name, bytes.NewReader(sampleData), sample.Filename)
	if perr != nil {
		if rErr := s.credits.Refund(ctx, charge, "voice clone failed"); rErr != nil {
			s.logger.Error("VoiceService", "Refund did not apply", map[string]interface{}{"user_id": userId, "error": rErr.Error()})
		}
		return nil, perr
	}

	voice := &entity.VoiceCharacter{
		Id:              uuid.New(),
		UserId:          userId,
		Name:            name,
		ProviderVoiceId: providerVoiceId,
	}

	ext := filepath.Ext(sample.Filename)
	if ext == "" {
		ext = ".mp3"
	}
	contentType := sample.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	persisted := s.store.PersistBytes(ctx, sampleData,
		storage.ObjectPath("voices", userId.String(), "", "", ext), contentType)
	if persisted.Success {
		voice.PreviewURL = &persisted.URL
		voice.SamplePath = &persisted.StoragePath
	} else {
		// The clone is usable without a preview; keep the record.
		s.logger.Warn("VoiceService", "Voice sample persist failed", map[string]interface{}{
			"user_id":  userId,
			"voice_id": providerVoiceId,
		})
	}

	if err := repo.Create(ctx, voice); err != nil {
		// Provider-side voice stays; a retry with the same sample would
		// duplicate it, so surface the failure.
		return nil, err
	}

	return voiceToResponse(voice), nil
}

func (s *voiceService) DeleteVoice(ctx context.Context, userId uuid.UUID, voiceId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.VoiceRepository()

	voice, err := repo.FindOne(ctx, specification.ByID{ID: voiceId}, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if voice == nil {
		return serverutils.NotFound("voice character not found")
	}

	if perr := s.speech.DeleteVoice(ctx, voice.ProviderVoiceId); perr != nil {
		s.logger.Warn("VoiceService", "Provider voice delete failed", map[string]interface{}{
			"voice_id": voice.ProviderVoiceId,
			"error":    perr.Error(),
		})
	}
	if voice.SamplePath != nil {
		if err := s.store.Remove(*voice.SamplePath); err != nil {
			s.logger.Warn("VoiceService", "Stored sample delete failed", map[string]interface{}{
				"path":  *voice.SamplePath,
				"error": err.Error(),
			})
		}
	}
	return repo.Delete(ctx, voiceId)
}
