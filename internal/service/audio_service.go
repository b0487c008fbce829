// FILE: internal/service/audio_service.go
package service

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/pkg/logger"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/repository/specification"
	"ai-videostudio-be/internal/repository/unitofwork"
	"ai-videostudio-be/pkg/pricing"
	"ai-videostudio-be/pkg/provider/elevenlabs"
	"ai-videostudio-be/pkg/provider/openai"

	"github.com/google/uuid"
)

type IAudioService interface {
	Transcribe(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader, language string) (*dto.TranscribeResponse, error)
	TextToSpeech(ctx context.Context, userId uuid.UUID, req *dto.TextToSpeechRequest) (*dto.AudioResponse, error)
	VoiceChanger(ctx context.Context, userId uuid.UUID, req *dto.VoiceChangerRequest, file *multipart.FileHeader) (*dto.AudioResponse, error)
}

type audioService struct {
	uowFactory  unitofwork.RepositoryFactory
	credits     ICreditService
	persistence IPersistenceService
	whisper     *openai.Client
	speech      *elevenlabs.Client
	httpClient  *http.Client
	logger      logger.ILogger
}

func NewAudioService(
	uowFactory unitofwork.RepositoryFactory,
	credits ICreditService,
	persistence IPersistenceService,
	whisperClient *openai.Client,
	speechClient *elevenlabs.Client,
	log logger.ILogger,
) IAudioService {
	return &audioService{
		uowFactory:  uowFactory,
		credits:     credits,
		persistence: persistence,
		whisper:     whisperClient,
		speech:      speechClient,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		logger:      log,
	}
}

func (s *audioService) Transcribe(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader, language string) (*dto.TranscribeResponse, error) {
	if file == nil {
		return nil, serverutils.BadRequest("file is required")
	}

	charge, err := s.credits.Charge(ctx, userId, pricing.OpAudioTranscribe, nil, nil)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		if rErr := s.credits.Refund(ctx, charge, "transcribe: upload unreadable"); rErr != nil {
			s.logger.Error("AudioService", "Refund did not apply", map[string]interface{}{"user_id": userId, "error": rErr.Error()})
		}
		return nil, serverutils.BadRequest("uploaded file could not be read")
	}
	defer src.Close()

	result, perr := s.whisper.Transcribe(ctx, openai.TranscribeRequest{
		Reader:   src,
		Filename: file.Filename,
		Language: language,
	})
	if perr != nil {
		if rErr := s.credits.Refund(ctx, charge, "transcribe failed"); rErr != nil {
			s.logger.Error("AudioService", "Refund did not apply", map[string]interface{}{"user_id": userId, "error": rErr.Error()})
		}
		return nil, perr
	}

	return &dto.TranscribeResponse{
		Success: true,
		Text:    result.Text,
		Model:   result.Model,
	}, nil
}

func (s *audioService) resolveVoiceId(ctx context.Context, userId uuid.UUID, voiceId string, characterId *uuid.UUID) (string, error) {
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

func (s *audioService) TextToSpeech(ctx context.Context, userId uuid.UUID, req *dto.TextToSpeechRequest) (*dto.AudioResponse, error) {
	voiceId, err := s.resolveVoiceId(ctx, userId, req.VoiceId, req.VoiceCharacterId)
	if err != nil {
		return nil, err
	}

	charge, err := s.credits.Charge(ctx, userId, pricing.OpAudioTTS, nil, map[string]interface{}{
		"voice_id": voiceId,
	})
	if err != nil {
		return nil, err
	}

	result, perr := s.speech.TextToSpeech(ctx, voiceId, req.Text, req.ModelId)
	if perr != nil {
		if rErr := s.credits.Refund(ctx, charge, "tts failed"); rErr != nil {
			s.logger.Error("AudioService", "Refund did not apply", map[string]interface{}{"user_id": userId, "error": rErr.Error()})
		}
		return nil, perr
	}

	outcome := s.persistence.PersistAudio(ctx, PersistMediaRequest{
		UserId:      userId,
		ProjectId:   req.ProjectId,
		ClipId:      req.ClipId,
		Data:        result.Data,
		ContentType: result.ContentType,
		Ext:         ".mp3",
		Prompt:      req.Text,
		Model:       result.Model,
		RequestId:   result.RequestID,
		AssetName:   "Text to speech",
	})
	// Synthesized audio only exists as inline bytes; without a durable
	// upload there is no URL to answer with.
	if !outcome.StorageSuccess {
		if rErr := s.credits.Refund(ctx, charge, "tts: audio persist failed"); rErr != nil {
			s.logger.Error("AudioService", "Refund did not apply", map[string]interface{}{"user_id": userId, "error": rErr.Error()})
		}
		return nil, serverutils.ServiceUnavailable("durable storage is required for generated audio")
	}

	return &dto.AudioResponse{
		Success:        true,
		AudioUrl:       outcome.URL,
		StorageSuccess: outcome.StorageSuccess,
		Model:          result.Model,
		RequestId:      result.RequestID,
	}, nil
}

func (s *audioService) VoiceChanger(ctx context.Context, userId uuid.UUID, req *dto.VoiceChangerRequest, file *multipart.FileHeader) (*dto.AudioResponse, error) {
	if req.AudioUrl == "" && file == nil {
		return nil, serverutils.BadRequest("audio_url or file is required")
	}

	charge, err := s.credits.Charge(ctx, userId, pricing.OpAudioVoiceChanger, nil, map[string]interface{}{
		"voice_id": req.VoiceId,
	})
	if err != nil {
		return nil, err
	}

	refund := func(reason string) {
		if rErr := s.credits.Refund(ctx, charge, reason); rErr != nil {
			s.logger.Error("AudioService", "Refund did not apply", map[string]interface{}{"user_id": userId, "error": rErr.Error()})
		}
	}

	var result *dto.AudioResponse
	if file != nil {
		src, err := file.Open()
		if err != nil {
			refund("voice-changer: upload unreadable")
			return nil, serverutils.BadRequest("uploaded file could not be read")
		}
		defer src.Close()
		result, err = s.convertVoice(ctx, userId, req, src, file.Filename)
		if err != nil {
			refund("voice-changer failed")
			return nil, err
		}
		return result, nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.AudioUrl, nil)
	if err != nil {
		refund("voice-changer: bad audio_url")
		return nil, serverutils.BadRequest("audio_url could not be fetched")
	}
	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		refund("voice-changer: audio fetch failed")
		return nil, serverutils.BadRequest("audio_url could not be fetched")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		refund("voice-changer: audio fetch failed")
		return nil, serverutils.BadRequest("audio_url could not be fetched")
	}

	result, err = s.convertVoice(ctx, userId, req, resp.Body, "source.mp3")
	if err != nil {
		refund("voice-changer failed")
		return nil, err
	}
	return result, nil
}

func (s *audioService) convertVoice(ctx context.Context, userId uuid.UUID, req *dto.VoiceChangerRequest, audio io.Reader, filename string) (*dto.AudioResponse, error) {
	result, perr := s.speech.SpeechToSpeech(ctx, req.VoiceId, audio, filename)
	if perr != nil {
		return nil, perr
	}

	outcome := s.persistence.PersistAudio(ctx, PersistMediaRequest{
		UserId:      userId,
		ProjectId:   req.ProjectId,
		ClipId:      req.ClipId,
		Data:        result.Data,
		ContentType: result.ContentType,
		Ext:         ".mp3",
		Model:       result.Model,
		RequestId:   result.RequestID,
		AssetName:   "Voice conversion",
	})
	// Same as TTS: inline bytes have no ephemeral fallback URL.
	if !outcome.StorageSuccess {
		return nil, serverutils.ServiceUnavailable("durable storage is required for generated audio")
	}

	return &dto.AudioResponse{
		Success:        true,
		AudioUrl:       outcome.URL,
		StorageSuccess: outcome.StorageSuccess,
		Model:          result.Model,
		RequestId:      result.RequestID,
	}, nil
}
