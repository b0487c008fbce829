// FILE: internal/service/script_service.go
package service

import (
	"context"
	"fmt"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/pkg/logger"
	"ai-videostudio-be/pkg/pricing"
	"ai-videostudio-be/pkg/provider/gemini"

	"github.com/google/uuid"
)

type IScriptService interface {
	GenerateScript(ctx context.Context, userId uuid.UUID, req *dto.GenerateScriptRequest) (*dto.GenerateScriptResponse, error)
}

type scriptService struct {
	credits ICreditService
	gemini  *gemini.Client
	logger  logger.ILogger
}

func NewScriptService(credits ICreditService, geminiClient *gemini.Client, log logger.ILogger) IScriptService {
	return &scriptService{
		credits: credits,
		gemini:  geminiClient,
		logger:  log,
	}
}

func (s *scriptService) GenerateScript(ctx context.Context, userId uuid.UUID, req *dto.GenerateScriptRequest) (*dto.GenerateScriptResponse, error) {
	charge, err := s.credits.Charge(ctx, userId, pricing.OpScriptGenerate, nil, nil)
	if err != nil {
		return nil, err
	}

	sceneCount := req.SceneCount
	if sceneCount == 0 {
		sceneCount = 5
	}
	prompt := fmt.Sprintf(
		"Write a scene-by-scene short video script (%d scenes) for the following idea. "+
			"For each scene give a visual description and the narration line.\nIdea: %s",
		sceneCount, req.Idea,
	)
	if req.Tone != "" {
		prompt += fmt.Sprintf("\nTone: %s", req.Tone)
	}

	result, perr := s.gemini.GenerateText(ctx, prompt)
	if perr != nil {
		if rErr := s.credits.Refund(ctx, charge, "script generation failed"); rErr != nil {
			s.logger.Error("ScriptService", "Refund did not apply", map[string]interface{}{
				"user_id": userId,
				"error":   rErr.Error(),
			})
		}
		return nil, perr
	}

	return &dto.GenerateScriptResponse{
		Success: true,
		Script:  result.Text,
		Model:   result.Model,
	}, nil
}
