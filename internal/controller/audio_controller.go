// FILE: internal/controller/audio_controller.go
package controller

import (
	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAudioController interface {
	RegisterRoutes(r fiber.Router)
	Transcribe(ctx *fiber.Ctx) error
	TextToSpeech(ctx *fiber.Ctx) error
	VoiceChanger(ctx *fiber.Ctx) error
}

type audioController struct {
	audioService service.IAudioService
}

func NewAudioController(audioService service.IAudioService) IAudioController {
	return &audioController{
		audioService: audioService,
	}
}

func (c *audioController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/audio")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/transcribe", c.Transcribe)
	h.Post("/tts", c.TextToSpeech)
	h.Post("/voice-changer", c.VoiceChanger)
}

func (c *audioController) Transcribe(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	file, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.BadRequest("Audio file is required")
	}
	language := ctx.FormValue("language")

	res, err := c.audioService.Transcribe(ctx.Context(), userId, file, language)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *audioController) TextToSpeech(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.TextToSpeechRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.audioService.TextToSpeech(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *audioController) VoiceChanger(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	// Accepts either an uploaded file or an audio_url form field.
	req := dto.VoiceChangerRequest{
		AudioUrl: ctx.FormValue("audio_url"),
		VoiceId:  ctx.FormValue("voice_id"),
	}
	if projectId, err := uuid.Parse(ctx.FormValue("project_id")); err == nil {
		req.ProjectId = &projectId
	}
	if clipId := ctx.FormValue("clip_id"); clipId != "" {
		req.ClipId = &clipId
	}
	file, _ := ctx.FormFile("file")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.audioService.VoiceChanger(ctx.Context(), userId, &req, file)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
