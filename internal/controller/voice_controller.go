// FILE: internal/controller/voice_controller.go
package controller

import (
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVoiceController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type voiceController struct {
	voiceService service.IVoiceService
}

func NewVoiceController(voiceService service.IVoiceService) IVoiceController {
	return &voiceController{
		voiceService: voiceService,
	}
}

func (c *voiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/voices")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Delete(":id", c.Delete)
}

func (c *voiceController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.voiceService.ListVoices(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list voices", res))
}

func (c *voiceController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	name := ctx.FormValue("name")
	if name == "" {
		return serverutils.BadRequest("Voice name is required")
	}

	sample, err := ctx.FormFile("sample")
	if err != nil {
		return serverutils.BadRequest("Voice sample file is required")
	}

	res, err := c.voiceService.CreateVoice(ctx.Context(), userId, name, sample)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create voice", res))
}

func (c *voiceController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("Invalid voice id")
	}

	if err := c.voiceService.DeleteVoice(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete voice", nil))
}
