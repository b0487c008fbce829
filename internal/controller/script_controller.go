// FILE: internal/controller/script_controller.go
package controller

import (
	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IScriptController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type scriptController struct {
	scriptService service.IScriptService
}

func NewScriptController(scriptService service.IScriptService) IScriptController {
	return &scriptController{
		scriptService: scriptService,
	}
}

func (c *scriptController) RegisterRoutes(r fiber.Router) {
	r.Post("/generate-script", serverutils.JwtMiddleware, c.Generate)
}

func (c *scriptController) Generate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.GenerateScriptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.scriptService.GenerateScript(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
