// FILE: internal/controller/integration_controller.go
package controller

import (
	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IIntegrationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type integrationController struct {
	integrationService service.IIntegrationService
}

func NewIntegrationController(integrationService service.IIntegrationService) IIntegrationController {
	return &integrationController{
		integrationService: integrationService,
	}
}

func (c *integrationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/integrations")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Delete(":id", c.Delete)
}

func (c *integrationController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.integrationService.ListIntegrations(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list integrations", res))
}

func (c *integrationController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateIntegrationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.integrationService.CreateIntegration(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create integration", res))
}

func (c *integrationController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("Invalid integration id")
	}

	if err := c.integrationService.DeleteIntegration(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete integration", nil))
}
