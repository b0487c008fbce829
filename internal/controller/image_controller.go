// FILE: internal/controller/image_controller.go
package controller

import (
	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IImageController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Remix(ctx *fiber.Ctx) error
}

type imageController struct {
	imageService service.IImageService
}

func NewImageController(imageService service.IImageService) IImageController {
	return &imageController{
		imageService: imageService,
	}
}

func (c *imageController) RegisterRoutes(r fiber.Router) {
	r.Post("/generate-image", serverutils.JwtMiddleware, c.Generate)
	r.Post("/generate-image-remix", serverutils.JwtMiddleware, c.Remix)
}

func (c *imageController) Generate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.GenerateImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.imageService.GenerateImage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *imageController) Remix(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.RemixImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.imageService.RemixImage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
