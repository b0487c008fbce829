// FILE: internal/controller/library_controller.go
package controller

import (
	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILibraryController interface {
	RegisterRoutes(r fiber.Router)
	ListImages(ctx *fiber.Ctx) error
	DeleteImage(ctx *fiber.Ctx) error
	ListVideos(ctx *fiber.Ctx) error
	DeleteVideo(ctx *fiber.Ctx) error
	ListAssets(ctx *fiber.Ctx) error
	CreateAsset(ctx *fiber.Ctx) error
	DeleteAsset(ctx *fiber.Ctx) error
}

type libraryController struct {
	libraryService service.ILibraryService
}

func NewLibraryController(libraryService service.ILibraryService) ILibraryController {
	return &libraryController{
		libraryService: libraryService,
	}
}

func (c *libraryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/images", c.ListImages)
	h.Delete("/images/:id", c.DeleteImage)
	h.Get("/videos", c.ListVideos)
	h.Delete("/videos/:id", c.DeleteVideo)
	h.Get("/assets", c.ListAssets)
	h.Post("/assets", c.CreateAsset)
	h.Delete("/assets/:id", c.DeleteAsset)
}

func (c *libraryController) ListImages(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var q dto.ListQuery
	if err := ctx.QueryParser(&q); err != nil {
		return serverutils.BadRequest("Invalid query parameters")
	}

	res, err := c.libraryService.ListImages(ctx.Context(), userId, &q)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list images", res))
}

func (c *libraryController) DeleteImage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("Invalid image id")
	}

	if err := c.libraryService.DeleteImage(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete image", nil))
}

func (c *libraryController) ListVideos(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var q dto.ListQuery
	if err := ctx.QueryParser(&q); err != nil {
		return serverutils.BadRequest("Invalid query parameters")
	}

	res, err := c.libraryService.ListVideos(ctx.Context(), userId, &q)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list videos", res))
}

func (c *libraryController) DeleteVideo(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("Invalid video id")
	}

	if err := c.libraryService.DeleteVideo(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete video", nil))
}

func (c *libraryController) ListAssets(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var q dto.ListQuery
	if err := ctx.QueryParser(&q); err != nil {
		return serverutils.BadRequest("Invalid query parameters")
	}

	res, err := c.libraryService.ListAssets(ctx.Context(), userId, &q)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list assets", res))
}

func (c *libraryController) CreateAsset(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateAssetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.libraryService.CreateAsset(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create asset", res))
}

func (c *libraryController) DeleteAsset(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.BadRequest("Invalid asset id")
	}

	if err := c.libraryService.DeleteAsset(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete asset", nil))
}
