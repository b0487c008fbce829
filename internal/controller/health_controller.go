// FILE: internal/controller/health_controller.go
package controller

import (
	"ai-videostudio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	StorageHealth(ctx *fiber.Ctx) error
}

type healthController struct {
	healthService service.IHealthService
}

func NewHealthController(healthService service.IHealthService) IHealthController {
	return &healthController{
		healthService: healthService,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health")
	h.Get("/storage", c.StorageHealth)
}

func (c *healthController) StorageHealth(ctx *fiber.Ctx) error {
	report := c.healthService.StorageHealth(ctx.Context())

	status := fiber.StatusOK
	if !report.Healthy {
		status = fiber.StatusServiceUnavailable
	}
	return ctx.Status(status).JSON(report)
}
