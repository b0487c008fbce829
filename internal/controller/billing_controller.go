// FILE: internal/controller/billing_controller.go
package controller

import (
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/service"

	"ai-videostudio-be/pkg/billing/lemonsqueezy"

	"github.com/gofiber/fiber/v2"
)

type IBillingController interface {
	RegisterRoutes(r fiber.Router)
	HandleWebhook(ctx *fiber.Ctx) error
	GetPlans(ctx *fiber.Ctx) error
}

type billingController struct {
	billingService service.IBillingService
}

func NewBillingController(billingService service.IBillingService) IBillingController {
	return &billingController{
		billingService: billingService,
	}
}

func (c *billingController) RegisterRoutes(r fiber.Router) {
	// The webhook is authenticated by signature, not by bearer token.
	r.Post("/webhooks/lemon-squeezy", c.HandleWebhook)
	r.Get("/billing/plans", c.GetPlans)
}

func (c *billingController) HandleWebhook(ctx *fiber.Ctx) error {
	// The signature covers the exact raw bytes; never re-serialize.
	rawBody := ctx.Body()
	signature := ctx.Get(lemonsqueezy.SignatureHeader)

	res, err := c.billingService.HandleLemonSqueezyWebhook(ctx.Context(), rawBody, signature)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *billingController) GetPlans(ctx *fiber.Ctx) error {
	res, err := c.billingService.GetPlans(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list plans", res))
}
