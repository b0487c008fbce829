// FILE: internal/controller/oauth_controller.go
package controller

import (
	"fmt"
	"log"
	"os"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
	ExchangeGoogle(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
}

func NewOAuthController(service service.IOAuthService) IOAuthController {
	return &oauthController{service: service}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1/oauth")
	// SPA flow: frontend already holds the authorization code
	h.Post("/google", c.ExchangeGoogle)
	// Redirect flow
	h.Get("/:provider", c.Login)
	h.Get("/:provider/callback", c.Callback)
}

// ExchangeGoogle trades an authorization code for a session token.
func (c *oauthController) ExchangeGoogle(ctx *fiber.Ctx) error {
	var req dto.GoogleOAuthRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.HandleCallback(ctx.Context(), "google", req.Code)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")
	log.Printf("[OAuth] Login initiated for provider: %s", provider)

	url, err := c.service.GetLoginURL(provider)
	if err != nil {
		log.Printf("[OAuth] ERROR - Failed to get login URL: %v", err)
		return err
	}

	log.Printf("[OAuth] Redirecting user to: %s", url)
	// Redirect user to Google
	return ctx.Redirect(url)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")
	code := ctx.Query("code")

	log.Printf("[OAuth] Callback received for provider: %s", provider)

	if code == "" {
		log.Printf("[OAuth] ERROR - Missing authorization code")
		return serverutils.BadRequest("Missing code")
	}

	res, err := c.service.HandleCallback(ctx.Context(), provider, code)
	if err != nil {
		log.Printf("[OAuth] ERROR - HandleCallback failed: %v", err)
		return err
	}

	log.Printf("[OAuth] ✅ User authenticated successfully: %s", res.User.Email)

	// Redirect to Frontend with Token in URL
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173" // fallback default
		log.Printf("[OAuth] WARNING - FRONTEND_URL not set in .env, using default: %s", frontendURL)
	}

	redirectURL := fmt.Sprintf("%s/app?token=%s", frontendURL, res.AccessToken)
	log.Printf("[OAuth] Redirecting to Frontend: %s", frontendURL+"/app?token=***")

	return ctx.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}
