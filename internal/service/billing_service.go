// FILE: internal/service/billing_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/pkg/mailer"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/repository/specification"
	"ai-videostudio-be/internal/repository/unitofwork"

	"ai-videostudio-be/pkg/billing/lemonsqueezy"
	"ai-videostudio-be/pkg/events"
	pktNats "ai-videostudio-be/pkg/nats" // Renamed to avoid collision

	"github.com/google/uuid"
)

type IBillingService interface {
	// HandleLemonSqueezyWebhook fulfils a signed store webhook. Duplicate
	// deliveries and unknown variants are acknowledged without granting.
	HandleLemonSqueezyWebhook(ctx context.Context, rawBody []byte, signature string) (*dto.WebhookAckResponse, error)
	GetPlans(ctx context.Context) ([]*dto.PlanResponse, error)
}

type billingService struct {
	uowFactory     unitofwork.RepositoryFactory
	credits        ICreditService
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	webhookSecret  string
}

func NewBillingService(
	uowFactory unitofwork.RepositoryFactory,
	credits ICreditService,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	webhookSecret string,
) IBillingService {
	return &billingService{
		uowFactory:     uowFactory,
		credits:        credits,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		webhookSecret:  webhookSecret,
	}
}

func (s *billingService) GetPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	plans := lemonsqueezy.Plans()
	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, &dto.PlanResponse{
			VariantId: p.VariantID,
			Name:      p.Name,
			Credits:   p.Credits,
		})
	}
	return res, nil
}

func (s *billingService) HandleLemonSqueezyWebhook(ctx context.Context, rawBody []byte, signature string) (*dto.WebhookAckResponse, error) {
	fmt.Printf("\n[WEBHOOK] ========== Processing Lemon Squeezy Delivery ==========\n")

	if s.webhookSecret == "" {
		fmt.Println("[WEBHOOK ERROR] LEMON_SQUEEZY_WEBHOOK_SECRET not configured")
		return nil, serverutils.Internal("Webhook secret not configured")
	}

	if !lemonsqueezy.VerifySignature(rawBody, signature, s.webhookSecret) {
		fmt.Println("[WEBHOOK ERROR] Signature mismatch, rejecting delivery")
		return nil, serverutils.Unauthorized("Invalid webhook signature")
	}

	evt, err := lemonsqueezy.ParseEvent(rawBody)
	if err != nil {
		fmt.Printf("[WEBHOOK ERROR] Unparseable payload: %v\n", err)
		return nil, serverutils.BadRequest("Invalid webhook payload")
	}

	fmt.Printf("[WEBHOOK] Event: %s | Object: %s/%s\n", evt.EventName(), evt.Data.Type, evt.Data.ID)

	switch evt.EventName() {
	case lemonsqueezy.EventOrderCreated, lemonsqueezy.EventSubscriptionPaymentSuccess:
	default:
		fmt.Printf("[WEBHOOK] Event %s carries no credits, acknowledging\n", evt.EventName())
		return &dto.WebhookAckResponse{Received: true}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	webhookRepo := uow.WebhookEventRepository()

	dedupeKey := evt.DedupeKey()
	if seen, err := webhookRepo.FindOne(ctx, specification.ByDedupeKey{Key: dedupeKey}); err != nil {
		return nil, err
	} else if seen != nil {
		fmt.Printf("[WEBHOOK] Duplicate delivery %s, already handled\n", dedupeKey)
		return &dto.WebhookAckResponse{Received: true}, nil
	}

	variantID := evt.VariantID()
	plan, planKnown := lemonsqueezy.PlanForVariant(variantID)
	if !planKnown {
		fmt.Printf("[WEBHOOK] Unknown variant %d, acknowledging without grant\n", variantID)
	}

	user, err := s.resolveUser(ctx, uow, evt)
	if err != nil {
		return nil, err
	}
	if user == nil {
		fmt.Printf("[WEBHOOK ERROR] No account matches delivery %s (custom user_id=%q, email=%q)\n",
			dedupeKey, evt.Meta.CustomData.UserID, evt.Data.Attributes.UserEmail)
	}

	record := &entity.WebhookEvent{
		Id:         uuid.New(),
		DedupeKey:  dedupeKey,
		EventName:  evt.EventName(),
		Credits:    plan.Credits,
		RawPayload: rawBody,
	}
	if user != nil {
		record.UserId = &user.Id
	}
	if variantID != 0 {
		record.VariantId = &variantID
	}
	if err := webhookRepo.Create(ctx, record); err != nil {
		// A concurrent delivery can win the unique index between our
		// lookup and this insert. Treat it as the duplicate it is.
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") ||
			strings.Contains(strings.ToLower(err.Error()), "unique") {
			fmt.Printf("[WEBHOOK] Duplicate delivery %s lost the race, already handled\n", dedupeKey)
			return &dto.WebhookAckResponse{Received: true}, nil
		}
		return nil, err
	}

	if !planKnown || user == nil {
		return &dto.WebhookAckResponse{Received: true}, nil
	}

	balance, err := s.credits.Grant(ctx, user.Id, plan.Credits,
		fmt.Sprintf("Lemon Squeezy %s (%s)", evt.EventName(), plan.Name),
		map[string]interface{}{
			"variant_id": plan.VariantID,
			"plan":       plan.Name,
			"order_id":   evt.Data.ID,
		})
	if err != nil {
		fmt.Printf("[WEBHOOK ERROR] Failed to grant %d credits to %s: %v\n", plan.Credits, user.Id, err)
		return nil, err
	}

	if err := webhookRepo.MarkProcessed(ctx, record.Id); err != nil {
		fmt.Printf("[WEBHOOK ERROR] Failed to mark %s processed: %v\n", dedupeKey, err)
	}

	fmt.Printf("[WEBHOOK] Granted %d credits (%s) to %s, balance now %d\n", plan.Credits, plan.Name, user.Id, balance)

	if s.emailService != nil {
		if err := s.emailService.SendCreditReceipt(user.Email, plan.Name, plan.Credits); err != nil {
			fmt.Printf("[WEBHOOK ERROR] Failed to send receipt to %s: %v\n", user.Email, err)
		}
	}

	if s.eventPublisher != nil {
		grantEvt := events.BaseEvent{
			Type: events.TypeCreditsGranted,
			Data: map[string]interface{}{
				"user_id":     user.Id,
				"plan":        plan.Name,
				"credits":     plan.Credits,
				"balance":     balance,
				"order_id":    evt.Data.ID,
				"occurred_at": time.Now(),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, grantEvt); err != nil {
			fmt.Printf("[WARN] Failed to publish CREDITS_GRANTED event: %v\n", err)
		}
	}

	return &dto.WebhookAckResponse{
		Received: true,
		Granted:  plan.Credits,
		Plan:     plan.Name,
	}, nil
}

// resolveUser prefers the user_id the frontend attached at checkout and
// falls back to the buyer's email.
func (s *billingService) resolveUser(ctx context.Context, uow unitofwork.UnitOfWork, evt *lemonsqueezy.Event) (*entity.User, error) {
	userRepo := uow.UserRepository()

	if raw := evt.Meta.CustomData.UserID; raw != "" {
		userID, err := uuid.Parse(raw)
		if err == nil {
			user, err := userRepo.FindOne(ctx, specification.ByID{ID: userID})
			if err != nil {
				return nil, err
			}
			if user != nil {
				return user, nil
			}
		} else {
			fmt.Printf("[WEBHOOK DEBUG] custom_data.user_id %q is not a UUID\n", raw)
		}
	}

	if email := evt.Data.Attributes.UserEmail; email != "" {
		return userRepo.FindOne(ctx, specification.ByEmail{Email: email})
	}

	return nil, nil
}
