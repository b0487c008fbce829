package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/pkg/billing/lemonsqueezy"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const webhookSecret = "whsec_test"

func orderCreatedBody(userID uuid.UUID, email string, variantID int, orderID string) []byte {
	return []byte(fmt.Sprintf(`{
		"meta": {"event_name": "order_created", "custom_data": {"user_id": "%s"}},
		"data": {
			"id": "%s",
			"type": "orders",
			"attributes": {
				"user_email": "%s",
				"status": "paid",
				"first_order_item": {"variant_id": %d, "variant_name": "pack"}
			}
		}
	}`, userID, orderID, email, variantID))
}

func newBillingFixture() (IBillingService, *fakeUow, *fakeMailer, uuid.UUID) {
	uow := newFakeUow()
	userId := uuid.New()
	uow.users.add(&entity.User{Id: userId, Email: "buyer@example.com", Status: entity.UserStatusActive})

	mail := &fakeMailer{}
	credits := NewCreditService(&fakeUowFactory{uow: uow}, nil, noopLogger{})

	svc := NewBillingService(&fakeUowFactory{uow: uow}, credits, mail, nil, webhookSecret)
	return svc, uow, mail, userId
}

func TestWebhookGrantsCredits(t *testing.T) {
	svc, uow, mail, userId := newBillingFixture()

	body := orderCreatedBody(userId, "buyer@example.com", 601002, "ord-1")
	sig := lemonsqueezy.Sign(body, webhookSecret)

	res, err := svc.HandleLemonSqueezyWebhook(context.Background(), body, sig)
	assert.NoError(t, err)
	assert.True(t, res.Received)
	assert.Equal(t, 500, res.Granted)
	assert.Equal(t, "Creator Pack", res.Plan)

	assert.Equal(t, 500, uow.credits.balances[userId])

	// Delivery recorded and marked processed.
	event := uow.webhooks.events["order_created:orders:ord-1"]
	assert.NotNil(t, event)
	assert.True(t, event.Processed)
	assert.Equal(t, userId, *event.UserId)

	assert.Equal(t, []string{"buyer@example.com:Creator Pack:500"}, mail.receipts)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	svc, uow, _, userId := newBillingFixture()

	body := orderCreatedBody(userId, "buyer@example.com", 601002, "ord-1")

	_, err := svc.HandleLemonSqueezyWebhook(context.Background(), body, "deadbeef")
	var apiErr *serverutils.ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fiber.StatusUnauthorized, apiErr.Status)

	assert.Equal(t, 0, uow.credits.balances[userId])
	assert.Empty(t, uow.webhooks.events)
}

func TestWebhookMissingSecret(t *testing.T) {
	uow := newFakeUow()
	svc := NewBillingService(&fakeUowFactory{uow: uow},
		NewCreditService(&fakeUowFactory{uow: uow}, nil, noopLogger{}), nil, nil, "")

	_, err := svc.HandleLemonSqueezyWebhook(context.Background(), []byte(`{}`), "sig")
	var apiErr *serverutils.ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fiber.StatusInternalServerError, apiErr.Status)
}

func TestWebhookRejectsBadPayload(t *testing.T) {
	svc, _, _, _ := newBillingFixture()

	body := []byte(`{not json`)
	sig := lemonsqueezy.Sign(body, webhookSecret)

	_, err := svc.HandleLemonSqueezyWebhook(context.Background(), body, sig)
	var apiErr *serverutils.ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fiber.StatusBadRequest, apiErr.Status)
}

func TestWebhookDuplicateDeliveryGrantsOnce(t *testing.T) {
	svc, uow, mail, userId := newBillingFixture()

	body := orderCreatedBody(userId, "buyer@example.com", 601002, "ord-1")
	sig := lemonsqueezy.Sign(body, webhookSecret)

	first, err := svc.HandleLemonSqueezyWebhook(context.Background(), body, sig)
	assert.NoError(t, err)
	assert.Equal(t, 500, first.Granted)

	second, err := svc.HandleLemonSqueezyWebhook(context.Background(), body, sig)
	assert.NoError(t, err)
	assert.True(t, second.Received)
	assert.Zero(t, second.Granted)

	assert.Equal(t, 500, uow.credits.balances[userId])
	assert.Len(t, mail.receipts, 1)
}

func TestWebhookUnknownVariantAcknowledged(t *testing.T) {
	svc, uow, _, userId := newBillingFixture()

	body := orderCreatedBody(userId, "buyer@example.com", 999999, "ord-2")
	sig := lemonsqueezy.Sign(body, webhookSecret)

	res, err := svc.HandleLemonSqueezyWebhook(context.Background(), body, sig)
	assert.NoError(t, err)
	assert.True(t, res.Received)
	assert.Zero(t, res.Granted)

	assert.Equal(t, 0, uow.credits.balances[userId])
	// Still recorded for audit and dedupe.
	assert.NotNil(t, uow.webhooks.events["order_created:orders:ord-2"])
}

func TestWebhookUnknownUserAcknowledged(t *testing.T) {
	svc, uow, _, _ := newBillingFixture()

	body := orderCreatedBody(uuid.New(), "stranger@example.com", 601001, "ord-3")
	sig := lemonsqueezy.Sign(body, webhookSecret)

	res, err := svc.HandleLemonSqueezyWebhook(context.Background(), body, sig)
	assert.NoError(t, err)
	assert.True(t, res.Received)
	assert.Zero(t, res.Granted)
	assert.NotNil(t, uow.webhooks.events["order_created:orders:ord-3"])
}

func TestWebhookResolvesUserByEmail(t *testing.T) {
	svc, uow, _, userId := newBillingFixture()

	// custom_data carries garbage; the buyer email still matches.
	body := []byte(fmt.Sprintf(`{
		"meta": {"event_name": "order_created", "custom_data": {"user_id": "not-a-uuid"}},
		"data": {
			"id": "ord-4",
			"type": "orders",
			"attributes": {
				"user_email": "buyer@example.com",
				"first_order_item": {"variant_id": 601001}
			}
		}
	}`))
	sig := lemonsqueezy.Sign(body, webhookSecret)

	res, err := svc.HandleLemonSqueezyWebhook(context.Background(), body, sig)
	assert.NoError(t, err)
	assert.Equal(t, 100, res.Granted)
	assert.Equal(t, 100, uow.credits.balances[userId])
}

func TestWebhookIrrelevantEventAcknowledged(t *testing.T) {
	svc, uow, _, _ := newBillingFixture()

	body := []byte(`{"meta":{"event_name":"subscription_cancelled"},"data":{"id":"x","type":"subscriptions","attributes":{}}}`)
	sig := lemonsqueezy.Sign(body, webhookSecret)

	res, err := svc.HandleLemonSqueezyWebhook(context.Background(), body, sig)
	assert.NoError(t, err)
	assert.True(t, res.Received)
	assert.Empty(t, uow.webhooks.events)
}

func TestGetPlans(t *testing.T) {
	svc, _, _, _ := newBillingFixture()

	plans, err := svc.GetPlans(context.Background())
	assert.NoError(t, err)
	assert.Len(t, plans, 5)
	assert.Equal(t, 601001, plans[0].VariantId)
	assert.Equal(t, "Starter Pack", plans[0].Name)
}
