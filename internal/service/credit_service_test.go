package service

import (
	"context"
	"errors"
	"testing"

	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/pkg/pricing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newCreditFixture(balance int) (ICreditService, *fakeUow, uuid.UUID) {
	uow := newFakeUow()
	userId := uuid.New()
	uow.credits.balances[userId] = balance
	svc := NewCreditService(&fakeUowFactory{uow: uow}, pricing.NewTable(nil), noopLogger{})
	return svc, uow, userId
}

func TestChargeDebitsAndRecordsLedger(t *testing.T) {
	svc, uow, userId := newCreditFixture(100)

	charge, err := svc.Charge(context.Background(), userId, pricing.OpVideoGenerate, nil, map[string]interface{}{"model": "veo3"})
	assert.NoError(t, err)
	assert.Equal(t, 25, charge.Amount)
	assert.Equal(t, 75, charge.BalanceAfter)
	assert.Equal(t, 75, uow.credits.balances[userId])

	assert.Len(t, uow.credits.txs, 1)
	tx := uow.credits.txs[0]
	assert.Equal(t, entity.CreditTransactionDeduct, tx.TransactionType)
	assert.Equal(t, -25, tx.Amount)
	assert.Equal(t, 75, tx.BalanceAfter)
	assert.Equal(t, pricing.OpVideoGenerate, *tx.Operation)
}

func TestChargeInsufficientCredits(t *testing.T) {
	svc, uow, userId := newCreditFixture(10)

	_, err := svc.Charge(context.Background(), userId, pricing.OpVideoGenerate, nil, nil)
	assert.Error(t, err)

	var apiErr *serverutils.ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fiber.StatusPaymentRequired, apiErr.Status)
	assert.Equal(t, 25, apiErr.Details["required"])

	// Balance untouched, no ledger row.
	assert.Equal(t, 10, uow.credits.balances[userId])
	assert.Empty(t, uow.credits.txs)
}

func TestChargeUnknownOperation(t *testing.T) {
	svc, _, userId := newCreditFixture(100)

	_, err := svc.Charge(context.Background(), userId, "video.unknown", nil, nil)
	var apiErr *serverutils.ApiError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, fiber.StatusInternalServerError, apiErr.Status)
}

func TestRefundRestoresBalance(t *testing.T) {
	svc, uow, userId := newCreditFixture(100)

	charge, err := svc.Charge(context.Background(), userId, pricing.OpImageGenerate, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 95, uow.credits.balances[userId])

	assert.NoError(t, svc.Refund(context.Background(), charge, "image generation failed"))
	assert.Equal(t, 100, uow.credits.balances[userId])

	assert.Len(t, uow.credits.txs, 2)
	refund := uow.credits.txs[1]
	assert.Equal(t, entity.CreditTransactionRefund, refund.TransactionType)
	assert.Equal(t, 5, refund.Amount)
	assert.Equal(t, charge.TransactionId, *refund.RelatedId)
	assert.Equal(t, "image generation failed", *refund.Notes)
}

func TestRefundNilChargeIsNoop(t *testing.T) {
	svc, uow, _ := newCreditFixture(100)
	assert.NoError(t, svc.Refund(context.Background(), nil, "nothing charged"))
	assert.Empty(t, uow.credits.txs)
}

func TestGrantAddsCredits(t *testing.T) {
	svc, uow, userId := newCreditFixture(0)

	balance, err := svc.Grant(context.Background(), userId, 500, "Lemon Squeezy order_created (Creator Pack)", nil)
	assert.NoError(t, err)
	assert.Equal(t, 500, balance)

	assert.Len(t, uow.credits.txs, 1)
	assert.Equal(t, entity.CreditTransactionGrant, uow.credits.txs[0].TransactionType)
}

func TestGetBalanceIncludesHistory(t *testing.T) {
	svc, _, userId := newCreditFixture(50)

	_, err := svc.Charge(context.Background(), userId, pricing.OpScriptGenerate, nil, nil)
	assert.NoError(t, err)

	res, err := svc.GetBalance(context.Background(), userId)
	assert.NoError(t, err)
	assert.Equal(t, 49, res.Balance)
	assert.Len(t, res.Transactions, 1)
	assert.Equal(t, "deduct", res.Transactions[0].Type)
	assert.Equal(t, pricing.OpScriptGenerate, res.Transactions[0].Operation)
}
