// FILE: internal/service/credit_service.go
package service

import (
	"context"
	"fmt"

	"ai-videostudio-be/internal/dto"
	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/pkg/logger"
	"ai-videostudio-be/internal/pkg/serverutils"
	"ai-videostudio-be/internal/repository/specification"
	"ai-videostudio-be/internal/repository/unitofwork"
	"ai-videostudio-be/pkg/pricing"

	"github.com/google/uuid"
)

type ICreditService interface {
	// Charge debits the configured price for opKey. Insufficient balance
	// returns a 402 ApiError carrying the required amount; the balance is
	// never touched in that case.
	Charge(ctx context.Context, userId uuid.UUID, opKey string, relatedId *uuid.UUID, meta map[string]interface{}) (*entity.Charge, error)
	// Refund compensates a previous charge after a downstream failure.
	Refund(ctx context.Context, charge *entity.Charge, reason string) error
	Grant(ctx context.Context, userId uuid.UUID, amount int, notes string, meta map[string]interface{}) (int, error)
	GetBalance(ctx context.Context, userId uuid.UUID) (*dto.CreditBalanceResponse, error)
}

type creditService struct {
	uowFactory unitofwork.RepositoryFactory
	prices     *pricing.Table
	logger     logger.ILogger
}

func NewCreditService(uowFactory unitofwork.RepositoryFactory, prices *pricing.Table, log logger.ILogger) ICreditService {
	return &creditService{
		uowFactory: uowFactory,
		prices:     prices,
		logger:     log,
	}
}

func (s *creditService) Charge(ctx context.Context, userId uuid.UUID, opKey string, relatedId *uuid.UUID, meta map[string]interface{}) (*entity.Charge, error) {
	price, err := s.prices.Price(opKey)
	if err != nil {
		return nil, serverutils.Internal(fmt.Sprintf("no price configured for operation %s", opKey))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CreditRepository()

	balance, ok, err := repo.DebitBalance(ctx, userId, price)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, serverutils.PaymentRequired("Insufficient credits", price)
	}

	charge := &entity.Charge{
		TransactionId: uuid.New(),
		UserId:        userId,
		Operation:     opKey,
		Amount:        price,
		BalanceAfter:  balance,
	}

	// Ledger insert failure must not undo the debit; the charge stands.
	tx := &entity.CreditTransaction{
		Id:              charge.TransactionId,
		UserId:          userId,
		TransactionType: entity.CreditTransactionDeduct,
		Amount:          -price,
		BalanceAfter:    balance,
		Operation:       &charge.Operation,
		RelatedId:       relatedId,
		Metadata:        meta,
	}
	if err := repo.CreateTransaction(ctx, tx); err != nil {
		s.logger.Warn("CreditService", "Failed to record deduct ledger row", map[string]interface{}{
			"user_id":   userId,
			"operation": opKey,
			"error":     err.Error(),
		})
	}

	return charge, nil
}

func (s *creditService) Refund(ctx context.Context, charge *entity.Charge, reason string) error {
	if charge == nil {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CreditRepository()

	balance, err := repo.GrantBalance(ctx, charge.UserId, charge.Amount)
	if err != nil {
		s.logger.Error("CreditService", "Refund failed, balance not restored", map[string]interface{}{
			"user_id":        charge.UserId,
			"transaction_id": charge.TransactionId,
			"amount":         charge.Amount,
			"error":          err.Error(),
		})
		return err
	}

	tx := &entity.CreditTransaction{
		Id:              uuid.New(),
		UserId:          charge.UserId,
		TransactionType: entity.CreditTransactionRefund,
		Amount:          charge.Amount,
		BalanceAfter:    balance,
		Operation:       &charge.Operation,
		RelatedId:       &charge.TransactionId,
		Notes:           &reason,
	}
	if err := repo.CreateTransaction(ctx, tx); err != nil {
		s.logger.Warn("CreditService", "Failed to record refund ledger row", map[string]interface{}{
			"user_id": charge.UserId,
			"error":   err.Error(),
		})
	}

	return nil
}

func (s *creditService) Grant(ctx context.Context, userId uuid.UUID, amount int, notes string, meta map[string]interface{}) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CreditRepository()

	balance, err := repo.GrantBalance(ctx, userId, amount)
	if err != nil {
		return 0, err
	}

	tx := &entity.CreditTransaction{
		Id:              uuid.New(),
		UserId:          userId,
		TransactionType: entity.CreditTransactionGrant,
		Amount:          amount,
		BalanceAfter:    balance,
		Notes:           &notes,
		Metadata:        meta,
	}
	if err := repo.CreateTransaction(ctx, tx); err != nil {
		s.logger.Warn("CreditService", "Failed to record grant ledger row", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}

	return balance, nil
}

func (s *creditService) GetBalance(ctx context.Context, userId uuid.UUID) (*dto.CreditBalanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CreditRepository()

	balance, err := repo.GetBalance(ctx, userId)
	if err != nil {
		return nil, err
	}

	txs, err := repo.FindTransactions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.CreditBalanceResponse{
		Balance:      balance,
		Transactions: make([]dto.CreditTransactionResponse, 0, len(txs)),
	}
	for _, tx := range txs {
		item := dto.CreditTransactionResponse{
			Id:           tx.Id,
			Type:         string(tx.TransactionType),
			Amount:       tx.Amount,
			BalanceAfter: tx.BalanceAfter,
			CreatedAt:    tx.CreatedAt,
		}
		if tx.Operation != nil {
			item.Operation = *tx.Operation
		}
		if tx.Notes != nil {
			item.Notes = *tx.Notes
		}
		res.Transactions = append(res.Transactions, item)
	}

	return res, nil
}
