package contract

import (
	"context"

	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CreditRepository interface {
	// DebitBalance performs a conditional atomic debit. It returns the new
	// balance and true when the user had at least amount credits; false with
	// the balance untouched otherwise.
	DebitBalance(ctx context.Context, userID uuid.UUID, amount int) (int, bool, error)
	// GrantBalance unconditionally adds amount credits and returns the new balance.
	GrantBalance(ctx context.Context, userID uuid.UUID, amount int) (int, error)
	GetBalance(ctx context.Context, userID uuid.UUID) (int, error)

	CreateTransaction(ctx context.Context, tx *entity.CreditTransaction) error
	FindTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error)
}
