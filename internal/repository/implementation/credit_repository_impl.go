package implementation

import (
	"context"
	"errors"

	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/mapper"
	"ai-videostudio-be/internal/model"
	"ai-videostudio-be/internal/repository/contract"
	"ai-videostudio-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CreditMapper
}

func NewCreditRepository(db *gorm.DB) contract.CreditRepository {
	return &CreditRepositoryImpl{
		db:     db,
		mapper: mapper.NewCreditMapper(),
	}
}

// DebitBalance relies on a single conditional UPDATE so two concurrent
// requests can never both succeed on the last credits.
func (r *CreditRepositoryImpl) DebitBalance(ctx context.Context, userID uuid.UUID, amount int) (int, bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND credit_balance >= ?", userID, amount).
		UpdateColumn("credit_balance", gorm.Expr("credit_balance - ?", amount))
	if result.Error != nil {
		return 0, false, result.Error
	}
	if result.RowsAffected == 0 {
		balance, err := r.GetBalance(ctx, userID)
		return balance, false, err
	}
	balance, err := r.GetBalance(ctx, userID)
	return balance, true, err
}

func (r *CreditRepositoryImpl) GrantBalance(ctx context.Context, userID uuid.UUID, amount int) (int, error) {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("credit_balance", gorm.Expr("credit_balance + ?", amount))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, errors.New("user not found")
	}
	return r.GetBalance(ctx, userID)
}

func (r *CreditRepositoryImpl) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	var balance int
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("credit_balance").
		Where("id = ?", userID).
		Scan(&balance).Error
	return balance, err
}

func (r *CreditRepositoryImpl) CreateTransaction(ctx context.Context, tx *entity.CreditTransaction) error {
	m := r.mapper.ToModel(tx)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tx = *r.mapper.ToEntity(m)
	return nil
}

func (r *CreditRepositoryImpl) FindTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	var ms []*model.CreditTransaction
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(ms), nil
}
