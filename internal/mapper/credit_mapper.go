package mapper

import (
	"ai-videostudio-be/internal/entity"
	"ai-videostudio-be/internal/model"
)

type CreditMapper struct{}

func NewCreditMapper() *CreditMapper {
	return &CreditMapper{}
}

func (m *CreditMapper) ToEntity(t *model.CreditTransaction) *entity.CreditTransaction {
	if t == nil {
		return nil
	}
	return &entity.CreditTransaction{
		Id:              t.Id,
		UserId:          t.UserId,
		TransactionType: entity.CreditTransactionType(t.TransactionType),
		Amount:          t.Amount,
		BalanceAfter:    t.BalanceAfter,
		Operation:       t.Operation,
		RelatedId:       t.RelatedId,
		Notes:           t.Notes,
		Metadata:        jsonToMap(t.Metadata),
		CreatedAt:       t.CreatedAt,
	}
}

func (m *CreditMapper) ToModel(t *entity.CreditTransaction) *model.CreditTransaction {
	if t == nil {
		return nil
	}
	return &model.CreditTransaction{
		Id:              t.Id,
		UserId:          t.UserId,
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		BalanceAfter:    t.BalanceAfter,
		Operation:       t.Operation,
		RelatedId:       t.RelatedId,
		Notes:           t.Notes,
		Metadata:        mapToJSON(t.Metadata),
		CreatedAt:       t.CreatedAt,
	}
}

func (m *CreditMapper) ToEntities(ts []*model.CreditTransaction) []*entity.CreditTransaction {
	entities := make([]*entity.CreditTransaction, len(ts))
	for i, t := range ts {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
