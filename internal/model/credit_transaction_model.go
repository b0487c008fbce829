package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreditTransaction struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	TransactionType string         `gorm:"type:varchar(20);not null"` // deduct | grant | refund
	Amount          int            `gorm:"not null"`
	BalanceAfter    int            `gorm:"not null"`
	Operation       *string        `gorm:"type:text;index"`
	RelatedId       *uuid.UUID     `gorm:"type:uuid"`
	Notes           *string        `gorm:"type:text"`
	Metadata        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"default:now();not null"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
