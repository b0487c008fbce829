// FILE: internal/entity/credit_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type CreditTransactionType string

const (
	CreditTransactionDeduct CreditTransactionType = "deduct"
	CreditTransactionGrant  CreditTransactionType = "grant"
	CreditTransactionRefund CreditTransactionType = "refund"
)

type CreditTransaction struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	TransactionType CreditTransactionType
	Amount          int
	BalanceAfter    int
	Operation       *string
	RelatedId       *uuid.UUID
	Notes           *string
	Metadata        map[string]interface{}
	CreatedAt       time.Time
}

// Charge is the outcome of a successful debit. It carries everything needed
// to reverse the debit when downstream work fails.
type Charge struct {
	TransactionId uuid.UUID
	UserId        uuid.UUID
	Operation     string
	Amount        int
	BalanceAfter  int
}
