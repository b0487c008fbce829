// FILE: internal/dto/credit_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreditBalanceResponse struct {
	Balance      int                         `json:"balance"`
	Transactions []CreditTransactionResponse `json:"transactions"`
}

type CreditTransactionResponse struct {
	Id           uuid.UUID `json:"id"`
	Type         string    `json:"type"`
	Amount       int       `json:"amount"`
	BalanceAfter int       `json:"balance_after"`
	Operation    string    `json:"operation,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
