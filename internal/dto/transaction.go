package dto

import (
	"time"

	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a ledger entry.
// TransactionID is optional; a UUID is generated when it is empty.
type CreateTransactionRequest struct {
	TransactionID string          `json:"transactionID" binding:"omitempty,max=64"`
	Date          time.Time       `json:"date" binding:"required"`
	Description   string          `json:"description" binding:"max=500"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,currency"`
	Type          string          `json:"type" binding:"required,transaction_type"`
}

// UpdateTransactionRequest defines the editable fields of a ledger entry.
// Nil fields are left unchanged.
type UpdateTransactionRequest struct {
	Date         *time.Time       `json:"date"`
	Description  *string          `json:"description" binding:"omitempty,max=500"`
	Amount       *decimal.Decimal `json:"amount"`
	CurrencyCode *string          `json:"currencyCode" binding:"omitempty,currency"`
	Type         *string          `json:"type" binding:"omitempty,transaction_type"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	TripID        string          `json:"tripID"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Type          string          `json:"type"`
	Bucket        string          `json:"bucket"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		TripID:        txn.TripID,
		Date:          txn.Date,
		Description:   txn.Description,
		Amount:        txn.Amount,
		CurrencyCode:  string(txn.CurrencyCode),
		Type:          string(txn.Type),
		Bucket:        string(txn.Bucket()),
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
		LastUpdatedAt: txn.LastUpdatedAt,
		LastUpdatedBy: txn.LastUpdatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsParams defines parameters for listing a trip's transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse holds one page of transactions, newest date first.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
