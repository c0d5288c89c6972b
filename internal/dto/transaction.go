package dto

import (
	"time"

	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
)

// TransactionResponse is one entry of the append-only trade log.
type TransactionResponse struct {
	TransactionID string    `json:"transactionID"`
	Kind          string    `json:"kind"`
	Asset         string    `json:"asset"`
	Quantity      string    `json:"quantity"`
	UnitPrice     string    `json:"unitPrice"`
	Total         string    `json:"total"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListTransactionsParams defines query parameters for paging the trade log.
type ListTransactionsParams struct {
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListTransactionsResponse wraps one newest-first page of the trade log.
// NextToken is empty on the last page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Kind:          string(txn.Kind),
		Asset:         txn.Asset,
		Quantity:      txn.Quantity.String(),
		UnitPrice:     txn.UnitPrice.String(),
		Total:         txn.Total.String(),
		CreatedAt:     txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
