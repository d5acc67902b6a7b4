package dto

import (
	"time"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest is the body of a deposit.
type DepositRequest struct {
	AccountNumber string           `json:"accountNumber" binding:"required"`
	Amount        *decimal.Decimal `json:"amount" binding:"required,dpositive"`
}

// WithdrawalRequest is the body of a withdrawal.
type WithdrawalRequest struct {
	AccountNumber string           `json:"accountNumber" binding:"required"`
	Amount        *decimal.Decimal `json:"amount" binding:"required,dpositive"`
}

// TransferRequest is the body of a single transfer and one item of a batch.
type TransferRequest struct {
	OriginAccount      string           `json:"originAccount" binding:"required"`
	DestinationAccount string           `json:"destinationAccount" binding:"required"`
	Amount             *decimal.Decimal `json:"amount" binding:"required,dpositive"`
}

// BatchTransferRequest wraps the items of a batch transfer.
// Items are not validated individually (no dive); a bad item is reported as a failure.
type BatchTransferRequest struct {
	Transfers []TransferRequest `json:"transfers" binding:"required"`
}

// ToDomainTransfer converts a TransferRequest DTO; a missing amount becomes zero.
func (r TransferRequest) ToDomainTransfer() domain.TransferRequest {
	amount := decimal.Zero
	if r.Amount != nil {
		amount = *r.Amount
	}
	return domain.TransferRequest{
		OriginAccount:      r.OriginAccount,
		DestinationAccount: r.DestinationAccount,
		Amount:             amount,
	}
}

// ToDomainTransfers converts every item of the batch.
func (r BatchTransferRequest) ToDomainTransfers() []domain.TransferRequest {
	out := make([]domain.TransferRequest, len(r.Transfers))
	for i, t := range r.Transfers {
		out[i] = t.ToDomainTransfer()
	}
	return out
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID      string                 `json:"transactionID"`
	Kind               domain.TransactionKind `json:"kind"`
	Amount             decimal.Decimal        `json:"amount"`
	Date               time.Time              `json:"date"`
	Description        string                 `json:"description"`
	OriginAccount      string                 `json:"originAccount"`
	DestinationAccount string                 `json:"destinationAccount,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      txn.TransactionID,
		Kind:               txn.Kind,
		Amount:             txn.Amount,
		Date:               txn.Date,
		Description:        txn.Description,
		OriginAccount:      txn.OriginAccount,
		DestinationAccount: txn.DestinationAccount,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction, never returning nil.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// BatchTransferResponse reports which items succeeded and why the others failed.
type BatchTransferResponse struct {
	Succeeded []domain.TransferRequest `json:"succeeded"`
	Failed    []string                 `json:"failed"`
}

// ToBatchTransferResponse normalizes nil slices to empty ones for JSON.
func ToBatchTransferResponse(result domain.BatchResult) BatchTransferResponse {
	res := BatchTransferResponse{Succeeded: result.Succeeded, Failed: result.Failed}
	if res.Succeeded == nil {
		res.Succeeded = []domain.TransferRequest{}
	}
	if res.Failed == nil {
		res.Failed = []string{}
	}
	return res
}
