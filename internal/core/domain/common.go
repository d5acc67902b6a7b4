package domain

import "github.com/shopspring/decimal"

// FeeSchedule holds the surcharge rates applied to debits. Fees are retained by the system.
type FeeSchedule struct {
	WithdrawalRate     decimal.Decimal
	TransferRate       decimal.Decimal
	CreditTransferRate decimal.Decimal // Used when the origin has available credit
}

// DefaultFeeSchedule returns the standard 1% / 1% / 2% schedule.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		WithdrawalRate:     decimal.RequireFromString("0.01"),
		TransferRate:       decimal.RequireFromString("0.01"),
		CreditTransferRate: decimal.RequireFromString("0.02"),
	}
}

// TransferRequest is one item of a transfer or batch transfer.
type TransferRequest struct {
	OriginAccount      string          `json:"originAccount"`
	DestinationAccount string          `json:"destinationAccount"`
	Amount             decimal.Decimal `json:"amount"`
}

// BatchResult aggregates the outcome of a batch transfer.
type BatchResult struct {
	Succeeded []TransferRequest `json:"succeeded"`
	Failed    []string          `json:"failed"`
}
