package accounting

import (
	"github.com/SscSPs/current_account_engine/internal/apperrors"
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositSplit is how a deposit is allocated between restoring credit and topping up the balance.
type DepositSplit struct {
	ToCredit  decimal.Decimal
	ToBalance decimal.Decimal
}

// SplitDeposit allocates amount to drawn credit first, then to the balance.
// When nothing is drawn (headroom <= 0) the whole amount goes to the balance.
func SplitDeposit(acc domain.Account, amount decimal.Decimal) DepositSplit {
	headroom := acc.CreditHeadroom()
	if !headroom.IsPositive() {
		return DepositSplit{ToCredit: decimal.Zero, ToBalance: amount}
	}
	toCredit := decimal.Min(amount, headroom)
	return DepositSplit{ToCredit: toCredit, ToBalance: amount.Sub(toCredit)}
}

// Fee returns amount * rate, unrounded.
func Fee(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate)
}

// TransferFeeRate picks the transfer rate for origin.
// Positive available credit selects the credit rate; this mirrors the established policy even
// though CreditLimit measures unused credit rather than credit drawn.
func TransferFeeRate(origin domain.Account, fees domain.FeeSchedule) decimal.Decimal {
	if origin.CreditLimit.IsPositive() {
		return fees.CreditTransferRate
	}
	return fees.TransferRate
}

// Debit takes total from the balance first and the remainder from available credit.
// It returns apperrors.ErrInsufficientFunds when balance plus credit cannot cover total,
// in which case the returned values are the account's current ones.
func Debit(acc domain.Account, total decimal.Decimal) (balance decimal.Decimal, credit decimal.Decimal, err error) {
	if acc.AvailableFunds().LessThan(total) {
		return acc.Balance, acc.CreditLimit, apperrors.ErrInsufficientFunds
	}
	if acc.Balance.GreaterThanOrEqual(total) {
		return acc.Balance.Sub(total), acc.CreditLimit, nil
	}
	shortfall := total.Sub(acc.Balance)
	return decimal.Zero, acc.CreditLimit.Sub(shortfall), nil
}

// FormatAmount renders an amount with two decimal places, as shown in descriptions.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
