package services

import (
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/current_account_engine/internal/core/ports/services"
	"github.com/SscSPs/current_account_engine/internal/platform/config"
)

// NewServiceContainer wires every service against repos using the settings in cfg.
// The account service and the transaction engine share one locker.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	locker := NewAccountLocker()

	accountSvc := NewAccountService(repos,
		WithDefaultCreditCeiling(cfg.DefaultCreditCeiling),
		WithAccountLocker(locker))
	auditSvc := NewAuditService(repos.AuditRepo)
	txnSvc := NewTransactionService(repos, accountSvc, auditSvc,
		WithFeeSchedule(domain.FeeSchedule{
			WithdrawalRate:     cfg.WithdrawalFeeRate,
			TransferRate:       cfg.TransferFeeRate,
			CreditTransferRate: cfg.CreditTransferFeeRate,
		}),
		WithTransactionLocker(locker))
	batchSvc := NewBatchService(txnSvc,
		WithBatchWorkers(cfg.BatchWorkers),
		WithItemTimeout(cfg.OperationTimeout))

	return &portssvc.ServiceContainer{
		Account:     accountSvc,
		Transaction: txnSvc,
		Batch:       batchSvc,
		Audit:       auditSvc,
	}
}
