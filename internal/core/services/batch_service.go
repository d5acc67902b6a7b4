package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portssvc "github.com/SscSPs/current_account_engine/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchWorkers bounds the number of transfers a batch runs at once.
const DefaultBatchWorkers = 8

type batchService struct {
	BaseService
	transfers   portssvc.TransactionSvcFacade
	workers     int
	itemTimeout time.Duration
}

// BatchServiceOption is a functional option for configuring the batch processor
type BatchServiceOption func(*batchService)

// WithBatchWorkers sets the pool size. Values below 1 are ignored.
func WithBatchWorkers(n int) BatchServiceOption {
	return func(s *batchService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithItemTimeout gives every transfer in a batch its own deadline. Zero disables it.
func WithItemTimeout(d time.Duration) BatchServiceOption {
	return func(s *batchService) {
		s.itemTimeout = d
	}
}

// NewBatchService creates a batch processor on top of the transaction engine.
func NewBatchService(transfers portssvc.TransactionSvcFacade, options ...BatchServiceOption) portssvc.BatchTransferSvc {
	svc := &batchService{
		transfers: transfers,
		workers:   DefaultBatchWorkers,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BatchTransferSvc = (*batchService)(nil)

func (s *batchService) BatchTransfer(ctx context.Context, requests []domain.TransferRequest) domain.BatchResult {
	result := domain.BatchResult{
		Succeeded: make([]domain.TransferRequest, 0, len(requests)),
		Failed:    make([]string, 0),
	}
	var mu sync.Mutex

	// A plain group: one failed transfer must not cancel its siblings.
	var g errgroup.Group
	g.SetLimit(s.workers)
	for _, req := range requests {
		g.Go(func() error {
			err := s.transfer(ctx, req)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, fmt.Sprintf("%s→%s: %s", req.OriginAccount, req.DestinationAccount, err.Error()))
				return nil
			}
			result.Succeeded = append(result.Succeeded, req)
			return nil
		})
	}
	_ = g.Wait()

	s.LogInfo(ctx, "Batch transfer finished",
		slog.Int("requested", len(requests)),
		slog.Int("succeeded", len(result.Succeeded)),
		slog.Int("failed", len(result.Failed)))
	return result
}

func (s *batchService) transfer(ctx context.Context, req domain.TransferRequest) error {
	if s.itemTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.itemTimeout)
		defer cancel()
	}
	_, err := s.transfers.Transfer(ctx, req.OriginAccount, req.DestinationAccount, req.Amount)
	return err
}
