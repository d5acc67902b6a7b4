package services_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/current_account_engine/internal/apperrors"
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	"github.com/SscSPs/current_account_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBatchTransfer_PartialFailure(t *testing.T) {
	engine := new(MockTransactionService)
	engine.On("Transfer", mock.Anything, "A", "B", decimal.NewFromInt(10)).
		Return(&domain.Transaction{TransactionID: "t1"}, nil).Once()
	engine.On("Transfer", mock.Anything, "C", "D", decimal.NewFromInt(10)).
		Return(nil, fmt.Errorf("origin account C: %w", apperrors.ErrNotFound)).Once()

	batch := services.NewBatchService(engine)
	result := batch.BatchTransfer(context.Background(), []domain.TransferRequest{
		{OriginAccount: "A", DestinationAccount: "B", Amount: decimal.NewFromInt(10)},
		{OriginAccount: "C", DestinationAccount: "D", Amount: decimal.NewFromInt(10)},
	})

	require.Len(t, result.Succeeded, 1)
	assert.Equal(t, "A", result.Succeeded[0].OriginAccount)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "C→D: origin account C: resource not found", result.Failed[0])
	engine.AssertExpectations(t)
}

func TestBatchTransfer_Empty(t *testing.T) {
	batch := services.NewBatchService(new(MockTransactionService))
	result := batch.BatchTransfer(context.Background(), nil)

	assert.NotNil(t, result.Succeeded)
	assert.NotNil(t, result.Failed)
	assert.Empty(t, result.Succeeded)
	assert.Empty(t, result.Failed)
}

// blockingEngine records peak concurrency and optionally waits for ctx.
type blockingEngine struct {
	MockTransactionService
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (e *blockingEngine) Transfer(ctx context.Context, origin, destination string, amount decimal.Decimal) (*domain.Transaction, error) {
	n := e.inFlight.Add(1)
	defer e.inFlight.Add(-1)
	for {
		p := e.peak.Load()
		if n <= p || e.peak.CompareAndSwap(p, n) {
			break
		}
	}
	select {
	case <-time.After(e.delay):
		return &domain.Transaction{}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestBatchTransfer_BoundedWorkers(t *testing.T) {
	engine := &blockingEngine{delay: 5 * time.Millisecond}
	batch := services.NewBatchService(engine, services.WithBatchWorkers(3))

	requests := make([]domain.TransferRequest, 20)
	for i := range requests {
		requests[i] = domain.TransferRequest{OriginAccount: fmt.Sprintf("o%d", i), DestinationAccount: "d", Amount: decimal.NewFromInt(1)}
	}
	result := batch.BatchTransfer(context.Background(), requests)

	assert.Len(t, result.Succeeded, 20)
	assert.Empty(t, result.Failed)
	assert.LessOrEqual(t, engine.peak.Load(), int32(3))
}

func TestBatchTransfer_ItemTimeout(t *testing.T) {
	engine := &blockingEngine{delay: time.Second}
	batch := services.NewBatchService(engine, services.WithItemTimeout(10*time.Millisecond))

	result := batch.BatchTransfer(context.Background(), []domain.TransferRequest{
		{OriginAccount: "A", DestinationAccount: "B", Amount: decimal.NewFromInt(1)},
	})

	assert.Empty(t, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "A→B: "+context.DeadlineExceeded.Error(), result.Failed[0])
}
