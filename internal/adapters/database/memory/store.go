// Package memory is a process-local store for accounts, transactions and audit entries.
// Writes made inside WithinTransaction are buffered and applied together on commit;
// with a WAL attached every commit is logged before it becomes visible.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/current_account_engine/internal/apperrors"
	"github.com/SscSPs/current_account_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
	"github.com/SscSPs/current_account_engine/pkg/wal"
)

type unitKey struct{}

// Store holds committed state. All access goes through the repositories.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]domain.Account
	transactions map[string][]domain.Transaction // by origin account, creation order
	txnIDs       map[string]struct{}
	audits       []domain.AuditEntry
	seq          uint64

	log *wal.WAL
}

// Option configures a Store.
type Option func(*Store)

// WithWAL makes every commit durable in log before it is applied.
func WithWAL(log *wal.WAL) Option {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates an empty store. When a WAL is attached its records are replayed first.
func NewStore(options ...Option) (*Store, error) {
	s := &Store{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string][]domain.Transaction),
		txnIDs:       make(map[string]struct{}),
	}
	for _, option := range options {
		option(s)
	}
	if s.log != nil {
		if err := s.log.Replay(s.replay); err != nil {
			return nil, fmt.Errorf("replay wal: %w", err)
		}
	}
	return s, nil
}

var _ portsrepo.TransactionManager = (*Store)(nil)

// WithinTransaction buffers the writes made by fn and commits them atomically when fn succeeds.
// A nested call joins the outer unit of work.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := unitFromCtx(ctx); ok {
		return fn(ctx)
	}
	u := newUnitOfWork(s)
	if err := fn(context.WithValue(ctx, unitKey{}, u)); err != nil {
		return err
	}
	return s.commit(ctx, u)
}

// write runs fn against the caller's unit of work, or against a fresh one committed immediately.
func (s *Store) write(ctx context.Context, fn func(u *unitOfWork) error) error {
	if u, ok := unitFromCtx(ctx); ok {
		return fn(u)
	}
	u := newUnitOfWork(s)
	if err := fn(u); err != nil {
		return err
	}
	return s.commit(ctx, u)
}

func unitFromCtx(ctx context.Context) (*unitOfWork, bool) {
	u, ok := ctx.Value(unitKey{}).(*unitOfWork)
	return u, ok
}

// commitRecord is one WAL line.
type commitRecord struct {
	Seq       uint64     `json:"seq"`
	Committed time.Time  `json:"committed"`
	Ops       []mutation `json:"ops"`
}

func (s *Store) commit(ctx context.Context, u *unitOfWork) error {
	if len(u.ops) == 0 {
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Nothing is applied once the caller has given up.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.check(u.ops); err != nil {
		return err
	}
	if s.log != nil {
		rec := commitRecord{Seq: s.seq + 1, Committed: time.Now().UTC(), Ops: u.ops}
		if err := s.log.Append(rec); err != nil {
			return apperrors.NewAppError(500, "failed to write commit record", err)
		}
	}
	s.seq++
	for _, op := range u.ops {
		s.apply(op)
	}
	return nil
}

// check rejects a commit whose creates collide with state committed since the unit began.
func (s *Store) check(ops []mutation) error {
	deleted := make(map[string]bool)
	for _, op := range ops {
		switch op.Op {
		case opCreateAccount:
			if _, exists := s.accounts[op.Account.Number]; exists && !deleted[op.Account.Number] {
				return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, op.Account.Number)
			}
		case opDeleteAccount:
			deleted[op.Number] = true
		case opAppendTransaction:
			if _, exists := s.txnIDs[op.Transaction.TransactionID]; exists {
				return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, op.Transaction.TransactionID)
			}
		}
	}
	return nil
}

func (s *Store) apply(op mutation) {
	switch op.Op {
	case opCreateAccount, opPutAccount:
		acc := *op.Account
		acc.Transactions = nil
		s.accounts[acc.Number] = acc
	case opDeleteAccount:
		delete(s.accounts, op.Number)
	case opAppendTransaction:
		txn := *op.Transaction
		s.transactions[txn.OriginAccount] = append(s.transactions[txn.OriginAccount], txn)
		s.txnIDs[txn.TransactionID] = struct{}{}
	case opDeleteTransactions:
		for _, txn := range s.transactions[op.Number] {
			delete(s.txnIDs, txn.TransactionID)
		}
		delete(s.transactions, op.Number)
	case opAppendAudit:
		s.audits = append(s.audits, *op.Audit)
	case opDeleteAudit:
		s.audits = slices.DeleteFunc(s.audits, func(e domain.AuditEntry) bool {
			return e.AccountNumber == op.Number
		})
	case opClearAudit:
		s.audits = nil
	}
}

func (s *Store) replay(raw json.RawMessage) error {
	var rec commitRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return err
	}
	for _, op := range rec.Ops {
		if err := op.validate(); err != nil {
			return fmt.Errorf("commit %d: %w", rec.Seq, err)
		}
		s.apply(op)
	}
	s.seq = rec.Seq
	return nil
}

func (s *Store) account(number string) (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[number]
	return acc, ok
}

func (s *Store) transactionsByOrigin(number string) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transactions[number])
}

func (s *Store) auditEntries() []domain.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.audits)
}
