package memory

import (
	"errors"
	"slices"

	"github.com/SscSPs/current_account_engine/internal/core/domain"
)

type opKind string

const (
	opCreateAccount      opKind = "create_account"
	opPutAccount         opKind = "put_account"
	opDeleteAccount      opKind = "delete_account"
	opAppendTransaction  opKind = "append_transaction"
	opDeleteTransactions opKind = "delete_transactions"
	opAppendAudit        opKind = "append_audit"
	opDeleteAudit        opKind = "delete_audit"
	opClearAudit         opKind = "clear_audit"
)

// mutation is one buffered write. Number is the account number for the delete ops.
type mutation struct {
	Op          opKind              `json:"op"`
	Number      string              `json:"number,omitempty"`
	Account     *domain.Account     `json:"account,omitempty"`
	Transaction *domain.Transaction `json:"transaction,omitempty"`
	Audit       *domain.AuditEntry  `json:"audit,omitempty"`
}

var errMalformedOp = errors.New("malformed wal operation")

func (m mutation) validate() error {
	switch m.Op {
	case opCreateAccount, opPutAccount:
		if m.Account == nil {
			return errMalformedOp
		}
	case opAppendTransaction:
		if m.Transaction == nil {
			return errMalformedOp
		}
	case opAppendAudit:
		if m.Audit == nil {
			return errMalformedOp
		}
	case opDeleteAccount, opDeleteTransactions, opDeleteAudit, opClearAudit:
	default:
		return errMalformedOp
	}
	return nil
}

type accountState struct {
	account domain.Account
	deleted bool
}

// unitOfWork records ops in order and keeps an overlay so reads inside the
// unit see its own writes.
type unitOfWork struct {
	store *Store
	ops   []mutation

	accounts     map[string]accountState
	txns         []domain.Transaction
	txnsCleared  map[string]bool
	audits       []domain.AuditEntry
	auditCleared map[string]bool
	auditWiped   bool
}

func newUnitOfWork(store *Store) *unitOfWork {
	return &unitOfWork{
		store:        store,
		accounts:     make(map[string]accountState),
		txnsCleared:  make(map[string]bool),
		auditCleared: make(map[string]bool),
	}
}

func (u *unitOfWork) lookup(number string) (domain.Account, bool) {
	if st, ok := u.accounts[number]; ok {
		return st.account, !st.deleted
	}
	return u.store.account(number)
}

func (u *unitOfWork) createAccount(acc domain.Account) {
	acc.Transactions = nil
	u.accounts[acc.Number] = accountState{account: acc}
	u.ops = append(u.ops, mutation{Op: opCreateAccount, Account: &acc})
}

func (u *unitOfWork) putAccount(acc domain.Account) {
	acc.Transactions = nil
	u.accounts[acc.Number] = accountState{account: acc}
	u.ops = append(u.ops, mutation{Op: opPutAccount, Account: &acc})
}

func (u *unitOfWork) deleteAccount(number string) {
	u.accounts[number] = accountState{deleted: true}
	u.ops = append(u.ops, mutation{Op: opDeleteAccount, Number: number})
}

func (u *unitOfWork) appendTransaction(txn domain.Transaction) {
	u.txns = append(u.txns, txn)
	u.ops = append(u.ops, mutation{Op: opAppendTransaction, Transaction: &txn})
}

func (u *unitOfWork) deleteTransactions(number string) {
	u.txnsCleared[number] = true
	u.txns = slices.DeleteFunc(u.txns, func(t domain.Transaction) bool { return t.OriginAccount == number })
	u.ops = append(u.ops, mutation{Op: opDeleteTransactions, Number: number})
}

func (u *unitOfWork) transactionsByOrigin(number string) []domain.Transaction {
	var out []domain.Transaction
	if !u.txnsCleared[number] {
		out = u.store.transactionsByOrigin(number)
	}
	for _, t := range u.txns {
		if t.OriginAccount == number {
			out = append(out, t)
		}
	}
	return out
}

func (u *unitOfWork) appendAudit(entry domain.AuditEntry) {
	u.audits = append(u.audits, entry)
	u.ops = append(u.ops, mutation{Op: opAppendAudit, Audit: &entry})
}

func (u *unitOfWork) deleteAudit(number string) {
	u.auditCleared[number] = true
	u.audits = slices.DeleteFunc(u.audits, func(e domain.AuditEntry) bool { return e.AccountNumber == number })
	u.ops = append(u.ops, mutation{Op: opDeleteAudit, Number: number})
}

func (u *unitOfWork) clearAudit() {
	u.auditWiped = true
	u.audits = nil
	u.ops = append(u.ops, mutation{Op: opClearAudit})
}

func (u *unitOfWork) auditEntries() []domain.AuditEntry {
	var out []domain.AuditEntry
	if !u.auditWiped {
		out = slices.DeleteFunc(u.store.auditEntries(), func(e domain.AuditEntry) bool {
			return u.auditCleared[e.AccountNumber]
		})
	}
	return append(out, u.audits...)
}
