package repositories

import "context"

// TransactionManager defines the unit-of-work boundary shared by all repositories.
type TransactionManager interface {
	// WithinTransaction runs fn with a context bound to a single store transaction.
	// Repository calls made with that context commit together when fn returns nil,
	// and are discarded when fn returns an error or ctx is done before commit.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
