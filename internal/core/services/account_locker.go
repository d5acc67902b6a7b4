package services

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/semaphore"
)

// AccountLocker serializes mutations per account number while letting unrelated
// accounts proceed in parallel.
type AccountLocker struct {
	mu    sync.Mutex
	locks map[string]*accountLock
}

type accountLock struct {
	sem  *semaphore.Weighted
	refs int // holders plus waiters
}

// NewAccountLocker creates an empty locker.
func NewAccountLocker() *AccountLocker {
	return &AccountLocker{locks: make(map[string]*accountLock)}
}

// Lock acquires the locks of numbers in ascending order, ignoring duplicates, so two callers
// locking the same pair in opposite call order cannot deadlock. If ctx is done while waiting,
// any locks already taken are released and ctx.Err() is returned.
// The returned unlock func is safe to call more than once.
func (l *AccountLocker) Lock(ctx context.Context, numbers ...string) (func(), error) {
	keys := slices.Clone(numbers)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	acquired := make([]string, 0, len(keys))
	for _, key := range keys {
		lock := l.ref(key)
		if err := lock.sem.Acquire(ctx, 1); err != nil {
			l.unref(key)
			l.release(acquired)
			return nil, err
		}
		acquired = append(acquired, key)
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(acquired) })
	}, nil
}

func (l *AccountLocker) ref(key string) *accountLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &accountLock{sem: semaphore.NewWeighted(1)}
		l.locks[key] = lock
	}
	lock.refs++
	return lock
}

func (l *AccountLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock := l.locks[key]
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, key)
	}
}

func (l *AccountLocker) release(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		l.mu.Lock()
		lock := l.locks[keys[i]]
		lock.sem.Release(1)
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, keys[i])
		}
		l.mu.Unlock()
	}
}

// size reports how many account locks are tracked; used by tests.
func (l *AccountLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
