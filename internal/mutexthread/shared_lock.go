package mutexthread

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

const (
	exclusiveLockWeightConstant               = 1
	lockNotHeldMessageConstant                = "lock is not held"
	lockNotInitializedMessageConstant         = "lock is not initialized"
	exclusiveLockAcquireErrorTemplateConstant = "acquire exclusive lock: %w"
)

// ErrLockNotHeld indicates a release of a lock that no task holds.
var ErrLockNotHeld = errors.New(lockNotHeldMessageConstant)

// ErrLockNotInitialized indicates use of an ExclusiveLock that was not built by NewExclusiveLock.
var ErrLockNotInitialized = errors.New(lockNotInitializedMessageConstant)

// SharedLock is a mutual-exclusion primitive owned by the caller. At most one holder exists at a time.
type SharedLock interface {
	Acquire() error
	Release() error
}

// ExclusiveLock is a SharedLock backed by a weighted semaphore of capacity one.
type ExclusiveLock struct {
	semaphore *semaphore.Weighted
	held      atomic.Bool
}

// NewExclusiveLock constructs an unheld ExclusiveLock.
func NewExclusiveLock() *ExclusiveLock {
	return &ExclusiveLock{semaphore: semaphore.NewWeighted(exclusiveLockWeightConstant)}
}

// Acquire blocks until the lock is available and takes it.
func (lock *ExclusiveLock) Acquire() error {
	if lock == nil || lock.semaphore == nil {
		return ErrLockNotInitialized
	}
	if acquireError := lock.semaphore.Acquire(context.Background(), exclusiveLockWeightConstant); acquireError != nil {
		return fmt.Errorf(exclusiveLockAcquireErrorTemplateConstant, acquireError)
	}
	lock.held.Store(true)
	return nil
}

// Release gives the lock back. Releasing an unheld lock returns ErrLockNotHeld.
func (lock *ExclusiveLock) Release() error {
	if lock == nil || lock.semaphore == nil {
		return ErrLockNotInitialized
	}
	if !lock.held.CompareAndSwap(true, false) {
		return ErrLockNotHeld
	}
	lock.semaphore.Release(exclusiveLockWeightConstant)
	return nil
}

// Held reports whether some task currently holds the lock.
func (lock *ExclusiveLock) Held() bool {
	if lock == nil {
		return false
	}
	return lock.held.Load()
}
