package mutexthread

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant   = "mutex thread logger not configured"
	lockFailureMessageConstant           = "shared lock operation failed"
	invalidArgumentMessageConstant       = "invalid argument"
	nilLockTemplateConstant              = "%w: shared lock is nil"
	negativeWaitTemplateConstant         = "%w: negative wait (obtain %s, release %s)"
	acquireFailureTemplateConstant       = "%w: acquire: %w"
	releaseFailureTemplateConstant       = "%w: release: %w"
	threadStartedLogMessageConstant      = "mutex thread started"
	threadNotStartedLogMessageConstant   = "mutex thread not started"
	mutexObtainedLogMessageConstant      = "mutex obtained by thread"
	mutexReleasedLogMessageConstant      = "mutex released by thread"
	mutexObtainFailedLogMessageConstant  = "failed to obtain mutex"
	mutexReleaseFailedLogMessageConstant = "failed to release mutex"
	logFieldTaskIdentifierConstant       = "task_id"
	logFieldWaitToObtainConstant         = "wait_to_obtain"
	logFieldWaitToReleaseConstant        = "wait_to_release"
	logFieldAcquiredAfterConstant        = "acquired_after"
	logFieldHeldForConstant              = "held_for"
	millisecondsPerUnitConstant          = time.Millisecond
)

// ErrLoggerNotConfigured indicates that a Launcher was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrLockFailure wraps failures reported by a SharedLock while acquiring or releasing it.
var ErrLockFailure = errors.New(lockFailureMessageConstant)

// ErrInvalidArgument reports a thread request that cannot be started.
var ErrInvalidArgument = errors.New(invalidArgumentMessageConstant)

// Outcome is the record a delayed mutex thread hands to its joiner.
// Success is true only when both the acquisition and the release succeeded.
type Outcome struct {
	AcquiredAfter time.Duration `yaml:"acquired_after"`
	HeldFor       time.Duration `yaml:"held_for"`
	Success       bool          `yaml:"success"`
}

// Thread is the join handle of a started delayed mutex thread.
type Thread struct {
	identifier string
	outcomes   chan Outcome
	joinOnce   sync.Once
	outcome    Outcome
}

// ID returns the identifier attached to the thread's log entries.
func (thread *Thread) ID() string {
	return thread.identifier
}

// Join blocks until the thread finishes and returns its Outcome. Later calls return the same Outcome.
func (thread *Thread) Join() Outcome {
	thread.joinOnce.Do(func() {
		thread.outcome = <-thread.outcomes
	})
	return thread.outcome
}

// Launcher starts delayed mutex threads.
type Launcher struct {
	logger *zap.Logger
}

// NewLauncher constructs a Launcher that logs thread progress through logger.
func NewLauncher(logger *zap.Logger) (*Launcher, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	return &Launcher{logger: logger}, nil
}

// Start spawns a thread that sleeps waitToObtain, acquires lock, holds it for waitToRelease, and releases it.
// It returns immediately. When the boolean is false no thread runs and the caller must not join.
func (launcher *Launcher) Start(lock SharedLock, waitToObtain time.Duration, waitToRelease time.Duration) (*Thread, bool) {
	if lock == nil {
		launcher.logger.Error(threadNotStartedLogMessageConstant, zap.Error(fmt.Errorf(nilLockTemplateConstant, ErrInvalidArgument)))
		return nil, false
	}
	if waitToObtain < 0 || waitToRelease < 0 {
		launcher.logger.Error(threadNotStartedLogMessageConstant, zap.Error(fmt.Errorf(negativeWaitTemplateConstant, ErrInvalidArgument, waitToObtain, waitToRelease)))
		return nil, false
	}

	thread := &Thread{
		identifier: uuid.NewString(),
		outcomes:   make(chan Outcome, 1),
	}
	threadLogger := launcher.logger.With(
		zap.String(logFieldTaskIdentifierConstant, thread.identifier),
		zap.Duration(logFieldWaitToObtainConstant, waitToObtain),
		zap.Duration(logFieldWaitToReleaseConstant, waitToRelease),
	)

	go obtainMutexAfterDelay(threadLogger, lock, waitToObtain, waitToRelease, thread.outcomes)

	threadLogger.Debug(threadStartedLogMessageConstant)
	return thread, true
}

// StartMilliseconds is Start with both waits expressed in milliseconds.
func (launcher *Launcher) StartMilliseconds(lock SharedLock, waitToObtainMilliseconds int, waitToReleaseMilliseconds int) (*Thread, bool) {
	return launcher.Start(
		lock,
		time.Duration(waitToObtainMilliseconds)*millisecondsPerUnitConstant,
		time.Duration(waitToReleaseMilliseconds)*millisecondsPerUnitConstant,
	)
}

func obtainMutexAfterDelay(logger *zap.Logger, lock SharedLock, waitToObtain time.Duration, waitToRelease time.Duration, outcomes chan<- Outcome) {
	var outcome Outcome
	defer func() {
		outcomes <- outcome
	}()

	startedAt := time.Now()
	time.Sleep(waitToObtain)

	if acquireError := lock.Acquire(); acquireError != nil {
		logger.Error(mutexObtainFailedLogMessageConstant, zap.Error(fmt.Errorf(acquireFailureTemplateConstant, ErrLockFailure, acquireError)))
		return
	}
	acquiredAt := time.Now()
	outcome.AcquiredAfter = acquiredAt.Sub(startedAt)
	logger.Debug(mutexObtainedLogMessageConstant, zap.Duration(logFieldAcquiredAfterConstant, outcome.AcquiredAfter))

	time.Sleep(waitToRelease)

	releaseError := lock.Release()
	outcome.HeldFor = time.Since(acquiredAt)
	if releaseError != nil {
		// The lock is left in whatever state its implementation reports; no forced release.
		logger.Error(mutexReleaseFailedLogMessageConstant, zap.Error(fmt.Errorf(releaseFailureTemplateConstant, ErrLockFailure, releaseError)))
		return
	}
	logger.Debug(mutexReleasedLogMessageConstant, zap.Duration(logFieldHeldForConstant, outcome.HeldFor))

	outcome.Success = true
}
