package mutexthread

import (
	"fmt"
	"time"
)

const (
	nonPositiveThreadCountTemplateConstant = "%w: thread count must be positive, got %d"
	threadNotStartedTemplateConstant       = "%w: thread %d was not started"
)

// ContentionRequest describes a batch of delayed mutex threads competing for one lock.
type ContentionRequest struct {
	Threads       int
	WaitToObtain  time.Duration
	WaitToRelease time.Duration
}

// ThreadReport pairs a thread identifier with the Outcome its joiner received.
type ThreadReport struct {
	ID      string `yaml:"id"`
	Outcome `yaml:",inline"`
}

// ContentionReport lists the joined outcomes in start order.
type ContentionReport struct {
	Threads   []ThreadReport `yaml:"threads"`
	Succeeded bool           `yaml:"succeeded"`
}

// RunContention starts request.Threads threads on lock, joins every started thread, and reports their outcomes.
// Threads that were started are always joined, even when a later start fails.
func (launcher *Launcher) RunContention(lock SharedLock, request ContentionRequest) (ContentionReport, error) {
	if request.Threads <= 0 {
		return ContentionReport{}, fmt.Errorf(nonPositiveThreadCountTemplateConstant, ErrInvalidArgument, request.Threads)
	}

	threads := make([]*Thread, 0, request.Threads)
	var startError error
	for threadIndex := 0; threadIndex < request.Threads; threadIndex++ {
		thread, started := launcher.Start(lock, request.WaitToObtain, request.WaitToRelease)
		if !started {
			startError = fmt.Errorf(threadNotStartedTemplateConstant, ErrInvalidArgument, threadIndex)
			break
		}
		threads = append(threads, thread)
	}

	report := ContentionReport{Threads: make([]ThreadReport, 0, len(threads)), Succeeded: startError == nil}
	for _, thread := range threads {
		outcome := thread.Join()
		report.Threads = append(report.Threads, ThreadReport{ID: thread.ID(), Outcome: outcome})
		if !outcome.Success {
			report.Succeeded = false
		}
	}

	return report, startError
}
