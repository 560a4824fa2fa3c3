// Package sched provides the tick scheduler used to sequence asynchronous
// store operations without introducing real concurrency between them.
//
// The Scheduler interface mirrors a host facility for deferring work to the
// next processing tick. The package ships two implementations:
//
//   - RunLoop: a single-goroutine FIFO executor. Queued functions run one at
//     a time in submission order, which is exactly the ordering guarantee the
//     async store operations rely on.
//
//   - Immediate: runs functions inline, for tests and for hosts that drive
//     their own loop.
//
// No cancellation is offered; once a function is scheduled it will run
// (unless the loop was closed before submission, in which case the
// submission is dropped).
package sched
