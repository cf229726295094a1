package dialog

import "time"

// Scheduler plans a delayed action with a cancellation handle. The session
// uses it for the auto-close after a successful submit; tests substitute a
// manual implementation to fire or cancel deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// NewScheduler returns the wall-clock scheduler used in production.
func NewScheduler() Scheduler { return wallScheduler{} }
