// Package workers runs the background jobs of the server: the e-mail queue
// consumer and the blacklist pruner.
//
// Every job implements Worker; Workers starts them together and stops them
// when the context passed to Run is cancelled.
package workers

import "context"

// Worker is a long-running background job.
//
// Run blocks until ctx is cancelled or the job fails for good. Returning
// nil after cancellation is the normal way to stop.
//
// Example implementation:
//
//	type tick struct{}
//
//	func (tick) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a plain function to Worker.
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
