// Package workers provides abstractions for running background workers as
// independently cancellable units of work.
// It defines the Worker interface and a Job handle that the caller can wait
// on, cancel or simply discard.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run blocks for the duration of the work and returns when the work is done,
// fails, or ctx is cancelled.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a plain function to the Worker interface.
type WorkerFunc func(ctx context.Context) error

// Run implements Worker.
func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
