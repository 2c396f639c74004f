package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is the handle of workers started together by Start. The first worker
// to fail cancels the others.
type Job struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Start runs every worker in its own goroutine and returns immediately.
func Start(ctx context.Context, workers ...Worker) *Job {
	jobCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(jobCtx)

	for _, w := range workers {
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	j := &Job{cancel: cancel, done: make(chan struct{})}
	go func() {
		j.err = g.Wait()
		cancel()
		close(j.done)
	}()

	return j
}

// Wait blocks until every worker has returned and reports the first error.
func (j *Job) Wait() error {
	<-j.done
	return j.err
}

// Done is closed once every worker has returned.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cancel cancels the context the workers run with. It does not wait.
func (j *Job) Cancel() {
	j.cancel()
}
