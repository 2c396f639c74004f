// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount atomic.Int32
	err      error
}

func (m *mockWorker) Run(context.Context) error {
	m.runCount.Add(1)
	return m.err
}

func TestStart_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &mockWorker{}, &mockWorker{}, &mockWorker{}

	require.NoError(t, Start(context.Background(), w1, w2, w3).Wait())

	for i, w := range []*mockWorker{w1, w2, w3} {
		assert.EqualValues(t, 1, w.runCount.Load(), "worker[%d]", i)
	}
}

func TestStart_Empty(t *testing.T) {
	// Should not block or panic on an empty worker list
	assert.NoError(t, Start(context.Background()).Wait())
}

func TestStart_ReturnsBeforeWorkFinishes(t *testing.T) {
	release := make(chan struct{})
	job := Start(context.Background(), WorkerFunc(func(context.Context) error {
		<-release
		return nil
	}))

	select {
	case <-job.Done():
		t.Fatal("job finished before the worker was released")
	default:
	}

	close(release)
	assert.NoError(t, job.Wait())
}

func TestStart_FirstErrorCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	blocked := WorkerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	job := Start(context.Background(), blocked, &mockWorker{err: boom})

	assert.ErrorIs(t, job.Wait(), boom)
}

func TestJob_Cancel(t *testing.T) {
	job := Start(context.Background(), WorkerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	job.Cancel()

	select {
	case <-job.Done():
	case <-time.After(time.Second):
		t.Fatal("job did not stop after Cancel")
	}
	assert.ErrorIs(t, job.Wait(), context.Canceled)
}

func TestJob_ParentContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	job := Start(ctx, WorkerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}))

	cancel()
	assert.NoError(t, job.Wait())
}
