// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package hooks

import (
	"context"
	"fmt"
	"reflect"
	"runtime/debug"
	"slices"
	"sync"

	"github.com/MKhiriev/go-irc-bot/internal/logger"
)

// Listener receives events dispatched by a [ListenerManager].
type Listener interface {
	OnEvent(ctx context.Context, event Event) error
}

// ListenerManager is the listener registry held by the configuration.
type ListenerManager interface {
	// AddListener appends l to the registry.
	AddListener(l Listener)
	// RemoveListener removes the first occurrence of l and reports whether
	// anything was removed.
	RemoveListener(l Listener) bool
	// Listeners returns a snapshot of the registered listeners in
	// registration order.
	Listeners() []Listener
	// Dispatch delivers event to every registered listener.
	Dispatch(ctx context.Context, event Event)
	// Wait blocks until every in-flight dispatch has returned.
	Wait()
}

// ThreadedListenerManager runs every listener in its own goroutine per event.
// Listener errors and panics are logged through the logger attached to the
// dispatch context and never reach the caller.
type ThreadedListenerManager struct {
	mu        sync.RWMutex
	listeners []Listener

	wg sync.WaitGroup
}

// NewThreadedListenerManager returns an empty registry.
func NewThreadedListenerManager(listeners ...Listener) *ThreadedListenerManager {
	return &ThreadedListenerManager{listeners: slices.Clone(listeners)}
}

// AddListener implements [ListenerManager].
func (m *ThreadedListenerManager) AddListener(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, l)
}

// RemoveListener implements [ListenerManager]. Listeners whose dynamic type is
// not comparable are never matched.
func (m *ThreadedListenerManager) RemoveListener(l Listener) bool {
	if l == nil || !reflect.TypeOf(l).Comparable() {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, cur := range m.listeners {
		if reflect.TypeOf(cur) == reflect.TypeOf(l) && cur == l {
			m.listeners = slices.Delete(m.listeners, i, i+1)
			return true
		}
	}
	return false
}

// Listeners implements [ListenerManager].
func (m *ThreadedListenerManager) Listeners() []Listener {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.listeners)
}

// Dispatch implements [ListenerManager]. It returns as soon as every listener
// goroutine has been started.
func (m *ThreadedListenerManager) Dispatch(ctx context.Context, event Event) {
	for _, l := range m.Listeners() {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.execute(ctx, l, event)
		}()
	}
}

// Wait implements [ListenerManager].
func (m *ThreadedListenerManager) Wait() {
	m.wg.Wait()
}

func (m *ThreadedListenerManager) execute(ctx context.Context, l Listener, event Event) {
	log := logger.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("listener", fmt.Sprintf("%T", l)).
				Str("event", fmt.Sprintf("%T", event)).
				Str("stack", string(debug.Stack())).
				Msgf("listener panicked: %v", r)
		}
	}()

	if err := l.OnEvent(ctx, event); err != nil {
		log.Error().Err(err).
			Str("listener", fmt.Sprintf("%T", l)).
			Str("event", fmt.Sprintf("%T", event)).
			Msg("listener returned an error")
	}
}
