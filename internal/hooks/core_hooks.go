// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package hooks

import (
	"context"
	"time"
)

// CoreHooks is the baseline listener required on every listener registry.
//
// A listener counts as core hooks when it is a CoreHooks value or pointer, or
// a struct that embeds CoreHooks. Embedding is the supported way to customise
// the replies while keeping the registry invariant intact.
type CoreHooks struct{}

// NewCoreHooks returns a ready to register CoreHooks listener.
func NewCoreHooks() *CoreHooks {
	return &CoreHooks{}
}

func (CoreHooks) coreHooks() {}

// OnEvent implements [Listener].
func (h CoreHooks) OnEvent(ctx context.Context, event Event) error {
	switch e := event.(type) {
	case *LineEvent:
		if e.Command == "PING" {
			return e.Session().SendRawLine(ctx, "PONG :"+e.Trailing())
		}
	case *CtcpEvent:
		return h.onCtcp(ctx, e)
	}
	return nil
}

func (CoreHooks) onCtcp(ctx context.Context, e *CtcpEvent) error {
	switch e.Command {
	case "VERSION":
		return e.Respond(ctx, "VERSION "+e.Session().CtcpVersion())
	case "FINGER":
		return e.Respond(ctx, "FINGER "+e.Session().CtcpFinger())
	case "PING":
		return e.Respond(ctx, "PING "+e.Args)
	case "TIME":
		return e.Respond(ctx, "TIME "+time.Now().Format(time.RFC1123))
	}
	return nil
}

type coreHooksMarker interface {
	coreHooks()
}

// IsCoreHooks reports whether l is recognised as the core hooks listener.
func IsCoreHooks(l Listener) bool {
	_, ok := l.(coreHooksMarker)
	return ok
}

// CountCoreHooks returns how many listeners in ls are core hooks.
func CountCoreHooks(ls []Listener) int {
	n := 0
	for _, l := range ls {
		if IsCoreHooks(l) {
			n++
		}
	}
	return n
}
