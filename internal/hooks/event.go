// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package hooks

import (
	"context"
	"strings"
)

// Session is the view of a running bot that events expose to listeners.
type Session interface {
	// Nick returns the nick the bot currently uses on the server.
	Nick() string
	// CtcpVersion returns the configured CTCP VERSION reply.
	CtcpVersion() string
	// CtcpFinger returns the configured CTCP FINGER reply.
	CtcpFinger() string
	// SendRawLine queues one protocol line for delivery to the server.
	SendRawLine(ctx context.Context, line string) error
}

// Event is anything dispatched through a [ListenerManager].
type Event interface {
	// Session returns the bot session the event originated from.
	Session() Session
}

// LineEvent carries one protocol line received from the server, already split
// into its prefix, command and parameters.
type LineEvent struct {
	session Session

	Raw     string
	Prefix  string
	Command string
	Params  []string
}

// NewLineEvent creates a LineEvent bound to session.
func NewLineEvent(session Session, raw, prefix, command string, params []string) *LineEvent {
	return &LineEvent{
		session: session,
		Raw:     raw,
		Prefix:  prefix,
		Command: command,
		Params:  params,
	}
}

// Session implements [Event].
func (e *LineEvent) Session() Session {
	return e.session
}

// Trailing returns the last parameter, or "" when there are none.
func (e *LineEvent) Trailing() string {
	if len(e.Params) == 0 {
		return ""
	}
	return e.Params[len(e.Params)-1]
}

// CtcpEvent is a CTCP query (a PRIVMSG wrapped in \x01) sent to the bot or to
// a channel it is in.
type CtcpEvent struct {
	session Session

	Source  string
	Target  string
	Command string
	Args    string
}

// NewCtcpEvent creates a CtcpEvent bound to session.
func NewCtcpEvent(session Session, source, target, command, args string) *CtcpEvent {
	return &CtcpEvent{
		session: session,
		Source:  source,
		Target:  target,
		Command: strings.ToUpper(command),
		Args:    args,
	}
}

// Session implements [Event].
func (e *CtcpEvent) Session() Session {
	return e.session
}

// Respond sends a CTCP reply to the source of the query.
func (e *CtcpEvent) Respond(ctx context.Context, text string) error {
	return e.session.SendRawLine(ctx, "NOTICE "+e.Source+" :\u0001"+text+"\u0001")
}
