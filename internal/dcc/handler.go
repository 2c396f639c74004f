// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dcc implements the out-of-band side of the bot: turning CTCP DCC
// requests into events, binding listeners for outgoing offers, and the chat
// and file transfer sessions that run over the resulting connections.
package dcc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-irc-bot/internal/dao"
	"github.com/MKhiriev/go-irc-bot/internal/hooks"
	"github.com/MKhiriev/go-irc-bot/internal/output"
)

// Sentinel errors returned by the dcc package.
var (
	// ErrMalformedRequest is returned for DCC requests missing arguments.
	ErrMalformedRequest = errors.New("malformed DCC request")
	// ErrNoFreePort is returned when none of the configured ports can be bound.
	ErrNoFreePort = errors.New("no configured DCC port could be bound")
	// ErrNilConnection is returned when a session is built without a connection.
	ErrNilConnection = errors.New("nil connection")
)

// HandlerOptions configures a [Handler].
type HandlerOptions struct {
	// Ports lists the local ports offers may listen on. Empty means any.
	Ports []int
	// LocalAddress is the address listeners bind to and offers advertise.
	LocalAddress net.IP
	// AcceptTimeout bounds the wait for the peer to connect to an offer.
	AcceptTimeout time.Duration
	// ResumeAcceptTimeout bounds the wait for a peer resuming a transfer.
	ResumeAcceptTimeout time.Duration
	// Passive makes offers ask the peer to listen instead.
	Passive bool
}

// Handler turns incoming DCC requests into events and manages listeners for
// outgoing offers.
type Handler struct {
	opts      HandlerOptions
	session   hooks.Session
	listeners hooks.ListenerManager
	users     *dao.UserChannelDao
	out       *output.DCC
}

// NewHandler returns a Handler.
func NewHandler(opts HandlerOptions, session hooks.Session, listeners hooks.ListenerManager,
	users *dao.UserChannelDao, out *output.DCC) *Handler {
	return &Handler{
		opts:      opts,
		session:   session,
		listeners: listeners,
		users:     users,
		out:       out,
	}
}

// Output returns the DCC output helper the handler sends offers through.
func (h *Handler) Output() *output.DCC {
	return h.out
}

// ProcessRequest parses the argument of a CTCP DCC query from nick and
// dispatches the matching event. It reports false for request types it does
// not know.
func (h *Handler) ProcessRequest(ctx context.Context, nick, request string) (bool, error) {
	args := splitArgs(request)
	if len(args) < 2 {
		return false, fmt.Errorf("%q: %w", request, ErrMalformedRequest)
	}

	user, err := h.users.GetUser(nick)
	if err != nil {
		return false, fmt.Errorf("resolve DCC user: %w", err)
	}

	var event hooks.Event
	switch strings.ToUpper(args[0]) {
	case "CHAT":
		event, err = h.parseChat(user, args[1:])
	case "SEND":
		event, err = h.parseSend(user, args[1:])
	case "RESUME", "ACCEPT":
		event, err = h.parseResume(user, strings.ToUpper(args[0]), args[1:])
	default:
		return false, nil
	}
	if err != nil {
		return false, err
	}

	h.listeners.Dispatch(ctx, event)
	return true, nil
}

// CHAT chat <address> <port> [token]
func (h *Handler) parseChat(user *dao.User, args []string) (hooks.Event, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("CHAT: %w", ErrMalformedRequest)
	}
	port, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("CHAT port %q: %w", args[2], ErrMalformedRequest)
	}

	ev := &IncomingChatRequestEvent{
		session: h.session,
		User:    user,
		Address: output.IntegerToAddress(args[1]),
		Port:    port,
	}
	if len(args) > 3 {
		ev.Token = args[3]
	}
	ev.Passive = port == 0
	return ev, nil
}

// SEND <filename> <address> <port> <size> [token]
func (h *Handler) parseSend(user *dao.User, args []string) (hooks.Event, error) {
	if len(args) < 4 {
		return nil, fmt.Errorf("SEND: %w", ErrMalformedRequest)
	}
	port, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("SEND port %q: %w", args[2], ErrMalformedRequest)
	}
	size, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("SEND size %q: %w", args[3], ErrMalformedRequest)
	}

	ev := &IncomingFileTransferEvent{
		session:  h.session,
		User:     user,
		Filename: args[0],
		Address:  output.IntegerToAddress(args[1]),
		Port:     port,
		Size:     size,
		Passive:  port == 0,
	}
	if len(args) > 4 {
		ev.Token = args[4]
	}
	return ev, nil
}

// RESUME|ACCEPT <filename> <port> <position> [token]
func (h *Handler) parseResume(user *dao.User, kind string, args []string) (hooks.Event, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%s: %w", kind, ErrMalformedRequest)
	}
	port, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("%s port %q: %w", kind, args[1], ErrMalformedRequest)
	}
	pos, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s position %q: %w", kind, args[2], ErrMalformedRequest)
	}

	ev := &ResumeEvent{
		session:  h.session,
		Kind:     kind,
		User:     user,
		Filename: args[0],
		Port:     port,
		Position: pos,
	}
	if len(args) > 3 {
		ev.Token = args[3]
	}
	return ev, nil
}

// Listen binds a TCP listener for an outgoing offer on the first free
// configured port of the local address.
func (h *Handler) Listen(ctx context.Context) (net.Listener, error) {
	ports := h.opts.Ports
	if len(ports) == 0 {
		ports = []int{0}
	}

	host := ""
	if h.opts.LocalAddress != nil {
		host = h.opts.LocalAddress.String()
	}

	var lc net.ListenConfig
	var errs []error
	for _, port := range ports {
		ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err == nil {
			return ln, nil
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("%w: %w", ErrNoFreePort, errors.Join(errs...))
}

// Accept waits for the peer to connect to ln, bounded by the accept timeout,
// or by the resume accept timeout when resuming is set.
func (h *Handler) Accept(ln net.Listener, resuming bool) (net.Conn, error) {
	timeout := h.opts.AcceptTimeout
	if resuming {
		timeout = h.opts.ResumeAcceptTimeout
	}
	if dl, ok := ln.(interface{ SetDeadline(time.Time) error }); ok && timeout > 0 {
		if err := dl.SetDeadline(time.Now().Add(timeout)); err != nil {
			return nil, err
		}
	}
	return ln.Accept()
}

// splitArgs splits on spaces, keeping double-quoted file names together.
func splitArgs(s string) []string {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case r == ' ' && !inQuote:
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, cur.String())
	}
	return args
}
