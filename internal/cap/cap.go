// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cap holds the capability negotiation (IRCv3 CAP) handler contract
// used by the configuration and the input parser.
package cap

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrCapabilityUnsupported is returned when a required capability is not
// offered or is refused by the server.
var ErrCapabilityUnsupported = errors.New("capability not supported by server")

// Sender issues CAP requests to the server.
type Sender interface {
	Request(capabilities ...string) error
}

// Handler takes part in capability negotiation. Every method reports whether
// the handler has finished; negotiation ends once all handlers are finished.
type Handler interface {
	HandleLS(ctx context.Context, sender Sender, capabilities []string) (bool, error)
	HandleACK(ctx context.Context, sender Sender, capabilities []string) (bool, error)
	HandleNAK(ctx context.Context, sender Sender, capabilities []string) (bool, error)
	HandleUnknown(ctx context.Context, sender Sender, line string) (bool, error)
}

// EnableHandler requests one capability when the server lists it.
type EnableHandler struct {
	capability string
	ignoreFail bool
}

// NewEnableHandler returns a handler enabling capability. With ignoreFail set
// a missing or refused capability finishes the handler instead of failing it.
func NewEnableHandler(capability string, ignoreFail bool) *EnableHandler {
	return &EnableHandler{capability: capability, ignoreFail: ignoreFail}
}

// Capability returns the capability this handler enables.
func (h *EnableHandler) Capability() string {
	return h.capability
}

// HandleLS implements [Handler].
func (h *EnableHandler) HandleLS(_ context.Context, sender Sender, capabilities []string) (bool, error) {
	if slices.Contains(capabilities, h.capability) {
		if err := sender.Request(h.capability); err != nil {
			return false, fmt.Errorf("request %s: %w", h.capability, err)
		}
		return false, nil
	}
	return h.fail()
}

// HandleACK implements [Handler].
func (h *EnableHandler) HandleACK(_ context.Context, _ Sender, capabilities []string) (bool, error) {
	return slices.Contains(capabilities, h.capability), nil
}

// HandleNAK implements [Handler].
func (h *EnableHandler) HandleNAK(_ context.Context, _ Sender, capabilities []string) (bool, error) {
	if slices.Contains(capabilities, h.capability) {
		return h.fail()
	}
	return false, nil
}

// HandleUnknown implements [Handler].
func (h *EnableHandler) HandleUnknown(context.Context, Sender, string) (bool, error) {
	return false, nil
}

func (h *EnableHandler) fail() (bool, error) {
	if h.ignoreFail {
		return true, nil
	}
	return false, fmt.Errorf("%s: %w", h.capability, ErrCapabilityUnsupported)
}
