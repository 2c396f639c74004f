// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bot

import "errors"

var (
	// ErrNilConfiguration is returned by New when no configuration is given.
	ErrNilConfiguration = errors.New("configuration is nil")
	// ErrAlreadyConnected is returned by Connect on a connected bot.
	ErrAlreadyConnected = errors.New("bot is already connected")
	// ErrNotConnected is returned by Wait before Connect.
	ErrNotConnected = errors.New("bot is not connected")
)
