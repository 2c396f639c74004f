// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config holds everything a bot is configured with and the factory
// it builds its subsystems through.
//
// A [Builder] accumulates settings, starting from defaults. [Builder.Build]
// validates them and freezes an immutable [Configuration]. The bot then asks
// the configuration's [Factory] for each of its subsystems; supplying another
// Factory is the way to swap an implementation.
//
// Settings may also be loaded from several sources with [LoadBuilder], in the
// following priority order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
package config
