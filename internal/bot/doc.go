// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package bot holds the IRC client that consumes a frozen
// [config.Configuration].
//
// [New] asks the configured factory for every subsystem, passing the bot
// itself so each one can reach what was built before it. [Bot.Connect] dials
// the server through the configured socket factory, registers and hands the
// connection to the input parser in the background.
package bot
