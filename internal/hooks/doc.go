// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package hooks defines the listener side of the bot: the [Event] and
// [Listener] contracts, the [ListenerManager] registry consulted by the
// configuration, its default [ThreadedListenerManager] implementation and the
// [CoreHooks] baseline listener that every registry must carry exactly once.
//
// CoreHooks answers the traffic a well-behaved client must answer no matter
// what the user registered: server PING and the CTCP VERSION, FINGER, PING and
// TIME queries.
package hooks
