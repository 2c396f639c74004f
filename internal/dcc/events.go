// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dcc

import (
	"net"

	"github.com/MKhiriev/go-irc-bot/internal/dao"
	"github.com/MKhiriev/go-irc-bot/internal/hooks"
)

// IncomingChatRequestEvent is dispatched when a user offers a DCC chat.
type IncomingChatRequestEvent struct {
	session hooks.Session

	User    *dao.User
	Address net.IP
	Port    int
	Token   string
	Passive bool
}

// Session implements hooks.Event.
func (e *IncomingChatRequestEvent) Session() hooks.Session { return e.session }

// IncomingFileTransferEvent is dispatched when a user offers a file.
type IncomingFileTransferEvent struct {
	session hooks.Session

	User     *dao.User
	Filename string
	Address  net.IP
	Port     int
	Size     int64
	Token    string
	Passive  bool
}

// Session implements hooks.Event.
func (e *IncomingFileTransferEvent) Session() hooks.Session { return e.session }

// ResumeEvent is dispatched for DCC RESUME and DCC ACCEPT requests.
type ResumeEvent struct {
	session hooks.Session

	Kind     string
	User     *dao.User
	Filename string
	Port     int
	Position int64
	Token    string
}

// Session implements hooks.Event.
func (e *ResumeEvent) Session() hooks.Session { return e.session }
