// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package output

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-irc-bot/internal/dao"
)

const ctcpDelimiter = "\u0001"

// CAP sends capability negotiation commands.
type CAP struct {
	raw *Raw
}

// NewCAP returns a CAP helper writing through raw.
func NewCAP(raw *Raw) *CAP {
	return &CAP{raw: raw}
}

// List asks the server for its capabilities.
func (c *CAP) List() error {
	return c.raw.SendRawLineNow("CAP LS")
}

// Request asks the server to enable capabilities. It implements cap.Sender.
func (c *CAP) Request(capabilities ...string) error {
	return c.raw.SendRawLineNow("CAP REQ :" + strings.Join(capabilities, " "))
}

// End closes capability negotiation.
func (c *CAP) End() error {
	return c.raw.SendRawLineNow("CAP END")
}

// IRC sends the ordinary client commands.
type IRC struct {
	raw *Raw
}

// NewIRC returns an IRC helper writing through raw.
func NewIRC(raw *Raw) *IRC {
	return &IRC{raw: raw}
}

// Join joins channel.
func (o *IRC) Join(ctx context.Context, channel string) error {
	return o.raw.SendRawLine(ctx, "JOIN "+channel)
}

// JoinWithKey joins a keyed channel. An empty key is a plain join.
func (o *IRC) JoinWithKey(ctx context.Context, channel, key string) error {
	if key == "" {
		return o.Join(ctx, channel)
	}
	return o.raw.SendRawLine(ctx, "JOIN "+channel+" "+key)
}

// Part leaves channel.
func (o *IRC) Part(ctx context.Context, channel, reason string) error {
	if reason == "" {
		return o.raw.SendRawLine(ctx, "PART "+channel)
	}
	return o.raw.SendRawLine(ctx, "PART "+channel+" :"+reason)
}

// Message sends a PRIVMSG, split over several lines when too long.
func (o *IRC) Message(ctx context.Context, target, message string) error {
	return o.raw.SendRawLineSplit(ctx, "PRIVMSG "+target+" :", message, "")
}

// Notice sends a NOTICE, split over several lines when too long.
func (o *IRC) Notice(ctx context.Context, target, notice string) error {
	return o.raw.SendRawLineSplit(ctx, "NOTICE "+target+" :", notice, "")
}

// Action sends a CTCP ACTION (/me).
func (o *IRC) Action(ctx context.Context, target, action string) error {
	return o.CtcpCommand(ctx, target, "ACTION "+action)
}

// CtcpCommand sends a CTCP query.
func (o *IRC) CtcpCommand(ctx context.Context, target, command string) error {
	return o.raw.SendRawLineSplit(ctx, "PRIVMSG "+target+" :"+ctcpDelimiter, command, ctcpDelimiter)
}

// CtcpResponse sends a CTCP reply.
func (o *IRC) CtcpResponse(ctx context.Context, target, message string) error {
	return o.raw.SendRawLine(ctx, "NOTICE "+target+" :"+ctcpDelimiter+message+ctcpDelimiter)
}

// ChangeNick asks the server for a new nick.
func (o *IRC) ChangeNick(nick string) error {
	return o.raw.SendRawLineNow("NICK " + nick)
}

// Quit disconnects from the server.
func (o *IRC) Quit(reason string) error {
	return o.raw.SendRawLineNow("QUIT :" + reason)
}

// Channel sends commands scoped to one channel.
type Channel struct {
	raw     *Raw
	irc     *IRC
	channel *dao.Channel
}

// NewChannel returns a helper for channel.
func NewChannel(raw *Raw, irc *IRC, channel *dao.Channel) *Channel {
	return &Channel{raw: raw, irc: irc, channel: channel}
}

// Message sends a message to the channel.
func (c *Channel) Message(ctx context.Context, message string) error {
	return c.irc.Message(ctx, c.channel.Name(), message)
}

// Notice sends a notice to the channel.
func (c *Channel) Notice(ctx context.Context, notice string) error {
	return c.irc.Notice(ctx, c.channel.Name(), notice)
}

// Action sends an action to the channel.
func (c *Channel) Action(ctx context.Context, action string) error {
	return c.irc.Action(ctx, c.channel.Name(), action)
}

// SetTopic changes the channel topic.
func (c *Channel) SetTopic(ctx context.Context, topic string) error {
	return c.raw.SendRawLine(ctx, "TOPIC "+c.channel.Name()+" :"+topic)
}

// Part leaves the channel.
func (c *Channel) Part(ctx context.Context, reason string) error {
	return c.irc.Part(ctx, c.channel.Name(), reason)
}

// User sends commands addressed to one user.
type User struct {
	irc  *IRC
	user *dao.User
}

// NewUser returns a helper for user.
func NewUser(irc *IRC, user *dao.User) *User {
	return &User{irc: irc, user: user}
}

// Message sends a private message to the user.
func (u *User) Message(ctx context.Context, message string) error {
	return u.irc.Message(ctx, u.user.Nick(), message)
}

// Notice sends a notice to the user.
func (u *User) Notice(ctx context.Context, notice string) error {
	return u.irc.Notice(ctx, u.user.Nick(), notice)
}

// Action sends an action to the user.
func (u *User) Action(ctx context.Context, action string) error {
	return u.irc.Action(ctx, u.user.Nick(), action)
}

// Ctcp sends a CTCP query to the user.
func (u *User) Ctcp(ctx context.Context, command string) error {
	return u.irc.CtcpCommand(ctx, u.user.Nick(), command)
}
