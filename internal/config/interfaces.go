// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/bot_mock.go -package=mock -exclude_interfaces=Factory

package config

import (
	"context"
	"io"
	"net"

	"github.com/MKhiriev/go-irc-bot/internal/dao"
	"github.com/MKhiriev/go-irc-bot/internal/dcc"
	"github.com/MKhiriev/go-irc-bot/internal/hooks"
	"github.com/MKhiriev/go-irc-bot/internal/input"
	"github.com/MKhiriev/go-irc-bot/internal/logger"
	"github.com/MKhiriev/go-irc-bot/internal/output"
	"github.com/MKhiriev/go-irc-bot/internal/workers"
)

// Bot is what a [Factory] sees of the bot it builds subsystems for. Accessors
// of subsystems that have not been built yet return nil.
type Bot interface {
	hooks.Session

	// Configuration returns the frozen settings of the bot.
	Configuration() *Configuration
	// Logger returns the bot's logger.
	Logger() *logger.Logger
	// Writer returns the server connection, or nil while disconnected.
	Writer() io.Writer

	UserChannelDao() *dao.UserChannelDao
	ServerInfo() *dao.ServerInfo
	SendRaw() *output.Raw
	SendCAP() *output.CAP
	SendIRC() *output.IRC
	SendDCC() *output.DCC
	DccHandler() *dcc.Handler
}

// Factory builds every subsystem of a bot. Each call returns a new instance;
// a method whose prerequisites are not built yet fails with
// [ErrDependencyUnavailable].
//
// To replace one subsystem, embed [DefaultFactory] and override the method.
type Factory interface {
	CreateUserChannelDao(bot Bot) (*dao.UserChannelDao, error)
	CreateServerInfo(bot Bot) (*dao.ServerInfo, error)

	CreateOutputRaw(bot Bot) (*output.Raw, error)
	CreateOutputCAP(bot Bot) (*output.CAP, error)
	CreateOutputIRC(bot Bot) (*output.IRC, error)
	CreateOutputDCC(bot Bot) (*output.DCC, error)
	CreateOutputChannel(bot Bot, channel *dao.Channel) (*output.Channel, error)
	CreateOutputUser(bot Bot, user *dao.User) (*output.User, error)

	CreateInputParser(bot Bot) (*input.Parser, error)
	CreateDccHandler(bot Bot) (*dcc.Handler, error)

	CreateSendChat(bot Bot, user *dao.User, conn net.Conn) (*dcc.Chat, error)
	CreateReceiveChat(bot Bot, user *dao.User, conn net.Conn) (*dcc.Chat, error)
	CreateSendFileTransfer(bot Bot, conn net.Conn, user *dao.User, path string, startPosition int64) (*dcc.FileTransfer, error)
	CreateReceiveFileTransfer(bot Bot, conn net.Conn, user *dao.User, path string, startPosition int64) (*dcc.FileTransfer, error)

	CreateUser(bot Bot, nick string) (*dao.User, error)
	CreateChannel(bot Bot, name string) (*dao.Channel, error)

	// StartInputParser runs parser over r in the background and returns as
	// soon as it has been handed off.
	StartInputParser(ctx context.Context, parser *input.Parser, r io.Reader) *workers.Job
}
