// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"io"
	"net"
	"os"

	"github.com/MKhiriev/go-irc-bot/internal/dao"
	"github.com/MKhiriev/go-irc-bot/internal/dcc"
	"github.com/MKhiriev/go-irc-bot/internal/input"
	"github.com/MKhiriev/go-irc-bot/internal/output"
	"github.com/MKhiriev/go-irc-bot/internal/workers"
)

// DefaultFactory builds the stock subsystems. It holds no state and is safe
// for concurrent use.
type DefaultFactory struct{}

var _ Factory = DefaultFactory{}

func configuration(bot Bot) (*Configuration, error) {
	cfg := bot.Configuration()
	if cfg == nil {
		return nil, unavailable("configuration")
	}
	return cfg, nil
}

func logCreated(bot Bot, subsystem string) {
	if log := bot.Logger(); log != nil {
		log.Debug().Str("subsystem", subsystem).Msg("created")
	}
}

// CreateUserChannelDao implements [Factory]. Users and channels the directory
// discovers are created through the configured factory.
func (DefaultFactory) CreateUserChannelDao(bot Bot) (*dao.UserChannelDao, error) {
	cfg, err := configuration(bot)
	if err != nil {
		return nil, err
	}
	factory := cfg.Factory()

	d := dao.NewUserChannelDao(dao.Options{
		Locale:          cfg.Locale(),
		ChannelPrefixes: cfg.ChannelPrefixes(),
		NewUser: func(nick string) (*dao.User, error) {
			return factory.CreateUser(bot, nick)
		},
		NewChannel: func(name string) (*dao.Channel, error) {
			return factory.CreateChannel(bot, name)
		},
	})
	logCreated(bot, "user_channel_dao")
	return d, nil
}

// CreateServerInfo implements [Factory].
func (DefaultFactory) CreateServerInfo(bot Bot) (*dao.ServerInfo, error) {
	logCreated(bot, "server_info")
	return dao.NewServerInfo(), nil
}

// CreateOutputRaw implements [Factory]. The writer reads the bot's current
// connection on every line.
func (DefaultFactory) CreateOutputRaw(bot Bot) (*output.Raw, error) {
	cfg, err := configuration(bot)
	if err != nil {
		return nil, err
	}

	raw := output.NewRaw(bot.Writer, output.RawOptions{
		Encoding:      cfg.Encoding(),
		MaxLineLength: cfg.MaxLineLength(),
		AutoSplit:     cfg.AutoSplitMessage(),
		MessageDelay:  cfg.MessageDelay(),
	})
	logCreated(bot, "output_raw")
	return raw, nil
}

// CreateOutputCAP implements [Factory].
func (DefaultFactory) CreateOutputCAP(bot Bot) (*output.CAP, error) {
	raw := bot.SendRaw()
	if raw == nil {
		return nil, unavailable("output raw")
	}
	logCreated(bot, "output_cap")
	return output.NewCAP(raw), nil
}

// CreateOutputIRC implements [Factory].
func (DefaultFactory) CreateOutputIRC(bot Bot) (*output.IRC, error) {
	raw := bot.SendRaw()
	if raw == nil {
		return nil, unavailable("output raw")
	}
	logCreated(bot, "output_irc")
	return output.NewIRC(raw), nil
}

// CreateOutputDCC implements [Factory].
func (DefaultFactory) CreateOutputDCC(bot Bot) (*output.DCC, error) {
	cfg, err := configuration(bot)
	if err != nil {
		return nil, err
	}
	irc := bot.SendIRC()
	if irc == nil {
		return nil, unavailable("output irc")
	}
	logCreated(bot, "output_dcc")
	return output.NewDCC(irc, cfg.DCCFilenameQuotes()), nil
}

// CreateOutputChannel implements [Factory].
func (DefaultFactory) CreateOutputChannel(bot Bot, channel *dao.Channel) (*output.Channel, error) {
	raw := bot.SendRaw()
	if raw == nil {
		return nil, unavailable("output raw")
	}
	irc := bot.SendIRC()
	if irc == nil {
		return nil, unavailable("output irc")
	}
	return output.NewChannel(raw, irc, channel), nil
}

// CreateOutputUser implements [Factory].
func (DefaultFactory) CreateOutputUser(bot Bot, user *dao.User) (*output.User, error) {
	irc := bot.SendIRC()
	if irc == nil {
		return nil, unavailable("output irc")
	}
	return output.NewUser(irc, user), nil
}

// CreateInputParser implements [Factory].
func (DefaultFactory) CreateInputParser(bot Bot) (*input.Parser, error) {
	cfg, err := configuration(bot)
	if err != nil {
		return nil, err
	}
	users := bot.UserChannelDao()
	if users == nil {
		return nil, unavailable("user channel dao")
	}
	serverInfo := bot.ServerInfo()
	if serverInfo == nil {
		return nil, unavailable("server info")
	}
	dccHandler := bot.DccHandler()
	if dccHandler == nil {
		return nil, unavailable("dcc handler")
	}
	irc := bot.SendIRC()
	if irc == nil {
		return nil, unavailable("output irc")
	}
	capOut := bot.SendCAP()
	if capOut == nil {
		return nil, unavailable("output cap")
	}

	parser := input.NewParser(input.Options{
		Nick:             cfg.Name(),
		Encoding:         cfg.Encoding(),
		CapEnabled:       cfg.CapEnabled(),
		CapHandlers:      cfg.CapHandlers(),
		AutoJoinChannels: cfg.AutoJoinChannels(),
		AutoNickChange:   cfg.AutoNickChange(),
	}, bot, cfg.ListenerManager(), users, serverInfo, dccHandler, irc, capOut, bot.Logger())
	logCreated(bot, "input_parser")
	return parser, nil
}

// CreateDccHandler implements [Factory].
func (DefaultFactory) CreateDccHandler(bot Bot) (*dcc.Handler, error) {
	cfg, err := configuration(bot)
	if err != nil {
		return nil, err
	}
	users := bot.UserChannelDao()
	if users == nil {
		return nil, unavailable("user channel dao")
	}
	out := bot.SendDCC()
	if out == nil {
		return nil, unavailable("output dcc")
	}

	h := dcc.NewHandler(dcc.HandlerOptions{
		Ports:               cfg.DCCPorts(),
		LocalAddress:        cfg.DCCLocalAddress(),
		AcceptTimeout:       cfg.DCCAcceptTimeout(),
		ResumeAcceptTimeout: cfg.DCCResumeAcceptTimeout(),
		Passive:             cfg.DCCPassiveRequest(),
	}, bot, cfg.ListenerManager(), users, out)
	logCreated(bot, "dcc_handler")
	return h, nil
}

// CreateSendChat implements [Factory] for a chat the bot offered.
func (DefaultFactory) CreateSendChat(bot Bot, user *dao.User, conn net.Conn) (*dcc.Chat, error) {
	cfg, err := configuration(bot)
	if err != nil {
		return nil, err
	}
	return dcc.NewChat(user, conn, cfg.Encoding(), true)
}

// CreateReceiveChat implements [Factory] for a chat the peer offered.
func (DefaultFactory) CreateReceiveChat(bot Bot, user *dao.User, conn net.Conn) (*dcc.Chat, error) {
	cfg, err := configuration(bot)
	if err != nil {
		return nil, err
	}
	return dcc.NewChat(user, conn, cfg.Encoding(), false)
}

// CreateSendFileTransfer implements [Factory]. It opens path for reading; an
// open failure is returned as is.
func (DefaultFactory) CreateSendFileTransfer(bot Bot, conn net.Conn, user *dao.User, path string,
	startPosition int64) (*dcc.FileTransfer, error) {
	cfg, err := configuration(bot)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, dcc.ErrNilConnection
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return dcc.NewSendFileTransfer(conn, user, file, startPosition, cfg.DCCTransferBufferSize()), nil
}

// CreateReceiveFileTransfer implements [Factory]. It creates path, truncating
// it unless resuming at startPosition; I/O failures are returned as is.
func (DefaultFactory) CreateReceiveFileTransfer(bot Bot, conn net.Conn, user *dao.User, path string,
	startPosition int64) (*dcc.FileTransfer, error) {
	cfg, err := configuration(bot)
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, dcc.ErrNilConnection
	}

	flags := os.O_CREATE | os.O_WRONLY
	if startPosition == 0 {
		flags |= os.O_TRUNC
	}
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(startPosition, io.SeekStart); err != nil {
		_ = file.Close()
		return nil, err
	}
	return dcc.NewReceiveFileTransfer(conn, user, file, startPosition, cfg.DCCTransferBufferSize()), nil
}

// CreateUser implements [Factory].
func (DefaultFactory) CreateUser(bot Bot, nick string) (*dao.User, error) {
	if bot.UserChannelDao() == nil {
		return nil, unavailable("user channel dao")
	}
	return dao.NewUser(nick), nil
}

// CreateChannel implements [Factory].
func (DefaultFactory) CreateChannel(bot Bot, name string) (*dao.Channel, error) {
	if bot.UserChannelDao() == nil {
		return nil, unavailable("user channel dao")
	}
	return dao.NewChannel(name), nil
}

// StartInputParser implements [Factory]. Cancel the returned job to stop
// waiting on it; the read itself only ends when r is closed or exhausted.
func (DefaultFactory) StartInputParser(ctx context.Context, parser *input.Parser, r io.Reader) *workers.Job {
	return workers.Start(ctx, workers.WorkerFunc(func(ctx context.Context) error {
		return parser.StartLineProcessing(ctx, r)
	}))
}
