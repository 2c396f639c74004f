// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-irc-bot/internal/config"
	"github.com/MKhiriev/go-irc-bot/internal/dao"
	"github.com/MKhiriev/go-irc-bot/internal/dcc"
	"github.com/MKhiriev/go-irc-bot/internal/input"
	"github.com/MKhiriev/go-irc-bot/internal/logger"
	"github.com/MKhiriev/go-irc-bot/internal/output"
	"github.com/MKhiriev/go-irc-bot/internal/workers"
	"github.com/google/uuid"
	"golang.org/x/net/proxy"
)

const quitMessage = "Shutdown"

// Bot is one IRC client built from a [config.Configuration].
type Bot struct {
	id  uuid.UUID
	cfg *config.Configuration
	log *logger.Logger

	users      *dao.UserChannelDao
	serverInfo *dao.ServerInfo
	raw        *output.Raw
	capOut     *output.CAP
	irc        *output.IRC
	dccOut     *output.DCC
	dccHandler *dcc.Handler
	parser     *input.Parser

	mu          sync.RWMutex
	conn        net.Conn
	job         *workers.Job
	stopClose   func() bool
	stopSignals context.CancelFunc
}

var _ config.Bot = (*Bot)(nil)

// New builds every subsystem of the bot through cfg's factory, in dependency
// order. A nil log discards output.
func New(cfg *config.Configuration, log *logger.Logger) (*Bot, error) {
	if cfg == nil {
		return nil, ErrNilConfiguration
	}
	if log == nil {
		log = logger.Nop()
	}

	id := uuid.New()
	b := &Bot{
		id:  id,
		cfg: cfg,
		log: log.WithField("bot_id", id.String()),
	}

	if err := b.build(cfg.Factory()); err != nil {
		return nil, err
	}

	b.log.Info().Object("config", cfg).Msg("bot created")
	return b, nil
}

func (b *Bot) build(f config.Factory) error {
	var err error

	if b.users, err = f.CreateUserChannelDao(b); err != nil {
		return fmt.Errorf("error creating user channel dao: %w", err)
	}
	if b.serverInfo, err = f.CreateServerInfo(b); err != nil {
		return fmt.Errorf("error creating server info: %w", err)
	}
	if b.raw, err = f.CreateOutputRaw(b); err != nil {
		return fmt.Errorf("error creating raw output: %w", err)
	}
	if b.capOut, err = f.CreateOutputCAP(b); err != nil {
		return fmt.Errorf("error creating cap output: %w", err)
	}
	if b.irc, err = f.CreateOutputIRC(b); err != nil {
		return fmt.Errorf("error creating irc output: %w", err)
	}
	if b.dccOut, err = f.CreateOutputDCC(b); err != nil {
		return fmt.Errorf("error creating dcc output: %w", err)
	}
	if b.dccHandler, err = f.CreateDccHandler(b); err != nil {
		return fmt.Errorf("error creating dcc handler: %w", err)
	}
	if b.parser, err = f.CreateInputParser(b); err != nil {
		return fmt.Errorf("error creating input parser: %w", err)
	}
	return nil
}

// ID identifies the bot in logs.
func (b *Bot) ID() uuid.UUID { return b.id }

// Nick returns the nick the server knows the bot by, or the configured one
// before registration.
func (b *Bot) Nick() string {
	if b.parser != nil {
		return b.parser.CurrentNick()
	}
	return b.cfg.Name()
}

func (b *Bot) CtcpVersion() string { return b.cfg.Version() }

func (b *Bot) CtcpFinger() string { return b.cfg.Finger() }

// SendRawLine sends line, paced by the message delay.
func (b *Bot) SendRawLine(ctx context.Context, line string) error {
	return b.raw.SendRawLine(ctx, line)
}

func (b *Bot) Configuration() *config.Configuration { return b.cfg }

func (b *Bot) Logger() *logger.Logger { return b.log }

// Writer returns the server connection, or nil while disconnected.
func (b *Bot) Writer() io.Writer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.conn == nil {
		return nil
	}
	return b.conn
}

func (b *Bot) UserChannelDao() *dao.UserChannelDao { return b.users }

func (b *Bot) ServerInfo() *dao.ServerInfo { return b.serverInfo }

func (b *Bot) SendRaw() *output.Raw { return b.raw }

func (b *Bot) SendCAP() *output.CAP { return b.capOut }

func (b *Bot) SendIRC() *output.IRC { return b.irc }

func (b *Bot) SendDCC() *output.DCC { return b.dccOut }

func (b *Bot) DccHandler() *dcc.Handler { return b.dccHandler }

func (b *Bot) InputParser() *input.Parser { return b.parser }

// OutputChannel returns a helper that sends to channel.
func (b *Bot) OutputChannel(channel *dao.Channel) (*output.Channel, error) {
	return b.cfg.Factory().CreateOutputChannel(b, channel)
}

// OutputUser returns a helper that sends to user.
func (b *Bot) OutputUser(user *dao.User) (*output.User, error) {
	return b.cfg.Factory().CreateOutputUser(b, user)
}

// Connect dials the configured server, registers and starts reading server
// lines in the background. The connection is closed once ctx is done, or on
// SIGTERM, SIGINT and SIGQUIT when the shutdown hook is enabled.
func (b *Bot) Connect(ctx context.Context) error {
	if b.Writer() != nil {
		return ErrAlreadyConnected
	}

	conn, err := b.dial(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	if b.conn != nil {
		b.mu.Unlock()
		_ = conn.Close()
		return ErrAlreadyConnected
	}
	b.conn = conn
	b.mu.Unlock()

	b.log.Info().
		Str("server", conn.RemoteAddr().String()).
		Msg("connected")

	if err = b.register(); err != nil {
		b.Close()
		return fmt.Errorf("error registering with server: %w", err)
	}

	runCtx := b.log.WithContext(ctx)
	stopSignals := context.CancelFunc(func() {})
	if b.cfg.ShutdownHookEnabled() {
		runCtx, stopSignals = signal.NotifyContext(runCtx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	}

	stopClose := context.AfterFunc(runCtx, func() {
		b.log.Info().Msg("shutting down")
		if err := b.irc.Quit(quitMessage); err != nil {
			b.log.Debug().Err(err).Msg("quit not sent")
		}
		b.closeConn()
	})

	job := b.cfg.Factory().StartInputParser(runCtx, b.parser, conn)

	b.mu.Lock()
	b.job = job
	b.stopClose = stopClose
	b.stopSignals = stopSignals
	b.mu.Unlock()

	return nil
}

func (b *Bot) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(b.cfg.ServerHostname(), strconv.Itoa(b.cfg.ServerPort()))

	dialCtx, cancel := context.WithTimeout(ctx, b.cfg.SocketTimeout())
	defer cancel()

	dialer := b.cfg.SocketFactory()
	if dialer == proxy.Direct {
		d := &net.Dialer{}
		if local := b.cfg.LocalAddress(); local != nil {
			d.LocalAddr = &net.TCPAddr{IP: local}
		}
		dialer = d
	}

	conn, err := dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to %s: %w", addr, err)
	}
	return conn, nil
}

// register sends the connection registration lines without pacing, in the
// order servers expect them.
func (b *Bot) register() error {
	if b.cfg.WebIRCEnabled() {
		line := fmt.Sprintf("WEBIRC %s %s %s %s",
			b.cfg.WebIRCPassword(),
			b.cfg.WebIRCUsername(),
			b.cfg.WebIRCHostname(),
			b.cfg.WebIRCAddress())
		if err := b.raw.SendRawLineNow(line); err != nil {
			return err
		}
	}
	if b.cfg.CapEnabled() {
		if err := b.capOut.List(); err != nil {
			return err
		}
	}
	if password := b.cfg.ServerPassword(); password != "" {
		if err := b.raw.SendRawLineNow("PASS " + password); err != nil {
			return err
		}
	}
	if err := b.irc.ChangeNick(b.cfg.Name()); err != nil {
		return err
	}
	return b.raw.SendRawLineNow(fmt.Sprintf("USER %s 8 * :%s", b.cfg.Login(), b.cfg.Version()))
}

// Wait blocks until the server connection ends and every listener has
// returned. A connection closed by the server or by Close is not an error.
func (b *Bot) Wait() error {
	b.mu.RLock()
	job := b.job
	b.mu.RUnlock()
	if job == nil {
		return ErrNotConnected
	}

	err := job.Wait()
	b.closeConn()
	b.cfg.ListenerManager().Wait()

	if errors.Is(err, net.ErrClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close drops the server connection and forgets every user and channel. It
// does not wait for listeners; use Wait for that.
func (b *Bot) Close() {
	b.mu.Lock()
	stopClose, stopSignals, job := b.stopClose, b.stopSignals, b.job
	b.mu.Unlock()

	if stopClose != nil {
		stopClose()
	}
	if stopSignals != nil {
		stopSignals()
	}
	if job != nil {
		job.Cancel()
	}
	b.closeConn()
	b.users.Close()
}

func (b *Bot) closeConn() {
	b.mu.Lock()
	conn := b.conn
	b.conn = nil
	b.mu.Unlock()

	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		b.log.Debug().Err(err).Msg("error closing connection")
	}
	b.log.Info().Msg("disconnected")
}
