// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package input reads protocol lines from the server and turns them into
// state updates and events.
package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-irc-bot/internal/cap"
	"github.com/MKhiriev/go-irc-bot/internal/dao"
	"github.com/MKhiriev/go-irc-bot/internal/dcc"
	"github.com/MKhiriev/go-irc-bot/internal/hooks"
	"github.com/MKhiriev/go-irc-bot/internal/logger"
	"github.com/MKhiriev/go-irc-bot/internal/output"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineBytes bounds a single line read from the server, IRCv3 tags included.
const maxLineBytes = 8191 + 512

const ctcpDelimiter = "\u0001"

// Options configures a [Parser].
type Options struct {
	// Nick is the nick the bot registers with.
	Nick string
	// Encoding decodes the server stream. Defaults to UTF-8.
	Encoding encoding.Encoding
	// CapEnabled turns on capability negotiation.
	CapEnabled bool
	// CapHandlers take part in capability negotiation.
	CapHandlers []cap.Handler
	// AutoJoinChannels maps channel to key, joined after the welcome reply.
	AutoJoinChannels map[string]string
	// AutoNickChange retries registration with a numbered nick when the
	// nick is in use.
	AutoNickChange bool
}

// Parser consumes server lines. HandleLine is safe to call from one
// goroutine at a time; CurrentNick may be called from anywhere.
type Parser struct {
	opts       Options
	session    hooks.Session
	listeners  hooks.ListenerManager
	users      *dao.UserChannelDao
	serverInfo *dao.ServerInfo
	dcc        *dcc.Handler
	irc        *output.IRC
	capOut     *output.CAP
	log        *logger.Logger

	mu          sync.RWMutex
	nick        string
	nickAttempt int

	capPending []cap.Handler
	capLS      []string
	capDone    bool
}

// NewParser returns a Parser. dccHandler may be nil, in which case DCC
// queries are dispatched as plain CTCP events.
func NewParser(opts Options, session hooks.Session, listeners hooks.ListenerManager,
	users *dao.UserChannelDao, serverInfo *dao.ServerInfo, dccHandler *dcc.Handler,
	irc *output.IRC, capOut *output.CAP, log *logger.Logger) *Parser {
	if opts.Encoding == nil {
		opts.Encoding = unicode.UTF8
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Parser{
		opts:       opts,
		session:    session,
		listeners:  listeners,
		users:      users,
		serverInfo: serverInfo,
		dcc:        dccHandler,
		irc:        irc,
		capOut:     capOut,
		log:        log,
		nick:       opts.Nick,
		capPending: slices.Clone(opts.CapHandlers),
	}
}

// CurrentNick returns the nick the server currently knows the bot by.
func (p *Parser) CurrentNick() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.nick
}

func (p *Parser) setNick(nick string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nick = nick
}

// StartLineProcessing reads r until EOF, handling every line. It returns nil
// when the server closes the stream and the first fatal error otherwise.
func (p *Parser) StartLineProcessing(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(transform.NewReader(r, p.opts.Encoding.NewDecoder()))
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if err := p.HandleLine(ctx, line); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("read server line: %w", err)
	}
	p.log.Info().Msg("server closed the connection")
	return nil
}

// HandleLine processes one line received from the server. Errors are fatal
// to the connection: failed capability negotiation or a failed write.
func (p *Parser) HandleLine(ctx context.Context, line string) error {
	prefix, command, params := ParseLine(line)
	if command == "" {
		p.log.Debug().Str("line", line).Msg("ignoring unparsable line")
		return nil
	}
	p.log.Debug().Str("line", line).Msg("received")

	if err := p.process(ctx, line, prefix, command, params); err != nil {
		return fmt.Errorf("handle %s: %w", command, err)
	}

	p.listeners.Dispatch(ctx, hooks.NewLineEvent(p.session, line, prefix, command, params))
	return nil
}

func (p *Parser) process(ctx context.Context, line, prefix, command string, params []string) error {
	nick, login, host := SplitPrefix(prefix)

	switch command {
	case "001":
		if len(params) > 0 {
			p.setNick(params[0])
		}
		return p.autoJoin(ctx)
	case "004":
		if len(params) >= 3 {
			p.serverInfo.SetMyInfo(params[1], params[2])
		}
	case "005":
		if len(params) > 2 {
			p.serverInfo.ParseISupport(params[1 : len(params)-1])
		}
	case "332":
		if len(params) >= 3 {
			p.setTopic(params[1], params[2])
		}
	case "433":
		return p.nickInUse()
	case "CAP":
		return p.capability(ctx, line, params)
	case "NICK":
		if len(params) > 0 {
			p.nickChange(nick, params[0])
		}
	case "JOIN":
		if len(params) > 0 {
			p.join(nick, login, host, params[0])
		}
	case "PART":
		if len(params) > 0 && strings.EqualFold(nick, p.CurrentNick()) {
			p.users.RemoveChannel(params[0])
		}
	case "QUIT":
		p.users.RemoveUser(nick)
	case "TOPIC":
		if len(params) >= 2 {
			p.setTopic(params[0], params[1])
		}
	case "PRIVMSG":
		if len(params) >= 2 && isCtcp(params[1]) {
			p.ctcp(ctx, nick, login, host, params[0], params[1])
		}
	}
	return nil
}

func (p *Parser) autoJoin(ctx context.Context) error {
	channels := make([]string, 0, len(p.opts.AutoJoinChannels))
	for ch := range p.opts.AutoJoinChannels {
		channels = append(channels, ch)
	}
	slices.Sort(channels)

	for _, ch := range channels {
		if err := p.irc.JoinWithKey(ctx, ch, p.opts.AutoJoinChannels[ch]); err != nil {
			return fmt.Errorf("auto join %s: %w", ch, err)
		}
	}
	return nil
}

func (p *Parser) nickInUse() error {
	if !p.opts.AutoNickChange {
		return nil
	}

	p.mu.Lock()
	p.nickAttempt++
	nick := p.opts.Nick + strconv.Itoa(p.nickAttempt)
	p.nick = nick
	p.mu.Unlock()

	p.log.Info().Str("nick", nick).Msg("nick in use, retrying")
	return p.irc.ChangeNick(nick)
}

func (p *Parser) nickChange(oldNick, newNick string) {
	if strings.EqualFold(oldNick, p.CurrentNick()) {
		p.setNick(newNick)
	}
	if !p.users.UserExists(oldNick) {
		return
	}
	if err := p.users.RenameUser(oldNick, newNick); err != nil {
		p.log.Debug().Err(err).Str("from", oldNick).Str("to", newNick).Msg("rename user")
	}
}

func (p *Parser) join(nick, login, host, channel string) {
	if _, err := p.users.GetChannel(channel); err != nil {
		p.log.Debug().Err(err).Str("channel", channel).Msg("track channel")
		return
	}
	p.trackUser(nick, login, host)
}

func (p *Parser) setTopic(channel, topic string) {
	ch, err := p.users.GetChannel(channel)
	if err != nil {
		p.log.Debug().Err(err).Str("channel", channel).Msg("track topic")
		return
	}
	ch.SetTopic(topic)
}

func (p *Parser) trackUser(nick, login, host string) *dao.User {
	if nick == "" {
		return nil
	}
	user, err := p.users.GetUser(nick)
	if err != nil {
		p.log.Debug().Err(err).Str("nick", nick).Msg("track user")
		return nil
	}
	if login != "" || host != "" {
		user.SetHostmask(login, host)
	}
	return user
}

func (p *Parser) ctcp(ctx context.Context, nick, login, host, target, message string) {
	p.trackUser(nick, login, host)

	body := strings.Trim(message, ctcpDelimiter)
	command, args, _ := strings.Cut(body, " ")

	if strings.EqualFold(command, "DCC") && p.dcc != nil {
		handled, err := p.dcc.ProcessRequest(ctx, nick, args)
		if err != nil {
			p.log.Warn().Err(err).Str("nick", nick).Msg("bad DCC request")
			return
		}
		if handled {
			return
		}
	}

	p.listeners.Dispatch(ctx, hooks.NewCtcpEvent(p.session, nick, target, command, args))
}

// capability drives negotiation for one CAP line: params are
// <target> <subcommand> [*] :<capabilities>.
func (p *Parser) capability(ctx context.Context, line string, params []string) error {
	if !p.opts.CapEnabled || p.capDone || len(params) < 2 {
		return nil
	}

	sub := strings.ToUpper(params[1])
	caps := strings.Fields(params[len(params)-1])

	var handle func(cap.Handler) (bool, error)
	switch sub {
	case "LS":
		p.capLS = append(p.capLS, caps...)
		// A "*" before the list marks a continued multi-line reply.
		if len(params) >= 4 && params[2] == "*" {
			return nil
		}
		ls := p.capLS
		p.capLS = nil
		handle = func(h cap.Handler) (bool, error) { return h.HandleLS(ctx, p.capOut, ls) }
	case "ACK":
		handle = func(h cap.Handler) (bool, error) { return h.HandleACK(ctx, p.capOut, caps) }
	case "NAK":
		handle = func(h cap.Handler) (bool, error) { return h.HandleNAK(ctx, p.capOut, caps) }
	default:
		handle = func(h cap.Handler) (bool, error) { return h.HandleUnknown(ctx, p.capOut, line) }
	}

	var errs []error
	p.capPending = slices.DeleteFunc(p.capPending, func(h cap.Handler) bool {
		done, err := handle(h)
		if err != nil {
			errs = append(errs, err)
		}
		return done
	})
	if err := errors.Join(errs...); err != nil {
		return err
	}

	if len(p.capPending) == 0 {
		p.capDone = true
		p.log.Debug().Msg("capability negotiation finished")
		return p.capOut.End()
	}
	return nil
}

func isCtcp(message string) bool {
	return len(message) >= 2 && strings.HasPrefix(message, ctcpDelimiter) && strings.HasSuffix(message, ctcpDelimiter)
}

// ParseLine splits a raw protocol line into its source prefix, upper-cased
// command and parameters. Message tags are skipped. The trailing parameter,
// if any, is the last element of params.
func ParseLine(line string) (prefix, command string, params []string) {
	rest := strings.TrimLeft(line, " ")

	if strings.HasPrefix(rest, "@") {
		_, rest, _ = strings.Cut(rest, " ")
		rest = strings.TrimLeft(rest, " ")
	}
	if strings.HasPrefix(rest, ":") {
		prefix, rest, _ = strings.Cut(rest[1:], " ")
		rest = strings.TrimLeft(rest, " ")
	}

	command, rest, _ = strings.Cut(rest, " ")
	command = strings.ToUpper(command)

	for {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			break
		}
		if rest[0] == ':' {
			params = append(params, rest[1:])
			break
		}
		var param string
		param, rest, _ = strings.Cut(rest, " ")
		params = append(params, param)
	}
	return prefix, command, params
}

// SplitPrefix splits nick!login@host. A server name comes back as nick with
// empty login and host.
func SplitPrefix(prefix string) (nick, login, host string) {
	nick, hostmask, found := strings.Cut(prefix, "!")
	if !found {
		nick, host, _ = strings.Cut(prefix, "@")
		return nick, "", host
	}
	login, host, _ = strings.Cut(hostmask, "@")
	return nick, login, host
}
