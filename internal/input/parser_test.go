// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package input

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-irc-bot/internal/cap"
	"github.com/MKhiriev/go-irc-bot/internal/dao"
	"github.com/MKhiriev/go-irc-bot/internal/dcc"
	"github.com/MKhiriev/go-irc-bot/internal/hooks"
	"github.com/MKhiriev/go-irc-bot/internal/logger"
	"github.com/MKhiriev/go-irc-bot/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type stubSession struct{}

func (stubSession) Nick() string { return "bot" }
func (stubSession) CtcpVersion() string { return "v" }
func (stubSession) CtcpFinger() string { return "f" }
func (stubSession) SendRawLine(context.Context, string) error { return nil }

type recorder struct {
	mu     sync.Mutex
	events []hooks.Event
}

func (r *recorder) OnEvent(_ context.Context, e hooks.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) ctcp() []*hooks.CtcpEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*hooks.CtcpEvent
	for _, e := range r.events {
		if c, ok := e.(*hooks.CtcpEvent); ok {
			out = append(out, c)
		}
	}
	return out
}

type fixture struct {
	parser     *Parser
	rec        *recorder
	mgr        *hooks.ThreadedListenerManager
	users      *dao.UserChannelDao
	serverInfo *dao.ServerInfo
	sent       *bytes.Buffer
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	var sent bytes.Buffer
	raw := output.NewRaw(func() io.Writer { return &sent }, output.RawOptions{MaxLineLength: 512})
	irc := output.NewIRC(raw)

	rec := &recorder{}
	mgr := hooks.NewThreadedListenerManager(rec)
	users := dao.NewUserChannelDao(dao.Options{Locale: language.English, ChannelPrefixes: "#&"})
	info := dao.NewServerInfo()
	handler := dcc.NewHandler(dcc.HandlerOptions{}, stubSession{}, mgr, users, output.NewDCC(irc, false))

	p := NewParser(opts, stubSession{}, mgr, users, info, handler, irc, output.NewCAP(raw), logger.Nop())
	return &fixture{parser: p, rec: rec, mgr: mgr, users: users, serverInfo: info, sent: &sent}
}

func (f *fixture) handle(t *testing.T, lines ...string) {
	t.Helper()
	for _, l := range lines {
		require.NoError(t, f.parser.HandleLine(context.Background(), l))
	}
	f.mgr.Wait()
}

func (f *fixture) sentLines() []string {
	out := strings.Split(f.sent.String(), "\r\n")
	return out[:len(out)-1]
}

// ── ParseLine ─────────────────────────────────────────────────────────────────

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		prefix  string
		command string
		params  []string
	}{
		{
			name:    "ping",
			line:    "PING :irc.example.net",
			command: "PING",
			params:  []string{"irc.example.net"},
		},
		{
			name:    "privmsg with prefix",
			line:    ":alice!al@host PRIVMSG #go :hello there",
			prefix:  "alice!al@host",
			command: "PRIVMSG",
			params:  []string{"#go", "hello there"},
		},
		{
			name:    "numeric without trailing",
			line:    ":srv 004 bot srv ircd-1.0 iw ov",
			prefix:  "srv",
			command: "004",
			params:  []string{"bot", "srv", "ircd-1.0", "iw", "ov"},
		},
		{
			name:    "tags are skipped and command upper-cased",
			line:    "@time=2020-01-01T00:00:00Z :srv notice bot :hi",
			prefix:  "srv",
			command: "NOTICE",
			params:  []string{"bot", "hi"},
		},
		{
			name:    "empty trailing",
			line:    "TOPIC #go :",
			command: "TOPIC",
			params:  []string{"#go", ""},
		},
		{
			name: "blank",
			line: "   ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, command, params := ParseLine(tt.line)
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.command, command)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestSplitPrefix(t *testing.T) {
	nick, login, host := SplitPrefix("alice!al@example.org")
	assert.Equal(t, []string{"alice", "al", "example.org"}, []string{nick, login, host})

	nick, login, host = SplitPrefix("irc.example.net")
	assert.Equal(t, []string{"irc.example.net", "", ""}, []string{nick, login, host})
}

// ── registration ──────────────────────────────────────────────────────────────

func TestWelcome_AutoJoinsSorted(t *testing.T) {
	f := newFixture(t, Options{
		Nick:             "bot",
		AutoJoinChannels: map[string]string{"#zeta": "", "#alpha": "key"},
	})

	f.handle(t, ":srv 001 bot_ :Welcome")

	assert.Equal(t, []string{"JOIN #alpha key", "JOIN #zeta"}, f.sentLines())
	assert.Equal(t, "bot_", f.parser.CurrentNick())
}

func TestServerInfoNumerics(t *testing.T) {
	f := newFixture(t, Options{Nick: "bot"})

	f.handle(t,
		":srv 004 bot irc.example.net ircd-2.0 iw ov",
		":srv 005 bot CHANTYPES=# NICKLEN=30 :are supported by this server",
	)

	assert.Equal(t, "irc.example.net", f.serverInfo.ServerName())
	assert.Equal(t, "ircd-2.0", f.serverInfo.ServerVersion())
	v, ok := f.serverInfo.ISupport("NICKLEN")
	assert.True(t, ok)
	assert.Equal(t, "30", v)
}

func TestNickInUse(t *testing.T) {
	t.Run("auto change retries with a numbered nick", func(t *testing.T) {
		f := newFixture(t, Options{Nick: "bot", AutoNickChange: true})

		f.handle(t, ":srv 433 * bot :Nickname is already in use", ":srv 433 * bot1 :Nickname is already in use")

		assert.Equal(t, []string{"NICK bot1", "NICK bot2"}, f.sentLines())
		assert.Equal(t, "bot2", f.parser.CurrentNick())
	})

	t.Run("without auto change nothing is sent", func(t *testing.T) {
		f := newFixture(t, Options{Nick: "bot"})

		f.handle(t, ":srv 433 * bot :Nickname is already in use")

		assert.Empty(t, f.sent.String())
		assert.Equal(t, "bot", f.parser.CurrentNick())
	})
}

// ── tracking ──────────────────────────────────────────────────────────────────

func TestJoinNickQuitTracking(t *testing.T) {
	f := newFixture(t, Options{Nick: "bot"})

	f.handle(t, ":alice!al@example.org JOIN #go")
	require.True(t, f.users.ChannelExists("#go"))
	user, err := f.users.GetUser("alice")
	require.NoError(t, err)
	assert.Equal(t, "al", user.Login())
	assert.Equal(t, "example.org", user.Hostname())

	f.handle(t, ":alice!al@example.org NICK :alicia")
	assert.False(t, f.users.UserExists("alice"))
	assert.True(t, f.users.UserExists("alicia"))

	f.handle(t, ":alicia!al@example.org QUIT :bye")
	assert.False(t, f.users.UserExists("alicia"))
}

func TestOwnNickChangeAndPart(t *testing.T) {
	f := newFixture(t, Options{Nick: "bot"})

	f.handle(t, ":bot!b@h JOIN #go", ":bot!b@h NICK robot")
	assert.Equal(t, "robot", f.parser.CurrentNick())

	f.handle(t, ":robot!b@h PART #go :later")
	assert.False(t, f.users.ChannelExists("#go"))
}

func TestTopic(t *testing.T) {
	f := newFixture(t, Options{Nick: "bot"})

	f.handle(t, ":srv 332 bot #go :first topic")
	ch, err := f.users.GetChannel("#go")
	require.NoError(t, err)
	assert.Equal(t, "first topic", ch.Topic())

	f.handle(t, ":alice!a@h TOPIC #go :second")
	assert.Equal(t, "second", ch.Topic())
}

// ── CTCP / DCC ────────────────────────────────────────────────────────────────

func TestCtcpDispatched(t *testing.T) {
	f := newFixture(t, Options{Nick: "bot"})

	f.handle(t, ":alice!a@h PRIVMSG bot :\u0001version\u0001")

	events := f.rec.ctcp()
	require.Len(t, events, 1)
	assert.Equal(t, "alice", events[0].Source)
	assert.Equal(t, "bot", events[0].Target)
	assert.Equal(t, "VERSION", events[0].Command)
	assert.Empty(t, events[0].Args)
}

func TestDccRoutedToHandler(t *testing.T) {
	f := newFixture(t, Options{Nick: "bot"})

	f.handle(t, ":alice!a@h PRIVMSG bot :\u0001DCC CHAT chat 3232235521 5000\u0001")

	assert.Empty(t, f.rec.ctcp())
	var chat *dcc.IncomingChatRequestEvent
	for _, e := range f.rec.events {
		if c, ok := e.(*dcc.IncomingChatRequestEvent); ok {
			chat = c
		}
	}
	require.NotNil(t, chat)
	assert.Equal(t, 5000, chat.Port)
}

func TestMalformedDccIsNotFatal(t *testing.T) {
	f := newFixture(t, Options{Nick: "bot"})

	f.handle(t, ":alice!a@h PRIVMSG bot :\u0001DCC CHAT\u0001")

	assert.Empty(t, f.rec.ctcp())
}

// ── CAP ───────────────────────────────────────────────────────────────────────

func TestCapNegotiation(t *testing.T) {
	f := newFixture(t, Options{
		Nick:        "bot",
		CapEnabled:  true,
		CapHandlers: []cap.Handler{cap.NewEnableHandler("multi-prefix", false)},
	})

	f.handle(t,
		":srv CAP * LS * :sasl",
		":srv CAP * LS :multi-prefix away-notify",
		":srv CAP bot ACK :multi-prefix",
	)

	assert.Equal(t, []string{"CAP REQ :multi-prefix", "CAP END"}, f.sentLines())

	// Late CAP lines after negotiation are ignored.
	f.handle(t, ":srv CAP bot ACK :multi-prefix")
	assert.Len(t, f.sentLines(), 2)
}

func TestCapNegotiation_NoHandlersEndsImmediately(t *testing.T) {
	f := newFixture(t, Options{Nick: "bot", CapEnabled: true})

	f.handle(t, ":srv CAP * LS :sasl")

	assert.Equal(t, []string{"CAP END"}, f.sentLines())
}

func TestCapNegotiation_RequiredCapabilityMissing(t *testing.T) {
	f := newFixture(t, Options{
		Nick:        "bot",
		CapEnabled:  true,
		CapHandlers: []cap.Handler{cap.NewEnableHandler("sasl", false)},
	})

	err := f.parser.HandleLine(context.Background(), ":srv CAP * LS :multi-prefix")
	assert.ErrorIs(t, err, cap.ErrCapabilityUnsupported)
}

func TestCapDisabledIgnoresCapLines(t *testing.T) {
	f := newFixture(t, Options{Nick: "bot"})

	f.handle(t, ":srv CAP * LS :multi-prefix")

	assert.Empty(t, f.sent.String())
}

// ── line processing ───────────────────────────────────────────────────────────

func TestStartLineProcessing(t *testing.T) {
	f := newFixture(t, Options{Nick: "bot", Encoding: charmap.ISO8859_1})

	stream := strings.NewReader("PING :one\r\n\r\n:srv NOTICE bot :caf\xe9\r\n")
	require.NoError(t, f.parser.StartLineProcessing(context.Background(), stream))
	f.mgr.Wait()

	var got []*hooks.LineEvent
	for _, e := range f.rec.events {
		if l, ok := e.(*hooks.LineEvent); ok {
			got = append(got, l)
		}
	}
	require.Len(t, got, 2)
	assert.Equal(t, "PING", got[0].Command)
	assert.Equal(t, "café", got[1].Trailing())
}

func TestStartLineProcessing_Cancelled(t *testing.T) {
	f := newFixture(t, Options{Nick: "bot"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.parser.StartLineProcessing(ctx, strings.NewReader("PING :x\r\n"))
	assert.ErrorIs(t, err, context.Canceled)
}
