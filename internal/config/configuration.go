// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"maps"
	"net"
	"slices"
	"time"

	"github.com/MKhiriev/go-irc-bot/internal/cap"
	"github.com/MKhiriev/go-irc-bot/internal/hooks"
	"github.com/rs/zerolog"
	"golang.org/x/net/proxy"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/language"
)

const redacted = "[REDACTED]"

// Configuration is the validated, immutable set of bot settings produced by
// [Builder.Build]. Collection getters return copies, so a Configuration may
// be shared between goroutines freely.
type Configuration struct {
	name            string
	login           string
	version         string
	finger          string
	channelPrefixes string

	webIRCEnabled  bool
	webIRCUsername string
	webIRCHostname string
	webIRCAddress  net.IP
	webIRCPassword string

	dccFilenameQuotes      bool
	dccPorts               []int
	dccLocalAddress        net.IP
	dccAcceptTimeout       time.Duration
	dccResumeAcceptTimeout time.Duration
	dccTransferBufferSize  int
	dccPassiveRequest      bool

	serverHostname      string
	serverPort          int
	serverPassword      string
	socketFactory       proxy.ContextDialer
	localAddress        net.IP
	encoding            encoding.Encoding
	locale              language.Tag
	socketTimeout       time.Duration
	maxLineLength       int
	autoSplitMessage    bool
	autoNickChange      bool
	messageDelay        time.Duration
	shutdownHookEnabled bool
	autoJoinChannels    map[string]string
	identServerEnabled  bool

	listenerManager hooks.ListenerManager
	capEnabled      bool
	capHandlers     []cap.Handler
	factory         Factory
}

// newConfiguration snapshots b. Cascading settings are stored resolved.
func newConfiguration(b *Builder) *Configuration {
	return &Configuration{
		name:            b.name,
		login:           b.login,
		version:         b.version,
		finger:          b.finger,
		channelPrefixes: b.channelPrefixes,

		webIRCEnabled:  b.webIRCEnabled,
		webIRCUsername: b.webIRCUsername,
		webIRCHostname: b.webIRCHostname,
		webIRCAddress:  slices.Clone(b.webIRCAddress),
		webIRCPassword: b.webIRCPassword,

		dccFilenameQuotes:      b.dccFilenameQuotes,
		dccPorts:               copySlice(b.dccPorts),
		dccLocalAddress:        b.DCCLocalAddress(),
		dccAcceptTimeout:       b.DCCAcceptTimeout(),
		dccResumeAcceptTimeout: b.DCCResumeAcceptTimeout(),
		dccTransferBufferSize:  b.dccTransferBufferSize,
		dccPassiveRequest:      b.dccPassiveRequest,

		serverHostname:      b.serverHostname,
		serverPort:          b.serverPort,
		serverPassword:      b.serverPassword,
		socketFactory:       b.socketFactory,
		localAddress:        slices.Clone(b.localAddress),
		encoding:            b.encoding,
		locale:              b.locale,
		socketTimeout:       b.socketTimeout,
		maxLineLength:       b.maxLineLength,
		autoSplitMessage:    b.autoSplitMessage,
		autoNickChange:      b.autoNickChange,
		messageDelay:        b.messageDelay,
		shutdownHookEnabled: b.shutdownHookEnabled,
		autoJoinChannels:    copyMap(b.autoJoinChannels),
		identServerEnabled:  b.identServerEnabled,

		listenerManager: b.ListenerManager(),
		capEnabled:      b.capEnabled,
		capHandlers:     copySlice(b.capHandlers),
		factory:         b.factory,
	}
}

// Name returns the nick the bot registers with.
func (c *Configuration) Name() string { return c.name }

// Login returns the user name sent in USER.
func (c *Configuration) Login() string { return c.login }

// Version returns the CTCP VERSION reply.
func (c *Configuration) Version() string { return c.version }

// Finger returns the CTCP FINGER reply.
func (c *Configuration) Finger() string { return c.finger }

// ChannelPrefixes returns the characters a channel name may start with.
func (c *Configuration) ChannelPrefixes() string { return c.channelPrefixes }

// WebIRCEnabled reports whether a WEBIRC line is sent on connect.
func (c *Configuration) WebIRCEnabled() bool { return c.webIRCEnabled }

// WebIRCUsername returns the WEBIRC gateway user name.
func (c *Configuration) WebIRCUsername() string { return c.webIRCUsername }

// WebIRCHostname returns the host name WEBIRC reports for the client.
func (c *Configuration) WebIRCHostname() string { return c.webIRCHostname }

// WebIRCAddress returns the address WEBIRC reports for the client.
func (c *Configuration) WebIRCAddress() net.IP { return slices.Clone(c.webIRCAddress) }

// WebIRCPassword returns the WEBIRC gateway password.
func (c *Configuration) WebIRCPassword() string { return c.webIRCPassword }

// DCCFilenameQuotes reports whether DCC file names are always quoted.
func (c *Configuration) DCCFilenameQuotes() bool { return c.dccFilenameQuotes }

// DCCPorts returns the ports DCC offers may listen on.
func (c *Configuration) DCCPorts() []int { return copySlice(c.dccPorts) }

// DCCLocalAddress returns the address DCC listeners bind to.
func (c *Configuration) DCCLocalAddress() net.IP { return slices.Clone(c.dccLocalAddress) }

// DCCAcceptTimeout returns how long a DCC offer waits for the peer.
func (c *Configuration) DCCAcceptTimeout() time.Duration { return c.dccAcceptTimeout }

// DCCResumeAcceptTimeout returns how long a resumed DCC offer waits for the peer.
func (c *Configuration) DCCResumeAcceptTimeout() time.Duration { return c.dccResumeAcceptTimeout }

// DCCTransferBufferSize returns the DCC file transfer buffer size in bytes.
func (c *Configuration) DCCTransferBufferSize() int { return c.dccTransferBufferSize }

// DCCPassiveRequest reports whether DCC offers are passive.
func (c *Configuration) DCCPassiveRequest() bool { return c.dccPassiveRequest }

// ServerHostname returns the IRC server host.
func (c *Configuration) ServerHostname() string { return c.serverHostname }

// ServerPort returns the IRC server port.
func (c *Configuration) ServerPort() int { return c.serverPort }

// ServerPassword returns the PASS sent on connect. Empty means none.
func (c *Configuration) ServerPassword() string { return c.serverPassword }

// SocketFactory returns the dialer used to reach the server.
func (c *Configuration) SocketFactory() proxy.ContextDialer { return c.socketFactory }

// LocalAddress returns the local address to bind outgoing connections to.
// Nil means the platform default.
func (c *Configuration) LocalAddress() net.IP { return slices.Clone(c.localAddress) }

// Encoding returns the charset of the server connection.
func (c *Configuration) Encoding() encoding.Encoding { return c.encoding }

// Locale returns the locale nicks and channels are case folded with.
func (c *Configuration) Locale() language.Tag { return c.locale }

// SocketTimeout returns the connect and read timeout of the server socket.
func (c *Configuration) SocketTimeout() time.Duration { return c.socketTimeout }

// MaxLineLength returns the longest line sent to the server.
func (c *Configuration) MaxLineLength() int { return c.maxLineLength }

// AutoSplitMessage reports whether long messages are split over several lines.
func (c *Configuration) AutoSplitMessage() bool { return c.autoSplitMessage }

// AutoNickChange reports whether a numbered nick is tried when the nick is taken.
func (c *Configuration) AutoNickChange() bool { return c.autoNickChange }

// MessageDelay returns the minimum pause between paced lines.
func (c *Configuration) MessageDelay() time.Duration { return c.messageDelay }

// ShutdownHookEnabled reports whether the bot quits cleanly on SIGINT/SIGTERM.
func (c *Configuration) ShutdownHookEnabled() bool { return c.shutdownHookEnabled }

// AutoJoinChannels returns the channels joined after connecting, mapped to
// their keys.
func (c *Configuration) AutoJoinChannels() map[string]string { return copyMap(c.autoJoinChannels) }

// IdentServerEnabled reports whether the bot registers with an ident server.
func (c *Configuration) IdentServerEnabled() bool { return c.identServerEnabled }

// ListenerManager returns the listener registry events are dispatched to.
func (c *Configuration) ListenerManager() hooks.ListenerManager { return c.listenerManager }

// CapEnabled reports whether capability negotiation runs on connect.
func (c *Configuration) CapEnabled() bool { return c.capEnabled }

// CapHandlers returns the capability negotiation handlers in order.
func (c *Configuration) CapHandlers() []cap.Handler { return copySlice(c.capHandlers) }

// Factory returns the factory subsystems are built with.
func (c *Configuration) Factory() Factory { return c.factory }

// MarshalZerologObject implements zerolog.LogObjectMarshaler. Passwords are
// redacted.
func (c *Configuration) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", c.name).
		Str("login", c.login).
		Str("server_hostname", c.serverHostname).
		Int("server_port", c.serverPort).
		Str("server_password", redact(c.serverPassword)).
		Bool("webirc_enabled", c.webIRCEnabled).
		Str("webirc_password", redact(c.webIRCPassword)).
		Str("locale", c.locale.String()).
		Dur("socket_timeout", c.socketTimeout).
		Dur("message_delay", c.messageDelay).
		Int("max_line_length", c.maxLineLength).
		Ints("dcc_ports", c.dccPorts).
		Bool("cap_enabled", c.capEnabled).
		Int("cap_handlers", len(c.capHandlers))

	if name, err := htmlindex.Name(c.encoding); err == nil {
		e.Str("encoding", name)
	}
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}

// copySlice always returns a fresh, non-nil slice.
func copySlice[T any](s []T) []T {
	return append(make([]T, 0, len(s)), s...)
}

// copyMap always returns a fresh, non-nil map.
func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	maps.Copy(out, m)
	return out
}
