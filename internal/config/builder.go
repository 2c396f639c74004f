// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net"
	"slices"
	"time"

	"github.com/MKhiriev/go-irc-bot/internal/cap"
	"github.com/MKhiriev/go-irc-bot/internal/hooks"
	"golang.org/x/net/proxy"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
)

// Builder accumulates settings for a [Configuration]. Setters return the
// same Builder so calls can be chained; nothing is validated until
// [Builder.Build]. A Builder must not be used from several goroutines at once.
//
// Collection setters store a copy of their argument and collection getters
// return a copy, so the Builder never shares a container with its caller.
type Builder struct {
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

	// listenerManager is created on first read when never set.
	listenerManager hooks.ListenerManager
	capEnabled      bool
	capHandlers     []cap.Handler
	factory         Factory
}

// NewBuilder returns a Builder holding the defaults and one capability
// handler enabling multi-prefix when the server offers it.
func NewBuilder() *Builder {
	return &Builder{
		name:                   DefaultName,
		login:                  DefaultName,
		version:                DefaultVersion,
		finger:                 DefaultFinger,
		channelPrefixes:        DefaultChannelPrefixes,
		dccPorts:               []int{},
		dccAcceptTimeout:       unset,
		dccResumeAcceptTimeout: unset,
		dccTransferBufferSize:  DefaultDCCTransferBufferSize,
		serverPort:             DefaultServerPort,
		socketFactory:          proxy.Direct,
		encoding:               unicode.UTF8,
		locale:                 defaultLocale(),
		socketTimeout:          DefaultSocketTimeout,
		maxLineLength:          DefaultMaxLineLength,
		autoSplitMessage:       true,
		messageDelay:           DefaultMessageDelay,
		shutdownHookEnabled:    true,
		autoJoinChannels:       map[string]string{},
		capHandlers:            []cap.Handler{cap.NewEnableHandler(DefaultCapability, true)},
		factory:                DefaultFactory{},
	}
}

// NewBuilderFromConfiguration returns a Builder seeded with every setting of
// cfg. The listener manager and factory are shared, collections are copied.
func NewBuilderFromConfiguration(cfg *Configuration) *Builder {
	return &Builder{
		name:            cfg.name,
		login:           cfg.login,
		version:         cfg.version,
		finger:          cfg.finger,
		channelPrefixes: cfg.channelPrefixes,

		webIRCEnabled:  cfg.webIRCEnabled,
		webIRCUsername: cfg.webIRCUsername,
		webIRCHostname: cfg.webIRCHostname,
		webIRCAddress:  slices.Clone(cfg.webIRCAddress),
		webIRCPassword: cfg.webIRCPassword,

		dccFilenameQuotes:      cfg.dccFilenameQuotes,
		dccPorts:               copySlice(cfg.dccPorts),
		dccLocalAddress:        slices.Clone(cfg.dccLocalAddress),
		dccAcceptTimeout:       cfg.dccAcceptTimeout,
		dccResumeAcceptTimeout: cfg.dccResumeAcceptTimeout,
		dccTransferBufferSize:  cfg.dccTransferBufferSize,
		dccPassiveRequest:      cfg.dccPassiveRequest,

		serverHostname:      cfg.serverHostname,
		serverPort:          cfg.serverPort,
		serverPassword:      cfg.serverPassword,
		socketFactory:       cfg.socketFactory,
		localAddress:        slices.Clone(cfg.localAddress),
		encoding:            cfg.encoding,
		locale:              cfg.locale,
		socketTimeout:       cfg.socketTimeout,
		maxLineLength:       cfg.maxLineLength,
		autoSplitMessage:    cfg.autoSplitMessage,
		autoNickChange:      cfg.autoNickChange,
		messageDelay:        cfg.messageDelay,
		shutdownHookEnabled: cfg.shutdownHookEnabled,
		autoJoinChannels:    copyMap(cfg.autoJoinChannels),
		identServerEnabled:  cfg.identServerEnabled,

		listenerManager: cfg.listenerManager,
		capEnabled:      cfg.capEnabled,
		capHandlers:     copySlice(cfg.capHandlers),
		factory:         cfg.factory,
	}
}

// NewBuilderFromBuilder returns an independent copy of other. Cascading
// settings are copied resolved, as NewBuilderFromConfiguration does.
func NewBuilderFromBuilder(other *Builder) *Builder {
	b := *other
	b.webIRCAddress = slices.Clone(other.webIRCAddress)
	b.dccPorts = copySlice(other.dccPorts)
	b.dccLocalAddress = other.DCCLocalAddress()
	b.dccAcceptTimeout = other.DCCAcceptTimeout()
	b.dccResumeAcceptTimeout = other.DCCResumeAcceptTimeout()
	b.localAddress = slices.Clone(other.localAddress)
	b.autoJoinChannels = copyMap(other.autoJoinChannels)
	b.capHandlers = copySlice(other.capHandlers)
	return &b
}

// ── identity ──────────────────────────────────────────────────────────────────

func (b *Builder) Name() string { return b.name }

func (b *Builder) SetName(name string) *Builder {
	b.name = name
	return b
}

func (b *Builder) Login() string { return b.login }

func (b *Builder) SetLogin(login string) *Builder {
	b.login = login
	return b
}

func (b *Builder) Version() string { return b.version }

// SetVersion sets the CTCP VERSION reply.
func (b *Builder) SetVersion(version string) *Builder {
	b.version = version
	return b
}

func (b *Builder) Finger() string { return b.finger }

// SetFinger sets the CTCP FINGER reply.
func (b *Builder) SetFinger(finger string) *Builder {
	b.finger = finger
	return b
}

func (b *Builder) ChannelPrefixes() string { return b.channelPrefixes }

func (b *Builder) SetChannelPrefixes(prefixes string) *Builder {
	b.channelPrefixes = prefixes
	return b
}

// ── WebIRC ────────────────────────────────────────────────────────────────────

func (b *Builder) WebIRCEnabled() bool { return b.webIRCEnabled }

func (b *Builder) SetWebIRCEnabled(enabled bool) *Builder {
	b.webIRCEnabled = enabled
	return b
}

func (b *Builder) WebIRCUsername() string { return b.webIRCUsername }

func (b *Builder) SetWebIRCUsername(username string) *Builder {
	b.webIRCUsername = username
	return b
}

func (b *Builder) WebIRCHostname() string { return b.webIRCHostname }

func (b *Builder) SetWebIRCHostname(hostname string) *Builder {
	b.webIRCHostname = hostname
	return b
}

func (b *Builder) WebIRCAddress() net.IP { return slices.Clone(b.webIRCAddress) }

func (b *Builder) SetWebIRCAddress(addr net.IP) *Builder {
	b.webIRCAddress = slices.Clone(addr)
	return b
}

func (b *Builder) WebIRCPassword() string { return b.webIRCPassword }

func (b *Builder) SetWebIRCPassword(password string) *Builder {
	b.webIRCPassword = password
	return b
}

// ── DCC ───────────────────────────────────────────────────────────────────────

func (b *Builder) DCCFilenameQuotes() bool { return b.dccFilenameQuotes }

func (b *Builder) SetDCCFilenameQuotes(quotes bool) *Builder {
	b.dccFilenameQuotes = quotes
	return b
}

func (b *Builder) DCCPorts() []int { return copySlice(b.dccPorts) }

func (b *Builder) SetDCCPorts(ports []int) *Builder {
	b.dccPorts = copySlice(ports)
	return b
}

// AddDCCPort appends one port to the DCC port set.
func (b *Builder) AddDCCPort(port int) *Builder {
	b.dccPorts = append(b.dccPorts, port)
	return b
}

// DCCLocalAddress returns the explicit DCC bind address, or LocalAddress when
// none was set.
func (b *Builder) DCCLocalAddress() net.IP {
	if b.dccLocalAddress != nil {
		return slices.Clone(b.dccLocalAddress)
	}
	return b.LocalAddress()
}

// SetDCCLocalAddress sets the DCC bind address. Nil falls back to LocalAddress.
func (b *Builder) SetDCCLocalAddress(addr net.IP) *Builder {
	b.dccLocalAddress = slices.Clone(addr)
	return b
}

// DCCAcceptTimeout returns the explicit accept timeout, or SocketTimeout when
// none was set. It is resolved on every call.
func (b *Builder) DCCAcceptTimeout() time.Duration {
	if b.dccAcceptTimeout != unset {
		return b.dccAcceptTimeout
	}
	return b.socketTimeout
}

// SetDCCAcceptTimeout sets the accept timeout. -1 falls back to SocketTimeout.
func (b *Builder) SetDCCAcceptTimeout(timeout time.Duration) *Builder {
	b.dccAcceptTimeout = timeout
	return b
}

// DCCResumeAcceptTimeout returns the explicit resume accept timeout, or
// DCCAcceptTimeout when none was set. It is resolved on every call.
func (b *Builder) DCCResumeAcceptTimeout() time.Duration {
	if b.dccResumeAcceptTimeout != unset {
		return b.dccResumeAcceptTimeout
	}
	return b.DCCAcceptTimeout()
}

// SetDCCResumeAcceptTimeout sets the resume accept timeout. -1 falls back to
// DCCAcceptTimeout.
func (b *Builder) SetDCCResumeAcceptTimeout(timeout time.Duration) *Builder {
	b.dccResumeAcceptTimeout = timeout
	return b
}

func (b *Builder) DCCTransferBufferSize() int { return b.dccTransferBufferSize }

func (b *Builder) SetDCCTransferBufferSize(size int) *Builder {
	b.dccTransferBufferSize = size
	return b
}

func (b *Builder) DCCPassiveRequest() bool { return b.dccPassiveRequest }

func (b *Builder) SetDCCPassiveRequest(passive bool) *Builder {
	b.dccPassiveRequest = passive
	return b
}

// ── connection ────────────────────────────────────────────────────────────────

func (b *Builder) ServerHostname() string { return b.serverHostname }

func (b *Builder) SetServerHostname(hostname string) *Builder {
	b.serverHostname = hostname
	return b
}

func (b *Builder) ServerPort() int { return b.serverPort }

func (b *Builder) SetServerPort(port int) *Builder {
	b.serverPort = port
	return b
}

func (b *Builder) ServerPassword() string { return b.serverPassword }

func (b *Builder) SetServerPassword(password string) *Builder {
	b.serverPassword = password
	return b
}

// SetServer sets the server host and port together.
func (b *Builder) SetServer(hostname string, port int) *Builder {
	return b.SetServerHostname(hostname).SetServerPort(port)
}

// SetServerWithPassword sets the server host, port and password together.
func (b *Builder) SetServerWithPassword(hostname string, port int, password string) *Builder {
	return b.SetServer(hostname, port).SetServerPassword(password)
}

func (b *Builder) SocketFactory() proxy.ContextDialer { return b.socketFactory }

// SetSocketFactory sets the dialer used to reach the server, for example a
// SOCKS5 dialer from golang.org/x/net/proxy.
func (b *Builder) SetSocketFactory(dialer proxy.ContextDialer) *Builder {
	b.socketFactory = dialer
	return b
}

func (b *Builder) LocalAddress() net.IP { return slices.Clone(b.localAddress) }

// SetLocalAddress sets the local address outgoing connections bind to. Nil
// means the platform default.
func (b *Builder) SetLocalAddress(addr net.IP) *Builder {
	b.localAddress = slices.Clone(addr)
	return b
}

func (b *Builder) Encoding() encoding.Encoding { return b.encoding }

func (b *Builder) SetEncoding(enc encoding.Encoding) *Builder {
	b.encoding = enc
	return b
}

func (b *Builder) Locale() language.Tag { return b.locale }

// SetLocale sets the case folding locale. language.Und counts as unset.
func (b *Builder) SetLocale(locale language.Tag) *Builder {
	b.locale = locale
	return b
}

func (b *Builder) SocketTimeout() time.Duration { return b.socketTimeout }

func (b *Builder) SetSocketTimeout(timeout time.Duration) *Builder {
	b.socketTimeout = timeout
	return b
}

func (b *Builder) MaxLineLength() int { return b.maxLineLength }

func (b *Builder) SetMaxLineLength(length int) *Builder {
	b.maxLineLength = length
	return b
}

func (b *Builder) AutoSplitMessage() bool { return b.autoSplitMessage }

func (b *Builder) SetAutoSplitMessage(split bool) *Builder {
	b.autoSplitMessage = split
	return b
}

func (b *Builder) AutoNickChange() bool { return b.autoNickChange }

func (b *Builder) SetAutoNickChange(change bool) *Builder {
	b.autoNickChange = change
	return b
}

func (b *Builder) MessageDelay() time.Duration { return b.messageDelay }

func (b *Builder) SetMessageDelay(delay time.Duration) *Builder {
	b.messageDelay = delay
	return b
}

func (b *Builder) ShutdownHookEnabled() bool { return b.shutdownHookEnabled }

func (b *Builder) SetShutdownHookEnabled(enabled bool) *Builder {
	b.shutdownHookEnabled = enabled
	return b
}

func (b *Builder) AutoJoinChannels() map[string]string { return copyMap(b.autoJoinChannels) }

// SetAutoJoinChannels replaces the channels joined after connecting.
func (b *Builder) SetAutoJoinChannels(channels map[string]string) *Builder {
	b.autoJoinChannels = copyMap(channels)
	return b
}

// AddAutoJoinChannel adds a channel without a key.
func (b *Builder) AddAutoJoinChannel(channel string) *Builder {
	return b.AddAutoJoinChannelWithKey(channel, "")
}

// AddAutoJoinChannelWithKey adds a channel joined with key.
func (b *Builder) AddAutoJoinChannelWithKey(channel, key string) *Builder {
	if b.autoJoinChannels == nil {
		b.autoJoinChannels = map[string]string{}
	}
	b.autoJoinChannels[channel] = key
	return b
}

func (b *Builder) IdentServerEnabled() bool { return b.identServerEnabled }

func (b *Builder) SetIdentServerEnabled(enabled bool) *Builder {
	b.identServerEnabled = enabled
	return b
}

// ── extension ─────────────────────────────────────────────────────────────────

// ListenerManager returns the listener registry. When none was set, a
// [hooks.ThreadedListenerManager] holding core hooks is created on the first
// call and returned from then on.
func (b *Builder) ListenerManager() hooks.ListenerManager {
	if b.listenerManager == nil {
		b.listenerManager = hooks.NewThreadedListenerManager(hooks.NewCoreHooks())
	}
	return b.listenerManager
}

// SetListenerManager sets the listener registry, adding core hooks to it when
// none of its listeners is one. Nil restores the lazily created default.
func (b *Builder) SetListenerManager(manager hooks.ListenerManager) *Builder {
	if manager != nil && hooks.CountCoreHooks(manager.Listeners()) == 0 {
		manager.AddListener(hooks.NewCoreHooks())
	}
	b.listenerManager = manager
	return b
}

// AddListener registers l with the listener registry.
func (b *Builder) AddListener(l hooks.Listener) *Builder {
	b.ListenerManager().AddListener(l)
	return b
}

func (b *Builder) CapEnabled() bool { return b.capEnabled }

func (b *Builder) SetCapEnabled(enabled bool) *Builder {
	b.capEnabled = enabled
	return b
}

func (b *Builder) CapHandlers() []cap.Handler { return copySlice(b.capHandlers) }

// SetCapHandlers replaces the capability negotiation handlers.
func (b *Builder) SetCapHandlers(handlers []cap.Handler) *Builder {
	b.capHandlers = copySlice(handlers)
	return b
}

// AddCapHandler appends one capability negotiation handler.
func (b *Builder) AddCapHandler(handler cap.Handler) *Builder {
	b.capHandlers = append(b.capHandlers, handler)
	return b
}

func (b *Builder) Factory() Factory { return b.factory }

// SetFactory sets the factory subsystems are built with.
func (b *Builder) SetFactory(factory Factory) *Builder {
	b.factory = factory
	return b
}
