// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dao

import (
	"maps"
	"strings"
	"sync"
)

// User is one IRC user known to the bot.
type User struct {
	mu       sync.RWMutex
	nick     string
	login    string
	hostname string
}

// NewUser creates a user with the given nick.
func NewUser(nick string) *User {
	return &User{nick: nick}
}

// Nick returns the user's current nick.
func (u *User) Nick() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.nick
}

// Login returns the user's login (ident), if seen.
func (u *User) Login() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.login
}

// Hostname returns the user's hostname, if seen.
func (u *User) Hostname() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.hostname
}

// SetHostmask records the login and hostname parts of a nick!login@host
// prefix. Empty values leave the stored ones untouched.
func (u *User) SetHostmask(login, hostname string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if login != "" {
		u.login = login
	}
	if hostname != "" {
		u.hostname = hostname
	}
}

func (u *User) setNick(nick string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.nick = nick
}

// Channel is one IRC channel known to the bot.
type Channel struct {
	mu    sync.RWMutex
	name  string
	topic string
}

// NewChannel creates a channel with the given name.
func NewChannel(name string) *Channel {
	return &Channel{name: name}
}

// Name returns the channel name including its prefix.
func (c *Channel) Name() string {
	return c.name
}

// Topic returns the last topic seen for the channel.
func (c *Channel) Topic() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topic
}

// SetTopic records the channel topic.
func (c *Channel) SetTopic(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topic = topic
}

// ServerInfo collects what the server announced about itself in the
// RPL_MYINFO (004) and RPL_ISUPPORT (005) replies.
type ServerInfo struct {
	mu            sync.RWMutex
	serverName    string
	serverVersion string
	isupport      map[string]string
}

// NewServerInfo returns an empty ServerInfo.
func NewServerInfo() *ServerInfo {
	return &ServerInfo{isupport: make(map[string]string)}
}

// SetMyInfo records the server name and version from RPL_MYINFO.
func (s *ServerInfo) SetMyInfo(name, version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverName = name
	s.serverVersion = version
}

// ServerName returns the announced server name.
func (s *ServerInfo) ServerName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serverName
}

// ServerVersion returns the announced server version.
func (s *ServerInfo) ServerVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serverVersion
}

// ParseISupport records KEY=VALUE tokens from RPL_ISUPPORT. Tokens without a
// value are stored with an empty value; "-KEY" removes a previous entry.
func (s *ServerInfo) ParseISupport(tokens []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if strings.HasPrefix(tok, "-") {
			delete(s.isupport, strings.ToUpper(tok[1:]))
			continue
		}
		key, value, _ := strings.Cut(tok, "=")
		s.isupport[strings.ToUpper(key)] = value
	}
}

// ISupport returns the value announced for key.
func (s *ServerInfo) ISupport(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.isupport[strings.ToUpper(key)]
	return v, ok
}

// ISupportAll returns a copy of every announced token.
func (s *ServerInfo) ISupportAll() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.isupport)
}
