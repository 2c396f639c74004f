// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dao is the bot's identity directory: the users and channels it has
// seen, looked up by name with locale-aware case folding, plus what the
// server announced about itself.
package dao

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sentinel errors returned by [UserChannelDao].
var (
	// ErrNotAChannel is returned when a name does not start with one of the
	// configured channel prefixes.
	ErrNotAChannel = errors.New("name is not a channel")
	// ErrBlankName is returned for empty nicks or channel names.
	ErrBlankName = errors.New("name is blank")
	// ErrNameTaken is returned when renaming a user onto a nick already known.
	ErrNameTaken = errors.New("nick already in use")
)

// UserFactory creates a user entity for a nick the directory has not seen.
type UserFactory func(nick string) (*User, error)

// ChannelFactory creates a channel entity for a name the directory has not seen.
type ChannelFactory func(name string) (*Channel, error)

// Options configures a [UserChannelDao].
type Options struct {
	// Locale drives case folding of nicks and channel names.
	Locale language.Tag
	// ChannelPrefixes lists the characters that start a channel name.
	ChannelPrefixes string
	// NewUser and NewChannel create missing entities. When nil the plain
	// NewUser / NewChannel constructors are used.
	NewUser    UserFactory
	NewChannel ChannelFactory
}

// UserChannelDao stores users and channels by folded name. It is safe for
// concurrent use.
type UserChannelDao struct {
	locale          language.Tag
	channelPrefixes string
	newUser         UserFactory
	newChannel      ChannelFactory

	mu       sync.RWMutex
	users    map[string]*User
	channels map[string]*Channel
}

// NewUserChannelDao returns an empty directory.
func NewUserChannelDao(opts Options) *UserChannelDao {
	d := &UserChannelDao{
		locale:          opts.Locale,
		channelPrefixes: opts.ChannelPrefixes,
		newUser:         opts.NewUser,
		newChannel:      opts.NewChannel,
		users:           make(map[string]*User),
		channels:        make(map[string]*Channel),
	}
	if d.newUser == nil {
		d.newUser = func(nick string) (*User, error) { return NewUser(nick), nil }
	}
	if d.newChannel == nil {
		d.newChannel = func(name string) (*Channel, error) { return NewChannel(name), nil }
	}
	return d
}

// fold is not cached: a cases.Caser must not be shared between goroutines.
func (d *UserChannelDao) fold(name string) string {
	return cases.Lower(d.locale).String(name)
}

// IsChannel reports whether name starts with a configured channel prefix.
func (d *UserChannelDao) IsChannel(name string) bool {
	return name != "" && strings.ContainsRune(d.channelPrefixes, []rune(name)[0])
}

// GetUser returns the user with nick, creating it on first sight.
func (d *UserChannelDao) GetUser(nick string) (*User, error) {
	if strings.TrimSpace(nick) == "" {
		return nil, ErrBlankName
	}
	key := d.fold(nick)

	d.mu.RLock()
	u, ok := d.users[key]
	d.mu.RUnlock()
	if ok {
		return u, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if u, ok = d.users[key]; ok {
		return u, nil
	}
	u, err := d.newUser(nick)
	if err != nil {
		return nil, fmt.Errorf("create user %q: %w", nick, err)
	}
	d.users[key] = u
	return u, nil
}

// GetChannel returns the channel with name, creating it on first sight.
func (d *UserChannelDao) GetChannel(name string) (*Channel, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrBlankName
	}
	if !d.IsChannel(name) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotAChannel)
	}
	key := d.fold(name)

	d.mu.RLock()
	c, ok := d.channels[key]
	d.mu.RUnlock()
	if ok {
		return c, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if c, ok = d.channels[key]; ok {
		return c, nil
	}
	c, err := d.newChannel(name)
	if err != nil {
		return nil, fmt.Errorf("create channel %q: %w", name, err)
	}
	d.channels[key] = c
	return c, nil
}

// UserExists reports whether nick is known.
func (d *UserChannelDao) UserExists(nick string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.users[d.fold(nick)]
	return ok
}

// ChannelExists reports whether name is known.
func (d *UserChannelDao) ChannelExists(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.channels[d.fold(name)]
	return ok
}

// RenameUser moves a known user to a new nick.
func (d *UserChannelDao) RenameUser(oldNick, newNick string) error {
	if strings.TrimSpace(newNick) == "" {
		return ErrBlankName
	}
	oldKey, newKey := d.fold(oldNick), d.fold(newNick)

	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[oldKey]
	if !ok {
		return nil
	}
	if _, taken := d.users[newKey]; taken && newKey != oldKey {
		return fmt.Errorf("%q: %w", newNick, ErrNameTaken)
	}
	delete(d.users, oldKey)
	u.setNick(newNick)
	d.users[newKey] = u
	return nil
}

// RemoveUser forgets nick.
func (d *UserChannelDao) RemoveUser(nick string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.users, d.fold(nick))
}

// RemoveChannel forgets name.
func (d *UserChannelDao) RemoveChannel(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.channels, d.fold(name))
}

// Users returns every known user ordered by nick.
func (d *UserChannelDao) Users() []*User {
	d.mu.RLock()
	out := make([]*User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u)
	}
	d.mu.RUnlock()

	slices.SortFunc(out, func(a, b *User) int { return strings.Compare(a.Nick(), b.Nick()) })
	return out
}

// Channels returns every known channel ordered by name.
func (d *UserChannelDao) Channels() []*Channel {
	d.mu.RLock()
	out := make([]*Channel, 0, len(d.channels))
	for _, c := range d.channels {
		out = append(out, c)
	}
	d.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Channel) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}

// Close forgets every user and channel.
func (d *UserChannelDao) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.users)
	clear(d.channels)
}
