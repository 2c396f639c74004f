// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"

	"github.com/MKhiriev/go-irc-bot/internal/hooks"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Build validates the settings and returns an immutable snapshot of them.
//
// Checks run in a fixed order and the first failing one is returned as a
// *[ValidationError]; the builder is left untouched either way.
func (b *Builder) Build() (*Configuration, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	return newConfiguration(b), nil
}

func (b *Builder) validate() error {
	if hooks.CountCoreHooks(b.ListenerManager().Listeners()) != 1 {
		return &ValidationError{Field: "ListenerManager", Err: ErrCoreHooks}
	}

	checks := []func() error{
		notBlank("Name", b.name),
		notBlank("Login", b.login),
		notBlank("ChannelPrefixes", b.channelPrefixes),
		positive("DCCAcceptTimeout", int64(b.DCCAcceptTimeout())),
		positive("DCCResumeAcceptTimeout", int64(b.DCCResumeAcceptTimeout())),
		positive("DCCTransferBufferSize", int64(b.dccTransferBufferSize)),
		notBlank("ServerHostname", b.serverHostname),
		inRange("ServerPort", b.serverPort, "min=1,max=65535"),
		present("SocketFactory", b.socketFactory != nil),
		present("Encoding", b.encoding != nil),
		present("Locale", b.locale != language.Und),
		positive("SocketTimeout", int64(b.socketTimeout)),
		positive("MaxLineLength", int64(b.maxLineLength)),
		positive("MessageDelay", int64(b.messageDelay)),
		present("Factory", b.factory != nil),
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func notBlank(field, value string) func() error {
	return func() error {
		if validate.Var(strings.TrimSpace(value), "required") != nil {
			return &ValidationError{Field: field, Err: ErrBlank}
		}
		return nil
	}
}

func positive(field string, value int64) func() error {
	return func() error {
		if validate.Var(value, "gt=0") != nil {
			return &ValidationError{Field: field, Err: ErrNotPositive}
		}
		return nil
	}
}

func inRange(field string, value int, rule string) func() error {
	return func() error {
		if validate.Var(value, rule) != nil {
			return &ValidationError{Field: field, Err: ErrOutOfRange}
		}
		return nil
	}
}

func present(field string, ok bool) func() error {
	return func() error {
		if !ok {
			return &ValidationError{Field: field, Err: ErrMissing}
		}
		return nil
	}
}
