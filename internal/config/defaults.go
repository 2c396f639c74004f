// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Defaults applied by [NewBuilder].
const (
	DefaultName                  = "GoIRCBot"
	DefaultVersion               = "GoIRCBot - github.com/MKhiriev/go-irc-bot"
	DefaultFinger                = "You ought to be arrested for fingering a bot!"
	DefaultChannelPrefixes       = "#&+!"
	DefaultDCCTransferBufferSize = 1024
	DefaultServerPort            = 6667
	DefaultSocketTimeout         = 5 * time.Minute
	DefaultMaxLineLength         = 512
	DefaultMessageDelay          = time.Second
	DefaultCapability            = "multi-prefix"
)

// unset marks a cascading duration that falls back to another setting.
const unset time.Duration = -1

// defaultLocale derives the locale from the process environment, falling back
// to English.
func defaultLocale() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag, ok := parsePOSIXLocale(os.Getenv(key)); ok {
			return tag
		}
	}
	return language.English
}

// parsePOSIXLocale turns values like "de_DE.UTF-8@euro" into a language tag.
func parsePOSIXLocale(s string) (language.Tag, bool) {
	s, _, _ = strings.Cut(s, ".")
	s, _, _ = strings.Cut(s, "@")
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil || tag == language.Und {
		return language.Und, false
	}
	return tag, true
}
