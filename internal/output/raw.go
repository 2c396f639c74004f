// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package output holds the helpers the bot writes to the server through.
//
// [Raw] owns the connection writer: it encodes, truncates or splits and paces
// every line. The other helpers ([CAP], [IRC], [DCC], [Channel], [User]) only
// format commands and layer on top of Raw or of each other.
package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/time/rate"
)

// ErrNotConnected is returned when a line is sent before the bot has a
// connection to write to.
var ErrNotConnected = errors.New("not connected to server")

// lineTerminator is counted against the maximum line length.
const lineTerminator = "\r\n"

// RawOptions configures a [Raw] writer.
type RawOptions struct {
	// Encoding converts lines to bytes on the wire. Defaults to UTF-8.
	Encoding encoding.Encoding
	// MaxLineLength is the longest line, terminator included, ever written.
	MaxLineLength int
	// AutoSplit makes SendRawLineSplit split long messages over several lines
	// instead of truncating them.
	AutoSplit bool
	// MessageDelay is the minimum pause between two paced lines.
	MessageDelay time.Duration
}

// Raw writes protocol lines to whatever writer sink currently returns.
type Raw struct {
	sink    func() io.Writer
	opts    RawOptions
	limiter *rate.Limiter

	mu sync.Mutex
}

// NewRaw returns a Raw writer. sink is consulted on every write so the writer
// can be built before the connection exists.
func NewRaw(sink func() io.Writer, opts RawOptions) *Raw {
	if opts.Encoding == nil {
		opts.Encoding = unicode.UTF8
	}
	limit := rate.Inf
	if opts.MessageDelay > 0 {
		limit = rate.Every(opts.MessageDelay)
	}
	return &Raw{
		sink:    sink,
		opts:    opts,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// SendRawLine writes line after waiting for the message delay.
func (r *Raw) SendRawLine(ctx context.Context, line string) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for message delay: %w", err)
	}
	return r.SendRawLineNow(line)
}

// SendRawLineNow writes line immediately, bypassing the message delay.
func (r *Raw) SendRawLineNow(line string) error {
	w := r.sink()
	if w == nil {
		return ErrNotConnected
	}

	line = strings.TrimRight(line, "\r\n")
	encoded, err := r.opts.Encoding.NewEncoder().String(line)
	if err != nil {
		return fmt.Errorf("encoding line: %w", err)
	}
	if limit := r.opts.MaxLineLength - len(lineTerminator); limit > 0 && len(encoded) > limit {
		encoded = r.truncate(encoded, limit)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err = io.WriteString(w, encoded+lineTerminator); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// truncate cuts encoded to at most limit bytes. UTF-8 lines are cut on a rune
// boundary.
func (r *Raw) truncate(encoded string, limit int) string {
	if r.opts.Encoding != unicode.UTF8 {
		return encoded[:limit]
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(encoded[cut]) {
		cut--
	}
	return encoded[:cut]
}

// SendRawLineSplit sends prefix+message+suffix, splitting message over as
// many lines as needed to respect the maximum line length when auto split is
// enabled.
func (r *Raw) SendRawLineSplit(ctx context.Context, prefix, message, suffix string) error {
	for _, chunk := range r.split(prefix, message, suffix) {
		if err := r.SendRawLine(ctx, prefix+chunk+suffix); err != nil {
			return err
		}
	}
	return nil
}

func (r *Raw) split(prefix, message, suffix string) []string {
	room := r.opts.MaxLineLength - len(lineTerminator) - len(prefix) - len(suffix)
	if !r.opts.AutoSplit || room <= 0 || len(message) <= room {
		return []string{message}
	}

	var chunks []string
	for len(message) > room {
		cut := room
		for cut > 0 && !utf8.RuneStart(message[cut]) {
			cut--
		}
		if cut == 0 {
			cut = room
		}
		chunks = append(chunks, message[:cut])
		message = message[cut:]
	}
	return append(chunks, message)
}
