// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dcc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-irc-bot/internal/dao"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Chat is a line based DCC chat session.
type Chat struct {
	user     *dao.User
	conn     net.Conn
	outgoing bool
	enc      encoding.Encoding
	reader   *bufio.Reader

	mu sync.Mutex
}

// NewChat wraps conn. outgoing tells whether the bot offered the chat.
func NewChat(user *dao.User, conn net.Conn, enc encoding.Encoding, outgoing bool) (*Chat, error) {
	if conn == nil {
		return nil, ErrNilConnection
	}
	if enc == nil {
		enc = unicode.UTF8
	}
	return &Chat{
		user:     user,
		conn:     conn,
		outgoing: outgoing,
		enc:      enc,
		reader:   bufio.NewReader(transform.NewReader(conn, enc.NewDecoder())),
	}, nil
}

// User returns the peer.
func (c *Chat) User() *dao.User { return c.user }

// Outgoing reports whether the bot offered the chat.
func (c *Chat) Outgoing() bool { return c.outgoing }

// ReadLine returns the next line sent by the peer without its terminator.
func (c *Chat) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if line != "" && err == io.EOF {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// SendLine sends one line to the peer.
func (c *Chat) SendLine(line string) error {
	encoded, err := c.enc.NewEncoder().String(strings.TrimRight(line, "\r\n") + "\n")
	if err != nil {
		return fmt.Errorf("encoding chat line: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err = io.WriteString(c.conn, encoded)
	return err
}

// Close closes the connection.
func (c *Chat) Close() error {
	return c.conn.Close()
}

// FileTransfer streams one file over a DCC connection in either direction.
type FileTransfer struct {
	user          *dao.User
	conn          net.Conn
	file          *os.File
	startPosition int64
	bufferSize    int
	outgoing      bool

	transferred atomic.Int64
}

// NewSendFileTransfer sends file, starting at startPosition, over conn.
func NewSendFileTransfer(conn net.Conn, user *dao.User, file *os.File, startPosition int64, bufferSize int) *FileTransfer {
	return &FileTransfer{user: user, conn: conn, file: file, startPosition: startPosition, bufferSize: bufferSize, outgoing: true}
}

// NewReceiveFileTransfer writes what arrives on conn to file, which must
// already be positioned at startPosition.
func NewReceiveFileTransfer(conn net.Conn, user *dao.User, file *os.File, startPosition int64, bufferSize int) *FileTransfer {
	return &FileTransfer{user: user, conn: conn, file: file, startPosition: startPosition, bufferSize: bufferSize}
}

// User returns the peer.
func (t *FileTransfer) User() *dao.User { return t.user }

// File returns the local file.
func (t *FileTransfer) File() *os.File { return t.file }

// StartPosition returns the resume offset.
func (t *FileTransfer) StartPosition() int64 { return t.startPosition }

// Outgoing reports whether the bot is the sender.
func (t *FileTransfer) Outgoing() bool { return t.outgoing }

// BytesTransferred returns the number of bytes moved so far, resume offset
// excluded.
func (t *FileTransfer) BytesTransferred() int64 { return t.transferred.Load() }

// Transfer runs the transfer until EOF, an error, or ctx is cancelled.
// Cancelling ctx closes the connection to unblock the copy.
func (t *FileTransfer) Transfer(ctx context.Context) error {
	if t.conn == nil {
		return ErrNilConnection
	}
	stop := context.AfterFunc(ctx, func() { _ = t.conn.Close() })
	defer stop()

	var src io.Reader = t.conn
	var dst io.Writer = t.file
	if t.outgoing {
		if _, err := t.file.Seek(t.startPosition, io.SeekStart); err != nil {
			return fmt.Errorf("seek to %d: %w", t.startPosition, err)
		}
		src, dst = t.file, t.conn
	}

	var buf []byte
	if t.bufferSize > 0 {
		buf = make([]byte, t.bufferSize)
	}
	_, err := io.CopyBuffer(&countingWriter{w: dst, n: &t.transferred}, src, buf)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Close closes the file and the connection.
func (t *FileTransfer) Close() error {
	ferr := t.file.Close()
	if t.conn == nil {
		return ferr
	}
	cerr := t.conn.Close()
	if ferr != nil {
		return ferr
	}
	return cerr
}

type countingWriter struct {
	w io.Writer
	n *atomic.Int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n.Add(int64(n))
	return n, err
}
