// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package output

import (
	"context"
	"encoding/binary"
	"net"
	"strconv"
	"strings"
)

// DCC sends the CTCP DCC offers and replies.
type DCC struct {
	irc            *IRC
	filenameQuotes bool
}

// NewDCC returns a DCC helper writing through irc. With filenameQuotes set
// file names are always sent quoted.
func NewDCC(irc *IRC, filenameQuotes bool) *DCC {
	return &DCC{irc: irc, filenameQuotes: filenameQuotes}
}

// ChatRequest offers a DCC chat listening on addr:port.
func (d *DCC) ChatRequest(ctx context.Context, nick string, addr net.IP, port int) error {
	return d.irc.CtcpCommand(ctx, nick, "DCC CHAT chat "+AddressToInteger(addr)+" "+strconv.Itoa(port))
}

// PassiveChatRequest offers a reverse DCC chat identified by token.
func (d *DCC) PassiveChatRequest(ctx context.Context, nick string, addr net.IP, token string) error {
	return d.irc.CtcpCommand(ctx, nick, "DCC CHAT chat "+AddressToInteger(addr)+" 0 "+token)
}

// FileRequest offers filename of size bytes listening on addr:port.
func (d *DCC) FileRequest(ctx context.Context, nick, filename string, addr net.IP, port int, size int64) error {
	return d.irc.CtcpCommand(ctx, nick, "DCC SEND "+d.quote(filename)+" "+AddressToInteger(addr)+" "+
		strconv.Itoa(port)+" "+strconv.FormatInt(size, 10))
}

// PassiveFileRequest offers filename through a reverse connection.
func (d *DCC) PassiveFileRequest(ctx context.Context, nick, filename string, addr net.IP, size int64, token string) error {
	return d.irc.CtcpCommand(ctx, nick, "DCC SEND "+d.quote(filename)+" "+AddressToInteger(addr)+" 0 "+
		strconv.FormatInt(size, 10)+" "+token)
}

// FileResumeRequest asks the sender to resume filename at position.
func (d *DCC) FileResumeRequest(ctx context.Context, nick, filename string, port int, position int64) error {
	return d.irc.CtcpCommand(ctx, nick, "DCC RESUME "+d.quote(filename)+" "+strconv.Itoa(port)+" "+
		strconv.FormatInt(position, 10))
}

// FileResumeAccept accepts a resume request for filename at position.
func (d *DCC) FileResumeAccept(ctx context.Context, nick, filename string, port int, position int64) error {
	return d.irc.CtcpCommand(ctx, nick, "DCC ACCEPT "+d.quote(filename)+" "+strconv.Itoa(port)+" "+
		strconv.FormatInt(position, 10))
}

func (d *DCC) quote(filename string) string {
	if d.filenameQuotes || strings.ContainsRune(filename, ' ') {
		return `"` + filename + `"`
	}
	return filename
}

// AddressToInteger renders addr the way DCC offers carry it: IPv4 as a
// decimal big-endian integer, IPv6 in its textual form.
func AddressToInteger(addr net.IP) string {
	if v4 := addr.To4(); v4 != nil {
		return strconv.FormatUint(uint64(binary.BigEndian.Uint32(v4)), 10)
	}
	return addr.String()
}

// IntegerToAddress is the inverse of AddressToInteger.
func IntegerToAddress(s string) net.IP {
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		ip := make(net.IP, net.IPv4len)
		binary.BigEndian.PutUint32(ip, uint32(n))
		return ip
	}
	return net.ParseIP(s)
}
