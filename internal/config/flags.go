// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line args into a FileConfig.
//
// Flags:
//
//	-s server address in format host:port
//	-n nick
//	-l login
//	-p server password
//	-j channel to join, "channel" or "channel:key" (repeatable)
//	-c/-config json file path with configs
//	-proxy proxy URL (e.g. socks5://127.0.0.1:1080)
//	-local-address local address to bind to
//	-encoding connection encoding label (e.g. utf-8, latin1)
//	-locale case folding locale (e.g. en, tr)
//	-socket-timeout socket timeout (e.g. "5m")
//	-message-delay delay between messages (e.g. "1s")
//	-cap enable capability negotiation
//	-auto-nick retry with a numbered nick when taken
//	-dcc-ports comma separated DCC ports
func parseFlags(args []string) (*FileConfig, error) {
	var serverAddress NetAddress
	var name, login, password string
	var channels []string
	var jsonConfigPath string
	var proxyURL, localAddress string
	var encodingName, locale string
	var socketTimeout, messageDelay time.Duration
	var capEnabled, autoNick bool
	var dccPorts string

	fs := flag.NewFlagSet("ircbot", flag.ContinueOnError)
	fs.Var(&serverAddress, "s", "IRC server address host:port")
	fs.StringVar(&name, "n", "", "Nick")
	fs.StringVar(&login, "l", "", "Login")
	fs.StringVar(&password, "p", "", "Server password")
	fs.Func("j", "Channel to join, channel or channel:key (repeatable)", func(s string) error {
		channels = append(channels, s)
		return nil
	})
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&proxyURL, "proxy", "", "Proxy URL")
	fs.StringVar(&localAddress, "local-address", "", "Local address to bind to")
	fs.StringVar(&encodingName, "encoding", "", "Connection encoding")
	fs.StringVar(&locale, "locale", "", "Case folding locale")
	fs.DurationVar(&socketTimeout, "socket-timeout", 0, "Socket timeout (e.g., 5m)")
	fs.DurationVar(&messageDelay, "message-delay", 0, "Delay between messages (e.g., 1s)")
	fs.BoolVar(&capEnabled, "cap", false, "Enable capability negotiation")
	fs.BoolVar(&autoNick, "auto-nick", false, "Retry with a numbered nick when taken")
	fs.StringVar(&dccPorts, "dcc-ports", "", "Comma separated DCC ports")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	ports, err := parsePorts(dccPorts)
	if err != nil {
		return nil, err
	}

	cfg := &FileConfig{
		Bot: BotSettings{
			Name:         name,
			Login:        login,
			AutoJoin:     channels,
			Encoding:     encodingName,
			Locale:       locale,
			MessageDelay: Duration(messageDelay),
		},
		Server: ServerSettings{
			Hostname:      serverAddress.Host,
			Port:          serverAddress.Port,
			Password:      password,
			ProxyURL:      proxyURL,
			LocalAddress:  localAddress,
			SocketTimeout: Duration(socketTimeout),
		},
		DCC: DCCSettings{
			Ports: ports,
		},
		JSONFilePath: jsonConfigPath,
	}

	// Booleans only count when given explicitly.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cap":
			cfg.Bot.CapEnabled = &capEnabled
		case "auto-nick":
			cfg.Bot.AutoNickChange = &autoNick
		}
	})

	return cfg, nil
}

func parsePorts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var ports []int
	for _, part := range strings.Split(s, ",") {
		port, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || port < 0 || port > 65535 {
			return nil, fmt.Errorf("invalid DCC port %q", part)
		}
		ports = append(ports, port)
	}
	return ports, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// The host may be a name or an IP address; the port must be in [1, 65535].
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}
	if host == "" {
		return errors.New("host must not be empty")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	a.Host = host
	a.Port = port
	return nil
}
