// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"IRC_CONFIG": "/path/to/config.json",

		"IRC_BOT_NAME":             "envbot",
		"IRC_BOT_LOGIN":            "envlogin",
		"IRC_BOT_CHANNEL_PREFIXES": "#",
		"IRC_BOT_AUTO_JOIN":        "#go,#rust:key",
		"IRC_BOT_CAP_ENABLED":      "true",
		"IRC_BOT_CAPABILITIES":     "away-notify,account-notify",
		"IRC_BOT_ENCODING":         "iso-8859-1",
		"IRC_BOT_MESSAGE_DELAY":    "250ms",

		"IRC_SERVER_HOSTNAME":       "irc.example.net",
		"IRC_SERVER_PORT":           "6697",
		"IRC_SERVER_PROXY_URL":      "socks5://127.0.0.1:1080",
		"IRC_SERVER_SOCKET_TIMEOUT": "30s",

		"IRC_WEBIRC_ENABLED": "true",
		"IRC_WEBIRC_ADDRESS": "10.0.0.1",

		// DCC settings sit below IRC_ + DCC_
		"IRC_DCC_PORTS":                 "5000,5001",
		"IRC_DCC_ACCEPT_TIMEOUT":        "1m",
		"IRC_DCC_TRANSFER_BUFFER_SIZE":  "4096",
		"IRC_DCC_RESUME_ACCEPT_TIMEOUT": "2m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &FileConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "envbot", cfg.Bot.Name)
	assert.Equal(t, "envlogin", cfg.Bot.Login)
	assert.Equal(t, "#", cfg.Bot.ChannelPrefixes)
	assert.Equal(t, []string{"#go", "#rust:key"}, cfg.Bot.AutoJoin)
	require.NotNil(t, cfg.Bot.CapEnabled)
	assert.True(t, *cfg.Bot.CapEnabled)
	assert.Equal(t, []string{"away-notify", "account-notify"}, cfg.Bot.Capabilities)
	assert.Equal(t, "iso-8859-1", cfg.Bot.Encoding)
	assert.Equal(t, 250*time.Millisecond, cfg.Bot.MessageDelay.Duration())

	assert.Equal(t, "irc.example.net", cfg.Server.Hostname)
	assert.Equal(t, 6697, cfg.Server.Port)
	assert.Equal(t, "socks5://127.0.0.1:1080", cfg.Server.ProxyURL)
	assert.Equal(t, 30*time.Second, cfg.Server.SocketTimeout.Duration())

	require.NotNil(t, cfg.WebIRC.Enabled)
	assert.True(t, *cfg.WebIRC.Enabled)
	assert.Equal(t, "10.0.0.1", cfg.WebIRC.Address)

	assert.Equal(t, []int{5000, 5001}, cfg.DCC.Ports)
	assert.Equal(t, time.Minute, cfg.DCC.AcceptTimeout.Duration())
	assert.Equal(t, 2*time.Minute, cfg.DCC.ResumeAcceptTimeout.Duration())
	assert.Equal(t, 4096, cfg.DCC.TransferBufferSize)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"IRC_SERVER_HOSTNAME": "irc.example.net",
	})

	// Act
	cfg := &FileConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "irc.example.net", cfg.Server.Hostname)
	assert.Zero(t, cfg.Server.Port)

	// Booleans stay nil so they do not override builder defaults.
	assert.Nil(t, cfg.Bot.AutoSplitMessage)
	assert.Nil(t, cfg.WebIRC.Enabled)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &FileConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &FileConfig{}, cfg)
}

func TestParseEnv_UnprefixedIgnored(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{"BOT_NAME": "nope", "CONFIG": "nope.json"})

	// Act
	cfg := &FileConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, cfg.Bot.Name)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_InvalidValue(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{"IRC_SERVER_PORT": "not-a-number"})

	// Act
	err := parseEnv(&FileConfig{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, envPrefix) {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
}
