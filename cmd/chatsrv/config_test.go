package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)
	req.NoError(validator.New().Struct(config))

	req.Empty(config.Host)
	req.Equal(20000, config.Port)
	req.Equal(60*time.Second, config.ClientIdleTimeout)
	req.Equal(10, config.HistoryGreets)
	req.Equal("INFO", config.LogLevel)
}

func TestConfig_Validation(t *testing.T) {
	cases := []struct {
		name       string
		key, value string
	}{
		{"port out of range", "CHAT_PORT", "70000"},
		{"zero port", "CHAT_PORT", "0"},
		{"negative greets", "CHAT_HISTORY_GREETS", "-1"},
		{"unknown log level", "CHAT_LOG_LEVEL", "LOUD"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(c.key, c.value)
			var config Config
			_, err := env.UnmarshalFromEnviron(&config)
			require.NoError(t, err)
			require.Error(t, validator.New().Struct(config))
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	req := require.New(t)
	cases := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for value, expected := range cases {
		req.Equal(expected, Config{LogLevel: value}.SlogLevel(), "LogLevel=%s", value)
	}
}
