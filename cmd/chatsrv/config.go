package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/mcastro/linechat/pkg/semver"
)

type (
	// Config - server configuration, read from the environment.
	Config struct {
		// Host - listen address, empty means all interfaces
		Host string `env:"CHAT_HOST"`
		// Port - listen port
		Port int `env:"CHAT_PORT,default=20000" validate:"min=1,max=65535"`
		// ClientIdleTimeout - idle period before client is disconnected
		ClientIdleTimeout time.Duration `env:"CHAT_CLIENT_IDLE_TIMEOUT,default=60s" validate:"min=1s"`
		// HistoryGreets - num of lines from chat history which is pushed to newly connected client
		HistoryGreets int `env:"CHAT_HISTORY_GREETS,default=10" validate:"min=0,max=1000"`
		// LogLevel - minimal severity of emitted log records
		LogLevel string `env:"CHAT_LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	}
)

// SlogLevel - maps the configured level onto slog severity.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Version - application version fingerprint
var Version = semver.V{Minor: 4}.String()
