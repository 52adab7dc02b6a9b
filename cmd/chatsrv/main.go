package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mcastro/linechat/internal/chat"
	"github.com/mcastro/linechat/internal/chat/history"
)

// Exit codes to provide meaningful status to the operating system or
// service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatsrv terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes the server, manages its lifecycle and centralizes error
// reporting, so every defer fires before the process exits.
func run() (int, error) {
	// a local .env is optional, the real environment wins
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("reading config: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return exitConfig, fmt.Errorf("invalid config: %w", err)
	}

	logger := slog.New(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: config.SlogLevel()}),
	).With("instance", uuid.NewString()[:8], "version", Version)
	logger.Info("chat server is launching", "config", fmt.Sprintf("%+v", config))

	node := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	listener, err := net.Listen("tcp", node)
	if err != nil {
		return exitRuntime, fmt.Errorf("unable to listen TCP on %s: %w", node, err)
	}
	logger.Info("listening", "addr", node)

	var greets chat.MessageHistory
	if config.HistoryGreets > 0 {
		stack, err := history.NewStack(config.HistoryGreets)
		if err != nil {
			listener.Close()
			return exitConfig, fmt.Errorf("invalid config: %w", err)
		}
		greets = stack
	}

	server, err := chat.NewServer(
		chat.DefaultBroker(config.ClientIdleTimeout, logger),
		chat.WithLogger(logger),
		chat.WithMessageHistory(greets, config.HistoryGreets),
	)
	if err != nil {
		listener.Close()
		return exitRuntime, fmt.Errorf("can't build chat server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go server.Serve(listener)
	logger.Info("chat server has started")

	<-ctx.Done()
	logger.Info("got stop signal")
	logger.Info("chat server stopped", "spent", server.Shutdown(10*time.Second).String())
	return exitOK, nil
}
