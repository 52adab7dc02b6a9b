package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"

	"github.com/gookit/color"

	"github.com/mcastro/linechat/pkg/background"
)

// quitCommand - typing this line ends the session instead of sending it.
const quitCommand = "quit"

func main() {
	logger := sessionLogger()

	node := net.JoinHostPort(Config.Host, fmt.Sprintf("%d", Config.Port))
	conn, err := net.Dial("tcp", node)
	if err != nil {
		color.Red.Printf("Unable to connect %s: %v\n", node, err)
		os.Exit(1)
	}
	logger.Debug("connected", "addr", node, "local", conn.LocalAddr().String())
	color.Green.Printf("Connected to %s (v%s), type %q to leave\n", node, Version, quitCommand)

	scope, cancel := background.NewScope()
	scope.Go(func(ctx context.Context) {
		// server reader: prints broadcast lines until the connection is gone
		reader := bufio.NewReader(conn)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				if ctx.Err() == nil {
					logger.Debug("server connection lost", "error", err)
					color.Yellow.Println("Connection closed by server, press Enter to leave")
				}
				scope.Expire()
				return
			}
			color.Cyan.Print(line)
		}
	})

	input := bufio.NewScanner(os.Stdin)
	for input.Scan() {
		if scope.Context().Err() != nil {
			break
		}
		text := strings.TrimSpace(input.Text())
		if text == quitCommand {
			logger.Debug("quit requested")
			break
		}
		if text == "" {
			continue
		}
		if _, err := conn.Write([]byte(text + "\n")); err != nil {
			logger.Debug("send failed", "error", err)
			color.Red.Printf("Unable to send: %v\n", err)
			break
		}
		logger.Debug("sent", "bytes", len(text)+1)
	}

	conn.Close()
	cancel()
	color.Green.Println("Bye")
}

func sessionLogger() *slog.Logger {
	if !Config.Debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
