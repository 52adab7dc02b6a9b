package chat

import (
	"errors"
	"fmt"
	"log/slog"
)

type serverOption func(s *Server) error

// WithLogger - attach structured logger for server events.
func WithLogger(log *slog.Logger) serverOption {
	return func(s *Server) error {
		if log == nil {
			return errors.New("chat.WithLogger: logger is nil")
		}
		s.log = log
		return nil
	}
}

// WithMessageHistory - attach chat history. Every broadcast line is pushed
// into it and up to greets latest lines are sent to a newly joined client.
func WithMessageHistory(h MessageHistory, greets int) serverOption {
	return func(s *Server) error {
		if greets < 0 {
			return fmt.Errorf("chat.WithMessageHistory: invalid greets number (%d)", greets)
		}
		s.history = h
		s.historyGreets = greets
		return nil
	}
}
