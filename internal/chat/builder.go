package chat

import (
	"errors"
	"log/slog"
	"time"

	"github.com/mcastro/linechat/internal/chat/broker"
)

// BrokerBuilder - helps to build custom broker.Broker with required dependencies (channels)
type BrokerBuilder func(
	inbox chan<- broker.MessageEvent,
	join chan<- broker.JoinEvent,
	part chan<- broker.PartEvent,
) (*broker.Broker, error)

// DefaultBroker - returns builder which requires all event-channels to build
// broker.Broker. Clients idle longer than idleTimeout are disconnected.
func DefaultBroker(idleTimeout time.Duration, log *slog.Logger) BrokerBuilder {
	return func(
		inbox chan<- broker.MessageEvent,
		join chan<- broker.JoinEvent,
		part chan<- broker.PartEvent,
	) (*broker.Broker, error) {
		if inbox == nil {
			return nil, errors.New("chat.DefaultBroker: broker.MessageEvent chan is required")
		}
		if join == nil {
			return nil, errors.New("chat.DefaultBroker: broker.JoinEvent chan is required")
		}
		if part == nil {
			return nil, errors.New("chat.DefaultBroker: broker.PartEvent chan is required")
		}
		if log == nil {
			log = slog.Default()
		}
		return broker.New(
			broker.WithInbox(inbox),
			broker.WithJoinChan(join),
			broker.WithPartChan(part),
			broker.WithReadTimeout(idleTimeout),
			broker.WithWriteTimeout(30*time.Second),
			broker.WithLogger(log),
		)
	}
}
