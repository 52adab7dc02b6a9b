package broker

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// WithInbox - attach channel to be notified for incoming messages.
// Note, if Broker is used without inbox it can only to send outgoing messages.
func WithInbox(inbox chan<- MessageEvent) brokerOption {
	return func(b *Broker) error {
		if b.inbox != nil {
			return errors.New("broker.WithInbox: inbox already set up")
		}
		b.inbox = inbox
		return nil
	}
}

// WithJoinChan - attach channel to be notified of client is joined.
func WithJoinChan(join chan<- JoinEvent) brokerOption {
	return func(b *Broker) error {
		if b.join != nil {
			return errors.New("broker.WithJoinChan: join-channel already set up")
		}
		b.join = join
		return nil
	}
}

// WithPartChan - attach channel to be notified of parting with client.
func WithPartChan(part chan<- PartEvent) brokerOption {
	return func(b *Broker) error {
		if b.part != nil {
			return errors.New("broker.WithPartChan: part-channel already set up")
		}
		b.part = part
		return nil
	}
}

// WithReadTimeout - overwrites default idle period after which a silent
// client is parted with a timeout action.
func WithReadTimeout(timeout time.Duration) brokerOption {
	return func(b *Broker) error {
		if timeout <= 0 {
			return fmt.Errorf("broker.WithReadTimeout: invalid timeout (%v)", timeout)
		}
		b.readTimeout = timeout
		return nil
	}
}

// WithWriteTimeout - overwrites default write timeout of connections.
// It bounds how long a broadcast may spend on one slow peer.
func WithWriteTimeout(timeout time.Duration) brokerOption {
	return func(b *Broker) error {
		if timeout <= 0 {
			return fmt.Errorf("broker.WithWriteTimeout: invalid timeout (%v)", timeout)
		}
		b.writeTimeout = timeout
		return nil
	}
}

// WithIdentity - overwrites how a client id is derived from a connection.
// The default uses the remote network address.
func WithIdentity(identify func(net.Conn) ClientID) brokerOption {
	return func(b *Broker) error {
		if identify == nil {
			return errors.New("broker.WithIdentity: identify func is nil")
		}
		b.identify = identify
		return nil
	}
}

// WithLogger - attach structured logger for contained IO failures.
func WithLogger(log *slog.Logger) brokerOption {
	return func(b *Broker) error {
		if log == nil {
			return errors.New("broker.WithLogger: logger is nil")
		}
		b.log = log
		return nil
	}
}
