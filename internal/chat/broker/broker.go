// Package broker keeps chat connections and routes lines between them.
package broker

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/mcastro/linechat/internal/chat/message"
)

// Broker - chat connections keeper and message router.
type Broker struct {
	readTimeout,
	writeTimeout time.Duration
	identify func(net.Conn) ClientID
	log      *slog.Logger

	inbox chan<- MessageEvent
	join  chan<- JoinEvent
	part  chan<- PartEvent

	ctx    context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup

	clients *registry
}

type brokerOption func(b *Broker) error

func setup(b *Broker, options ...brokerOption) error {
	if b == nil {
		return nil
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(b); err != nil {
			return err
		}
	}
	return nil
}

// New - builds Broker with needed options.
func New(options ...brokerOption) (*Broker, error) {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Broker{
		readTimeout:  60 * time.Second,
		writeTimeout: 30 * time.Second,
		identify: func(conn net.Conn) ClientID {
			return ClientID(conn.RemoteAddr().String())
		},
		log:     slog.Default(),
		ctx:     ctx,
		cancel:  cancel,
		wg:      &sync.WaitGroup{},
		clients: newRegistry(),
	}

	if err := setup(b, options...); err != nil {
		cancel()
		return nil, err
	}

	return b, nil
}

// Quit - cancels internal context and waits all IO handlers will stop.
// Returns duration of time spent for quit. This time always less or equal of given timeout.
func (b *Broker) Quit(timeout time.Duration) time.Duration {
	if b.ctx.Err() != nil {
		return 0
	}
	from := time.Now()
	b.cancel()
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
	return time.Since(from)
}

// KeepConnection - registers new net connection under its client id and
// starts IO handlers in background to communicate over it.
// On ErrDuplicateClient the existing registration is kept intact and the
// given connection is left for the caller to close.
func (b *Broker) KeepConnection(conn net.Conn) (ClientID, error) {
	if b.ctx.Err() != nil {
		return "", ErrShuttingDown
	}

	id := b.identify(conn)
	wrapped := newConn(id, conn, b.readTimeout, b.writeTimeout)

	// ctx - new context, derived from Broker, to help cancel "read" when
	// "write" failed and vice versa
	ctx, cancelIO := context.WithCancel(b.ctx)
	c := &client{
		conn:   wrapped,
		ctx:    ctx,
		outbox: make(chan string),
	}
	if !b.clients.add(id, c) {
		cancelIO()
		return id, ErrDuplicateClient
	}

	b.wg.Add(1)
	go func() { // IO handler
		wgIO := sync.WaitGroup{}
		defer func() {
			wgIO.Wait()
			// the receive loop observed termination, only now the id leaves
			// the registry; the part event carries the first failure cause
			b.clients.delete(id)
			b.notifyPart(id, c.partAction())
			b.wg.Done()
		}()

		wgIO.Add(1)
		go func() {
			// closing the socket is the only way to unblock reads and
			// writes pending at cancellation time
			defer wgIO.Done()
			<-ctx.Done()
			wrapped.Close()
		}()

		wgIO.Add(1)
		go func() {
			defer func() {
				cancelIO()
				// release conn to immediately unblock the related reader
				// even if its timeout is not expired
				wrapped.Close()
				wgIO.Done()
			}()
			b.maintainOutbox(ctx, c)
		}()

		b.notifyJoin(id)

		wgIO.Add(1)
		go func() {
			defer func() {
				cancelIO()
				// release conn to immediately unblock the related writer
				// even if its timeout is not expired
				wrapped.Close()
				wgIO.Done()
			}()
			b.maintainInbox(ctx, c)
		}()
	}()

	return id, nil
}

// notifyJoin - propagates join event if join channel available.
func (b *Broker) notifyJoin(id ClientID) {
	if b.join == nil || b.ctx.Err() != nil {
		return
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		select {
		case b.join <- JoinEvent{Event{id, time.Now().UTC()}}:
		case <-b.ctx.Done():
		}
	}()
}

// notifyPart - propagates part event if part channel available.
func (b *Broker) notifyPart(id ClientID, action PartAction) {
	if b.part == nil || b.ctx.Err() != nil {
		return
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		select {
		case b.part <- PartEvent{Event{id, time.Now().UTC()}, action}:
		case <-b.ctx.Done():
		}
	}()
}

// SendMessage - tries to send a line outwards for single known client.
func (b *Broker) SendMessage(id ClientID, line string) {
	c, ok := b.clients.get(id)
	if !ok || c.ctx.Err() != nil {
		return
	}
	b.wg.Add(1)
	defer b.wg.Done()
	select {
	case c.outbox <- line:
	case <-c.ctx.Done():
	}
}

// Broadcast - tries to send a line to every kept connection except the
// originating client. Delivery walks a registry snapshot, so no lock is
// held across the writes and a parting peer can not block registration.
// The method returns after every live peer accepted the line or went away,
// hence sequential calls reach each peer in call order.
func (b *Broker) Broadcast(from ClientID, line string) {
	wg := sync.WaitGroup{}
	for _, entry := range b.clients.snapshot() {
		if entry.Key == from {
			continue
		}
		wg.Add(1)
		go func(id ClientID) {
			defer wg.Done()
			b.SendMessage(id, line)
		}(entry.Key)
	}
	wg.Wait()
}

func (b *Broker) maintainOutbox(ctx context.Context, c *client) {
	if ctx.Err() != nil {
		return
	}
	for {
		var line string
		select {
		case line = <-c.outbox:
		case <-ctx.Done():
			return
		}
		if line == "" {
			continue
		}
		err := c.conn.WriteLine(line)
		if err == nil {
			continue
		}
		// contained failure: remember the cause and stop this client's IO,
		// the fan-out to other peers is not affected
		b.log.Debug("outbound write failed", "client", string(c.conn.ID()), "error", err)
		c.partedBecause(partActionOf(err))
		return
	}
}

func (b *Broker) maintainInbox(ctx context.Context, c *client) {
	if ctx.Err() != nil {
		return
	}
	for {
		line, err := c.conn.ReadLine()
		if err == nil {
			text := message.Sanitize(line)
			if text == "" || b.inbox == nil {
				continue
			}
			// the send is synchronous on purpose: lines of one sender enter
			// the inbox in the order the server received them
			select {
			case b.inbox <- MessageEvent{Event{c.conn.ID(), time.Now().UTC()}, text}:
			case <-ctx.Done():
				return
			}
			continue
		}
		select {
		case <-ctx.Done():
		default:
			c.partedBecause(partActionOf(err))
		}
		return
	}
}

func partActionOf(err error) PartAction {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return PartActionTimeout
	}
	return PartActionLeft
}
