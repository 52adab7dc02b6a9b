// Package chat implements a relay server for text chat over line-oriented
// network connections.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/mcastro/linechat/internal/chat/broker"
)

// acceptRetryDelay - pause after a transient accept failure, keeps the
// accept loop from spinning while the process is out of descriptors.
const acceptRetryDelay = 100 * time.Millisecond

// Server - represents chat server over any net.Listener implementation.
// Every line received from one client is relayed to all other connected
// clients tagged with the sender's id; the sender never gets its own
// line echoed back.
type Server struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup

	log           *slog.Logger
	history       MessageHistory
	historyGreets int

	broker *broker.Broker
	inbox  <-chan broker.MessageEvent
	join   <-chan broker.JoinEvent
	part   <-chan broker.PartEvent
}

// NewServer - creates new chat server which ready to serve several network listeners.
func NewServer(buildBroker BrokerBuilder, options ...serverOption) (*Server, error) {
	if buildBroker == nil {
		return nil, errors.New("chat.NewServer: required chat.BrokerBuilder is nil")
	}
	inbox := make(chan broker.MessageEvent)
	join := make(chan broker.JoinEvent)
	part := make(chan broker.PartEvent)
	b, err := buildBroker(inbox, join, part)
	if err != nil {
		return nil, fmt.Errorf("chat.NewServer: can't build broker: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		ctx:    ctx,
		cancel: cancel,
		wg:     &sync.WaitGroup{},
		log:    slog.Default(),
		broker: b,
		inbox:  inbox,
		join:   join,
		part:   part,
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(s); err != nil {
			cancel()
			return nil, err
		}
	}
	s.handleEvents()
	return s, nil
}

// Serve - starts to serve of specified network listener.
// Returns when the listener fails or the server is shut down; failures of
// individual client connections never reach this loop.
func (s *Server) Serve(listener net.Listener) {
	if listener == nil || s.ctx.Err() != nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		<-s.ctx.Done()
		listener.Close()
	}()

	s.wg.Add(1)
	defer s.wg.Done()
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				// the listening socket itself has failed
				s.log.Error("listener is gone", "error", err)
				return
			}
			s.log.Warn("transient accept failure", "error", err)
			time.Sleep(acceptRetryDelay)
			continue
		}

		id, err := s.broker.KeepConnection(conn)
		if err != nil {
			// reject without touching the kept registration
			s.log.Warn("connection rejected",
				"remote", formatAddress(conn.RemoteAddr()), "error", err)
			conn.Close()
			continue
		}
		s.log.Info("client connected", "client", string(id))
	}
}

// Shutdown - stops server with the specified timeout and returns stopping duration.
// Note, the timeout must consider the duration for stopping the broker and stopping the server itself.
func (s *Server) Shutdown(timeout time.Duration) time.Duration {
	if s.ctx.Err() != nil {
		return 0
	}
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	from := time.Now()
	s.broker.Quit(timeout)
	s.cancel()
	select {
	case <-done:
	case <-time.After(timeout):
	}
	return time.Since(from)
}

func (s *Server) handleMessageEvents() {
	for {
		select {
		case event, ok := <-s.inbox:
			if !ok {
				return
			}
			line := formatMessage(event.OriginTime, string(event.Client), event.Text)
			historyPush(s.history, line)
			s.broker.Broadcast(event.Client, line)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Server) handleJoinEvents() {
	for {
		select {
		case event, ok := <-s.join:
			if !ok {
				return
			}
			for _, line := range historyTail(s.history, s.historyGreets) {
				s.broker.SendMessage(event.Client, line)
			}
			s.broker.Broadcast(
				event.Client,
				serverNotice(event.OriginTime, fmt.Sprintf("Client %s has joined", event.Client)),
			)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Server) handlePartEvents() {
	for {
		select {
		case event, ok := <-s.part:
			if !ok {
				return
			}
			s.log.Info("client disconnected",
				"client", string(event.Client), "reason", formatPartAction(event.Action))
			s.broker.Broadcast(
				event.Client,
				serverNotice(event.OriginTime,
					fmt.Sprintf("Client %s has %s", event.Client, formatPartAction(event.Action))),
			)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Server) handleEvents() {
	if s.ctx.Err() != nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.handleMessageEvents()
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.handleJoinEvents()
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.handlePartEvents()
	}()
}
