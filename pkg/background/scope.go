// Package background helps to join related goroutines by meaning and cancel
// them as one unit.
package background

import (
	"context"
	"sync"
)

// Scope - abstract concurrency scope. All members launched with Go share
// one context and are awaited together on cancellation.
type Scope struct {
	ctx       context.Context
	ctxCancel context.CancelFunc
	members   sync.WaitGroup
}

// NewScope - concurrency scope builder. The returned cancel func expires
// the scope context and blocks until every member has returned.
func NewScope() (scope *Scope, cancel func()) {
	ctx, cancelFunc := context.WithCancel(context.Background())
	s := &Scope{
		ctx:       ctx,
		ctxCancel: cancelFunc,
	}
	return s,
		func() {
			s.ctxCancel()
			s.members.Wait()
		}
}

// Context - returns the scope context. Members should select on its Done
// channel at every suspension point.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Go - launches fn as a scope member.
func (s *Scope) Go(fn func(ctx context.Context)) {
	s.members.Add(1)
	go func() {
		defer s.members.Done()
		fn(s.ctx)
	}()
}

// Expire - cancels the scope context without waiting for members.
// Useful when a member itself decides the whole scope is over.
func (s *Scope) Expire() {
	s.ctxCancel()
}
