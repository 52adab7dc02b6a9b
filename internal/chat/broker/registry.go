package broker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"
)

// client - broker-side state of one kept connection.
type client struct {
	conn   *Conn
	ctx    context.Context
	outbox chan string

	// first observed part cause, set once by whichever IO loop failed first
	partCause atomic.Int32
}

func (c *client) partedBecause(action PartAction) {
	c.partCause.CompareAndSwap(0, int32(action))
}

func (c *client) partAction() PartAction {
	if a := PartAction(c.partCause.Load()); a != 0 {
		return a
	}
	return PartActionLeft
}

// registry - mapping of client ids to kept connections.
// All mutation happens under one lock; delivery iterates a snapshot
// taken under the same lock, never the live map.
type registry struct {
	mu      sync.RWMutex
	clients map[ClientID]*client
}

func newRegistry() *registry {
	return &registry{
		clients: make(map[ClientID]*client),
	}
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *registry) get(id ClientID) (c *client, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok = r.clients[id]
	return c, ok
}

// add - registers the client unless the id is held by a live connection.
func (r *registry) add(id ClientID, c *client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; ok {
		return false
	}
	r.clients[id] = c
	return true
}

// delete - removes the client if present, no-op otherwise.
func (r *registry) delete(id ClientID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// snapshot - point-in-time copy of current registrants, safe to iterate
// without holding the registry lock during delivery.
func (r *registry) snapshot() []lo.Entry[ClientID, *client] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Entries(r.clients)
}
