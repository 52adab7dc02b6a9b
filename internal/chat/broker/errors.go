package broker

import "errors"

var (
	// ErrShuttingDown - returns in case if Broker is under stop condition
	// and will not accept any new connections, so you should close such
	// connection by your own.
	ErrShuttingDown = errors.New("broker.Broker: shutting down")

	// ErrDuplicateClient - returns in case if another live connection already
	// holds the same client id. The existing registration stays untouched,
	// the caller should close the new connection.
	ErrDuplicateClient = errors.New("broker.Broker: client id is registered already")
)
