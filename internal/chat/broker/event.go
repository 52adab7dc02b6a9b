package broker

import "time"

// ClientID - identifier of a connected peer, derived from its remote
// network address at accept time. Unique among simultaneously kept
// connections for the lifetime of each one.
type ClientID string

// Event - base event bound to the client which caused it.
// Events carry the client id only, never the socket, so consumers
// can not touch connection state owned by the broker.
type Event struct {
	Client     ClientID
	OriginTime time.Time
}

// MessageEvent - occurres when a chat line has arrived from a client.
type MessageEvent struct {
	Event
	Text string
}

// JoinEvent - occurres after new client was registered.
type JoinEvent struct {
	Event
}

// PartAction - describes the type of parting with a client.
type PartAction int

const (
	_ PartAction = iota
	// PartActionLeft - the parting is occurred due to connection was closed.
	PartActionLeft
	// PartActionTimeout - the parting is occurred due to idle timeout.
	PartActionTimeout
)

// PartEvent - occurres after parting with a client.
type PartEvent struct {
	Event
	Action PartAction
}
