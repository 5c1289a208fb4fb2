// Package relay tracks which live connections belong to which room and fans
// inbound messages out to the right peers. All state is process-lifetime
// only; nothing here survives a restart.
package relay

// Peer is one live client connection as seen by the relay. The transport
// layer owns the socket; the relay only enqueues outbound frames and asks
// for a close when a connection has to go.
type Peer interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Membership binds a room and display identity to one connection for its
// lifetime. A connection cannot change rooms without reconnecting.
type Membership struct {
	Room string
	User string
}

// DefaultRoom is where connections land when the opening request names none.
const DefaultRoom = "general"

// fallback for lookups that race a close; keeps delivery alive instead of
// failing the message.
var fallbackMembership = Membership{Room: DefaultRoom, User: "anon"}
