package relay

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"log/slog"

	"chat-relay/pkg/metrics"
)

// Hub drives the three lifecycle events of a connection (open, message,
// close) plus the transport-error path, against the registry and the
// broadcaster. Every failure is contained to the one affected peer; nothing
// here can take the process down.
type Hub struct {
	log *slog.Logger
	reg *Registry
	bc  *Broadcaster
}

// NewHub wires the lifecycle handler to its registry and broadcaster
func NewHub(logger *slog.Logger, reg *Registry, bc *Broadcaster) *Hub {
	return &Hub{log: logger, reg: reg, bc: bc}
}

// Open attaches a new peer and confirms the join to that peer only. Empty
// room falls back to the default room, empty user to a generated anonymous
// identity.
func (h *Hub) Open(p Peer, room, user string) {
	if room == "" {
		room = DefaultRoom
	}
	if user == "" {
		user = anonIdentity()
	}
	h.reg.Attach(p, room, user)
	_ = p.Send(encodeSystem(fmt.Sprintf("joined room %s as %s", room, user)))
	metrics.ConnectionsActive.Inc()
	h.log.Info("relay.join", "peer", p.ID(), "room", room, "user", user)
}

// Message normalizes an inbound frame and fans it out to the peer's room.
func (h *Hub) Message(p Peer, raw []byte) {
	h.bc.Broadcast(p, normalizeText(raw))
}

// Close detaches the peer. Safe to call more than once.
func (h *Hub) Close(p Peer) {
	if _, ok := h.reg.Lookup(p); !ok {
		return
	}
	h.reg.Detach(p)
	metrics.ConnectionsActive.Dec()
	h.log.Info("relay.leave", "peer", p.ID())
}

// Error reports a transport fault to the one affected peer, then forces the
// connection down and detaches it. Other connections are untouched.
func (h *Hub) Error(p Peer, err error) {
	_ = p.Send(encodeError(err.Error()))
	_ = p.Close()
	h.Close(p)
	h.log.Warn("relay.error", "peer", p.ID(), "err", err)
}

// normalizeText extracts the text of an inbound frame. A JSON object with a
// "text" field wins; anything else is taken as raw text. Malformed payloads
// are never an error.
func normalizeText(raw []byte) string {
	var env map[string]any
	if err := json.Unmarshal(raw, &env); err == nil {
		if v, ok := env["text"]; ok && v != nil {
			if s, ok := v.(string); ok {
				return s
			}
			return fmt.Sprint(v)
		}
	}
	return string(raw)
}

// anonIdentity generates a throwaway display name for connections that pass
// no user parameter. 24 bits of randomness keeps collisions out of practical
// reach.
func anonIdentity() string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "anon"
	}
	return "anon-" + hex.EncodeToString(b)
}
