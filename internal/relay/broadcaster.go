package relay

import (
	"strings"
	"time"

	"log/slog"

	"chat-relay/pkg/metrics"
)

// Broadcaster fans a message from one peer out to everyone in the same room,
// sender included. The relay is a mirror: clients rely on seeing their own
// message echoed back.
type Broadcaster struct {
	log *slog.Logger
	reg *Registry
}

// NewBroadcaster wires the broadcaster to a registry
func NewBroadcaster(logger *slog.Logger, reg *Registry) *Broadcaster {
	return &Broadcaster{log: logger, reg: reg}
}

// Broadcast trims the text and delivers a message notice to every member of
// the origin's room. Empty text is dropped without any notice to anyone. A
// send failure to one peer never aborts delivery to the rest.
func (b *Broadcaster) Broadcast(origin Peer, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	m, ok := b.reg.Lookup(origin)
	if !ok {
		m = fallbackMembership
	}

	out := encodeMessage(m, text, time.Now())
	for _, p := range b.reg.MembersOf(m.Room) {
		if err := p.Send(out); err != nil {
			b.log.Debug("relay.send.fail", "peer", p.ID(), "room", m.Room, "err", err)
		}
	}
	metrics.MessagesBroadcast.Inc()
}
