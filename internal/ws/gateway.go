package ws

import (
	"context"
	"errors"
	"net/http"

	"log/slog"
	"nhooyr.io/websocket"

	"chat-relay/internal/relay"
)

// Gateway bridges HTTP upgrades into the relay lifecycle.
type Gateway struct {
	log *slog.Logger
	hub *relay.Hub
}

// NewGateway sets up the websocket entry point for the relay
func NewGateway(logger *slog.Logger, hub *relay.Hub) *Gateway {
	return &Gateway{log: logger, hub: hub}
}

// ServeWS handles a new /ws connection: join on open, fan out each inbound
// frame, detach on disconnect. A transport fault gets an error notice and a
// forced close; either way the connection ends detached.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	room := r.URL.Query().Get("room")
	user := r.URL.Query().Get("user")

	conn, err := Accept(w, r)
	if err != nil {
		g.log.Error("ws.accept", "err", err)
		return
	}

	c := NewConn(conn)
	go c.WriteLoop(ctx)

	g.hub.Open(c, room, user)

	for {
		payload, err := c.Read(ctx)
		if err != nil {
			if isTransportFault(ctx, err) {
				g.hub.Error(c, err)
			}
			break
		}
		g.hub.Message(c, payload)
	}

	g.hub.Close(c)
	_ = c.Close()
}

// isTransportFault separates real faults from a peer hanging up or the
// server shutting down.
func isTransportFault(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return false
	}
	return websocket.CloseStatus(err) == -1
}
