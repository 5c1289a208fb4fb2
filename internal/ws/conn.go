package ws

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"nhooyr.io/websocket"

	"chat-relay/pkg/metrics"
)

// Conn adapts a websocket connection to the relay's Peer interface. Outbound
// frames go through a bounded queue so one stalled peer never blocks a
// broadcast; on overflow the frame is dropped.
type Conn struct {
	ws     *websocket.Conn
	out    chan []byte
	id     string
	closed atomic.Bool
}

// Accept upgrades HTTP to websocket (allow all origins)
func Accept(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:  []string{"*"},
		CompressionMode: websocket.CompressionDisabled,
	})
}

// NewConn wraps a websocket connection and assigns it a stable opaque ID
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ws:  ws,
		out: make(chan []byte, 256),
		id:  connID(),
	}
}

// ID returns the identifier the relay keys its registry on
func (c *Conn) ID() string { return c.id }

// Send enqueues a frame without blocking. A full buffer drops the frame
// (best-effort delivery); only a closed connection is an error.
func (c *Conn) Send(b []byte) error {
	if c.closed.Load() {
		return net.ErrClosed
	}
	select {
	case c.out <- b:
	default:
		metrics.NoticesDropped.Inc()
	}
	return nil
}

// Read blocks until the next text/binary frame arrives
func (c *Conn) Read(ctx context.Context) ([]byte, error) {
	for {
		typ, data, err := c.ws.Read(ctx)
		if err != nil {
			return nil, err
		}
		if typ == websocket.MessageText || typ == websocket.MessageBinary {
			return data, nil
		}
	}
}

// WriteLoop drains the outbound queue and sends periodic pings.
// Exits when ctx is cancelled.
func (c *Conn) WriteLoop(ctx context.Context) {
	t := time.NewTicker(20 * time.Second)
	defer t.Stop()

	for {
		select {
		case b := <-c.out:
			_ = c.ws.Write(ctx, websocket.MessageText, b)
		case <-t.C:
			_ = c.ws.Ping(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Close shuts the connection down. Safe to call more than once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.ws.Close(websocket.StatusNormalClosure, "bye")
}

// connID generates a random 16-char hex identifier
func connID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
