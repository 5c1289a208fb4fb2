package ws

import (
	"context"
	"errors"
	"net"
	"testing"

	"nhooyr.io/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTransportFault(t *testing.T) {
	ctx := context.Background()

	assert.True(t, isTransportFault(ctx, errors.New("read tcp: connection reset")))

	// A close frame from the peer is a hang-up, not a fault.
	assert.False(t, isTransportFault(ctx, websocket.CloseError{Code: websocket.StatusNormalClosure}))

	// Server shutdown cancels the request context.
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.False(t, isTransportFault(cancelled, context.Canceled))
}

func TestConnSendNeverBlocks(t *testing.T) {
	c := NewConn(nil)

	// Far beyond the queue capacity; overflow drops instead of blocking.
	for i := 0; i < 1000; i++ {
		require.NoError(t, c.Send([]byte("x")))
	}

	c.closed.Store(true)
	assert.ErrorIs(t, c.Send([]byte("x")), net.ErrClosed)
}

func TestConnIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := connID()
		assert.Len(t, id, 16)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
