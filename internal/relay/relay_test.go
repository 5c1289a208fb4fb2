package relay

import (
	"encoding/json"
	"io"
	"sync"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/require"
)

type mockPeer struct {
	id       string
	mu       sync.Mutex
	received [][]byte
	closed   bool
	sendErr  error
}

func (m *mockPeer) ID() string { return m.id }

func (m *mockPeer) Send(b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.received = append(m.received, b)
	return nil
}

func (m *mockPeer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockPeer) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// notices decodes everything the peer received, optionally filtered by type.
func (m *mockPeer) notices(t *testing.T, kind string) []map[string]any {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []map[string]any
	for _, raw := range m.received {
		var n map[string]any
		require.NoError(t, json.Unmarshal(raw, &n))
		if kind == "" || n["type"] == kind {
			out = append(out, n)
		}
	}
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHub() (*Hub, *Registry) {
	reg := NewRegistry()
	bc := NewBroadcaster(testLogger(), reg)
	return NewHub(testLogger(), reg, bc), reg
}
