package relay

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_RoomScopedDelivery(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantReceived map[string]int
	}{
		{
			name: "delivers to whole room including the sender",
			text: "hi",
			wantReceived: map[string]int{
				"sender": 1, "peer1": 1, "peer2": 1, "outsider": 0,
			},
		},
		{
			name: "empty text is dropped silently",
			text: "",
			wantReceived: map[string]int{
				"sender": 0, "peer1": 0, "peer2": 0, "outsider": 0,
			},
		},
		{
			name: "whitespace-only text is dropped silently",
			text: "  \t\n ",
			wantReceived: map[string]int{
				"sender": 0, "peer1": 0, "peer2": 0, "outsider": 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			bc := NewBroadcaster(testLogger(), reg)

			peers := map[string]*mockPeer{
				"sender":   {id: "sender"},
				"peer1":    {id: "peer1"},
				"peer2":    {id: "peer2"},
				"outsider": {id: "outsider"},
			}
			reg.Attach(peers["sender"], "lobby", "alice")
			reg.Attach(peers["peer1"], "lobby", "bob")
			reg.Attach(peers["peer2"], "lobby", "carol")
			reg.Attach(peers["outsider"], "elsewhere", "dave")

			bc.Broadcast(peers["sender"], tt.text)

			for id, want := range tt.wantReceived {
				assert.Len(t, peers[id].notices(t, "message"), want, "peer %s", id)
			}
		})
	}
}

func TestBroadcaster_NoticeShape(t *testing.T) {
	reg := NewRegistry()
	bc := NewBroadcaster(testLogger(), reg)

	sender := &mockPeer{id: "sender"}
	reg.Attach(sender, "lobby", "alice")

	bc.Broadcast(sender, "  hi  ")

	notices := sender.notices(t, "message")
	require.Len(t, notices, 1)
	n := notices[0]
	assert.Equal(t, "lobby", n["room"])
	assert.Equal(t, "alice", n["user"])
	assert.Equal(t, "hi", n["text"], "text is trimmed before delivery")

	ts, ok := n["ts"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestBroadcaster_RecipientFailureIsIsolated(t *testing.T) {
	reg := NewRegistry()
	bc := NewBroadcaster(testLogger(), reg)

	sender := &mockPeer{id: "sender"}
	broken := &mockPeer{id: "broken", sendErr: errors.New("transport mid-close")}
	healthy := &mockPeer{id: "healthy"}
	reg.Attach(sender, "lobby", "alice")
	reg.Attach(broken, "lobby", "bob")
	reg.Attach(healthy, "lobby", "carol")

	bc.Broadcast(sender, "hi")

	assert.Len(t, healthy.notices(t, "message"), 1)
	assert.Len(t, sender.notices(t, "message"), 1)
}

func TestBroadcaster_UnknownOriginFallsBack(t *testing.T) {
	reg := NewRegistry()
	bc := NewBroadcaster(testLogger(), reg)

	general := &mockPeer{id: "general"}
	reg.Attach(general, "general", "bob")

	// Never attached; out-of-order lifecycle should not fail the message.
	ghost := &mockPeer{id: "ghost"}
	bc.Broadcast(ghost, "hi")

	notices := general.notices(t, "message")
	require.Len(t, notices, 1)
	assert.Equal(t, "general", notices[0]["room"])
	assert.Equal(t, "anon", notices[0]["user"])
}
