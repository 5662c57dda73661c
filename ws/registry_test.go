package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusgo-backend/models"
)

func newTestClient(reg *Registry, userID int, tripID int) *Client {
	return NewClient(reg, nil, userID, "user", tripID, nil)
}

func messageFixture(tripID, senderID int, username, content string) models.ChatMessage {
	return models.ChatMessage{
		ID:             1,
		TripID:         tripID,
		SenderID:       senderID,
		Content:        content,
		MessageType:    models.MessageTypeText,
		Timestamp:      time.Now().UTC(),
		SenderUsername: username,
	}
}

func drain(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return out
			}
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestConnectDisconnectAccounting(t *testing.T) {
	reg := NewRegistry()
	room := RoomID(42)

	a := newTestClient(reg, 1, 42)
	b := newTestClient(reg, 2, 42)

	reg.Connect(a)
	reg.Connect(b)
	assert.Equal(t, 2, reg.RoomSize(room))

	reg.Disconnect(a)
	assert.Equal(t, 1, reg.RoomSize(room))

	reg.Disconnect(b)
	assert.Equal(t, 0, reg.RoomSize(room))
}

func TestDisconnectIdempotent(t *testing.T) {
	reg := NewRegistry()

	c := newTestClient(reg, 1, 7)
	reg.Connect(c)

	reg.Disconnect(c)
	reg.Disconnect(c)
	assert.Equal(t, 0, reg.RoomSize(RoomID(7)))
}

func TestDisconnectNeverConnected(t *testing.T) {
	reg := NewRegistry()

	c := newTestClient(reg, 1, 7)
	reg.Disconnect(c)

	// The send channel is closed exactly once and the client cannot rejoin.
	reg.Connect(c)
	assert.Equal(t, 0, reg.RoomSize(RoomID(7)))
}

func TestBroadcastExcludesSender(t *testing.T) {
	reg := NewRegistry()
	room := RoomID(42)

	sender := newTestClient(reg, 1, 42)
	b := newTestClient(reg, 2, 42)
	c := newTestClient(reg, 3, 42)
	reg.Connect(sender)
	reg.Connect(b)
	reg.Connect(c)

	payload := []byte(`{"type":"message"}`)
	delivered := reg.Broadcast(room, payload, sender)

	assert.Equal(t, 2, delivered)
	assert.Empty(t, drain(sender))
	require.Len(t, drain(b), 1)
	require.Len(t, drain(c), 1)
}

func TestBroadcastOtherRoomUntouched(t *testing.T) {
	reg := NewRegistry()

	a := newTestClient(reg, 1, 42)
	other := newTestClient(reg, 2, 99)
	reg.Connect(a)
	reg.Connect(other)

	delivered := reg.Broadcast(RoomID(42), []byte("hi"), nil)

	assert.Equal(t, 1, delivered)
	assert.Empty(t, drain(other))
}

func TestBroadcastPrunesFullQueue(t *testing.T) {
	reg := NewRegistry()
	room := RoomID(42)

	slow := newTestClient(reg, 1, 42)
	fast := newTestClient(reg, 2, 42)
	reg.Connect(slow)
	reg.Connect(fast)

	for i := 0; i < sendQueueSize; i++ {
		require.True(t, slow.trySend([]byte("fill")))
	}

	delivered := reg.Broadcast(room, []byte("overflow"), nil)

	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, reg.RoomSize(room))

	// The slow consumer was dropped with disconnect semantics.
	assert.True(t, slow.closed)
	assert.False(t, fast.closed)
}

func TestSendToUserAllConnections(t *testing.T) {
	reg := NewRegistry()

	c1 := newTestClient(reg, 5, 1)
	c2 := newTestClient(reg, 5, 2)
	other := newTestClient(reg, 6, 1)
	reg.Connect(c1)
	reg.Connect(c2)
	reg.Connect(other)

	reg.SendToUser(5, []byte("notice"))

	assert.Len(t, drain(c1), 1)
	assert.Len(t, drain(c2), 1)
	assert.Empty(t, drain(other))
}

func TestRoomScenario(t *testing.T) {
	reg := NewRegistry()
	room := RoomID(42)

	ownerA := NewClient(reg, nil, 1, "alice", 42, nil)
	bookerB := NewClient(reg, nil, 2, "bob", 42, nil)
	reg.Connect(ownerA)
	reg.Connect(bookerB)
	require.Equal(t, 2, reg.RoomSize(room))

	payload := MessageFrame(messageFixture(42, 1, "alice", "hello"))
	delivered := reg.Broadcast(room, payload, ownerA)
	assert.Equal(t, 1, delivered)
	assert.Empty(t, drain(ownerA))

	got := drain(bookerB)
	require.Len(t, got, 1)
	assert.Contains(t, string(got[0]), `"content":"hello"`)
	assert.Contains(t, string(got[0]), `"sender_username":"alice"`)

	reg.Disconnect(bookerB)
	assert.Equal(t, 1, reg.RoomSize(room))

	reg.Disconnect(ownerA)
	assert.Equal(t, 0, reg.RoomSize(room))
}

func TestSendToAfterDisconnect(t *testing.T) {
	reg := NewRegistry()

	c := newTestClient(reg, 1, 42)
	reg.Connect(c)
	reg.Disconnect(c)

	assert.False(t, reg.sendTo(c, []byte("late")))
}
