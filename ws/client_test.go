package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusgo-backend/models"
)

type stubChat struct {
	authorizeErr error
	appendErr    error
	appended     []string
}

func (s *stubChat) Authorize(tripID, userID int) error {
	return s.authorizeErr
}

func (s *stubChat) Append(tripID, senderID int, content string) (*models.ChatMessage, error) {
	if s.appendErr != nil {
		return nil, s.appendErr
	}
	s.appended = append(s.appended, content)
	msg := messageFixture(tripID, senderID, "", content)
	return &msg, nil
}

func decodeEnvelope(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func TestHandlePostBroadcastsToPeers(t *testing.T) {
	reg := NewRegistry()
	chat := &stubChat{}

	sender := NewClient(reg, nil, 1, "alice", 42, chat)
	peer := newTestClient(reg, 2, 42)
	reg.Connect(sender)
	reg.Connect(peer)

	require.True(t, sender.handlePost("on my way"))
	assert.Equal(t, []string{"on my way"}, chat.appended)

	frames := drain(peer)
	require.Len(t, frames, 1)
	env := decodeEnvelope(t, frames[0])
	assert.Equal(t, "message", env.Type)

	assert.Empty(t, drain(sender))
}

func TestHandlePostEmptyIsIgnored(t *testing.T) {
	reg := NewRegistry()
	chat := &stubChat{}

	sender := NewClient(reg, nil, 1, "alice", 42, chat)
	peer := newTestClient(reg, 2, 42)
	reg.Connect(sender)
	reg.Connect(peer)

	require.True(t, sender.handlePost(""))
	assert.Empty(t, chat.appended)
	assert.Empty(t, drain(peer))
}

func TestHandlePostPersistFailure(t *testing.T) {
	reg := NewRegistry()
	chat := &stubChat{appendErr: assert.AnError}

	sender := NewClient(reg, nil, 1, "alice", 42, chat)
	peer := newTestClient(reg, 2, 42)
	reg.Connect(sender)
	reg.Connect(peer)

	// The connection must survive a failed save so the client can retry.
	require.True(t, sender.handlePost("on my way"))
	assert.Equal(t, 2, reg.RoomSize(RoomID(42)))

	frames := drain(sender)
	require.Len(t, frames, 1)
	env := decodeEnvelope(t, frames[0])
	assert.Equal(t, "error", env.Type)

	assert.Empty(t, drain(peer))
}
