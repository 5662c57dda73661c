package ws

import (
	"encoding/json"
	"fmt"

	"campusgo-backend/models"
)

// Close codes sent during connection setup and teardown. One stable code per
// failure class so clients can distinguish causes programmatically.
const (
	CloseUnexpectedError = 4000
	CloseMissingToken    = 4001
	CloseInvalidToken    = 4002
	CloseNotAuthorized   = 4003
	CloseTripNotFound    = 4004
)

const frameTypeMessage = "message"

// inboundFrame is the client command envelope. Types other than "message" are
// reserved and ignored; malformed frames are dropped without closing.
type inboundFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// RoomID returns the chat room identifier for a trip.
func RoomID(tripID int) string {
	return fmt.Sprintf("trip_%d", tripID)
}

// MessageFrame builds the broadcast envelope for a persisted chat message.
func MessageFrame(msg models.ChatMessage) []byte {
	b, _ := json.Marshal(envelope{Type: "message", Data: msg})
	return b
}

func welcomeFrame(tripID, participants int) []byte {
	b, _ := json.Marshal(envelope{Type: "welcome", Data: map[string]any{
		"message":      fmt.Sprintf("welcome to the chat room for trip %d", tripID),
		"participants": participants,
	}})
	return b
}

func errorFrame(message string) []byte {
	b, _ := json.Marshal(envelope{Type: "error", Data: map[string]any{
		"message": message,
	}})
	return b
}
