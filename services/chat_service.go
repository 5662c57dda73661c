package services

import (
	"errors"
	"fmt"
	"strconv"

	"campusgo-backend/config"
	"campusgo-backend/models"
	"campusgo-backend/repository"
	"campusgo-backend/ws"
)

var (
	ErrTripNotFound  = errors.New("trip not found")
	ErrNotAuthorized = errors.New("not authorized for this trip")
	ErrPersistence   = errors.New("message store unavailable")
)

// Broadcaster fans a payload out to every connection in a room. Implemented by
// *ws.Registry; an interface here keeps the dependency one-directional.
type Broadcaster interface {
	BroadcastRoom(room string, payload []byte) int
}

// ChatService is the chat history service plus the room access policy. The
// websocket core depends on Authorize and Append; the REST surface uses Post
// and History.
type ChatService struct {
	msgs     repository.MessageRepository
	trips    repository.TripRepository
	bookings repository.BookingRepository
	users    repository.UserRepository
	hub      Broadcaster
	config   *config.Config
}

func NewChatService(
	mr repository.MessageRepository,
	tr repository.TripRepository,
	br repository.BookingRepository,
	ur repository.UserRepository,
	hub Broadcaster,
	cfg *config.Config,
) *ChatService {
	return &ChatService{msgs: mr, trips: tr, bookings: br, users: ur, hub: hub, config: cfg}
}

// Authorize permits a user iff the trip exists and the user is its owner or
// holds a confirmed booking on it. One trip fetch plus one booking existence
// check; no per-message re-fetching of related entities.
func (s *ChatService) Authorize(tripID, userID int) error {
	trip, err := s.trips.FindByID(tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTripNotFound
		}
		return err
	}
	if trip.OwnerID == userID {
		return nil
	}
	booked, err := s.bookings.ExistsConfirmed(tripID, userID)
	if err != nil {
		return err
	}
	if !booked {
		return ErrNotAuthorized
	}
	return nil
}

// Append persists a message. Durability precedes delivery: callers must not
// broadcast unless Append succeeded.
func (s *ChatService) Append(tripID, senderID int, content string) (*models.ChatMessage, error) {
	if content == "" {
		return nil, errors.New("empty content")
	}
	if len(content) > s.config.MaxMessageLength {
		return nil, errors.New("message too long (max " + strconv.Itoa(s.config.MaxMessageLength) + " characters)")
	}

	msg := &models.ChatMessage{
		TripID:      tripID,
		SenderID:    senderID,
		Content:     content,
		MessageType: models.MessageTypeText,
	}
	if err := s.msgs.Save(msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msg, nil
}

// Post is the REST path: authorize, persist, then fan out to the whole room.
// The poster may not hold a socket, so nothing is excluded from the broadcast.
func (s *ChatService) Post(tripID, senderID int, senderUsername, content string) (*models.ChatMessage, error) {
	if err := s.Authorize(tripID, senderID); err != nil {
		return nil, err
	}
	msg, err := s.Append(tripID, senderID, content)
	if err != nil {
		return nil, err
	}
	msg.SenderUsername = senderUsername

	s.hub.BroadcastRoom(ws.RoomID(tripID), ws.MessageFrame(*msg))
	return msg, nil
}

// History returns the trip's messages oldest first, gated by the same access
// policy as the live room.
func (s *ChatService) History(tripID, userID, skip, limit int) ([]models.ChatMessage, error) {
	if err := s.Authorize(tripID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	msgs, err := s.msgs.ListByTrip(tripID, skip, limit)
	if err != nil {
		return nil, err
	}

	// Resolve sender usernames once per distinct sender.
	names := make(map[int]string)
	for i := range msgs {
		name, ok := names[msgs[i].SenderID]
		if !ok {
			if u, err := s.users.FindByID(msgs[i].SenderID); err == nil {
				name = u.Username
			} else {
				name = "unknown"
			}
			names[msgs[i].SenderID] = name
		}
		msgs[i].SenderUsername = name
	}
	return msgs, nil
}
