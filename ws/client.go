package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"campusgo-backend/models"
)

const (
	readLimit     = 1 << 20
	readWait      = 300 * time.Second
	writeWait     = 30 * time.Second
	pingInterval  = 240 * time.Second
	sendQueueSize = 256
)

// ChatService persists posts and re-checks room permission. Every accepted
// post is re-authorized so a booking cancelled mid-session revokes access.
type ChatService interface {
	Authorize(tripID, userID int) error
	Append(tripID, senderID int, content string) (*models.ChatMessage, error)
}

// Client is one live websocket connection owned by the Registry. Its identity
// is resolved once at connect time and is immutable afterwards.
type Client struct {
	id       string
	registry *Registry
	conn     *websocket.Conn
	send     chan []byte
	userID   int
	username string
	tripID   int
	room     string
	chat     ChatService

	// guarded by registry.mu
	joined map[string]struct{}
	closed bool
}

func NewClient(reg *Registry, conn *websocket.Conn, userID int, username string, tripID int, chat ChatService) *Client {
	return &Client{
		id:       uuid.NewString(),
		registry: reg,
		conn:     conn,
		send:     make(chan []byte, sendQueueSize),
		userID:   userID,
		username: username,
		tripID:   tripID,
		room:     RoomID(tripID),
		chat:     chat,
		joined:   make(map[string]struct{}),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Upgrade performs the websocket handshake. Auth failures after this point are
// reported through close codes, since the transport cannot carry HTTP statuses
// once upgraded.
func Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return upgrader.Upgrade(w, r, nil)
}

// Reject closes an upgraded connection with a terminal close code before it
// was ever registered.
func Reject(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(writeWait)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	conn.Close()
}

// Run registers the client, sends the welcome frame and services the
// connection until it drops. Registry cleanup always completes before Run
// returns.
func (c *Client) Run() {
	c.registry.Connect(c)
	c.registry.sendTo(c, welcomeFrame(c.tripID, c.registry.RoomSize(c.room)))

	go c.writePump()
	c.readPump()
}

// trySend queues a payload without blocking; a full queue reports failure so
// the registry can prune the slow consumer. Only call while holding the
// registry lock (a registered client's send channel cannot close under it).
func (c *Client) trySend(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) readPump() {
	defer func() {
		c.registry.Disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(readWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(readWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("conn", c.id).Msg("read error")
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			// Malformed input is ignored, not fatal.
			continue
		}

		switch frame.Type {
		case frameTypeMessage:
			if !c.handlePost(frame.Content) {
				return
			}
		default:
			// Reserved for future command types.
		}
	}
}

// handlePost runs the accept path for one message command: re-authorize,
// persist, then fan out to the room excluding the sender. Persistence must
// succeed before anything is broadcast. Returns false when the connection
// must close.
func (c *Client) handlePost(content string) bool {
	if content == "" {
		return true
	}

	if err := c.chat.Authorize(c.tripID, c.userID); err != nil {
		log.Warn().Str("conn", c.id).Int("user_id", c.userID).Int("trip_id", c.tripID).
			Msg("post rejected, authorization revoked")
		deadline := time.Now().Add(writeWait)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(CloseNotAuthorized, "not authorized"), deadline)
		return false
	}

	msg, err := c.chat.Append(c.tripID, c.userID, content)
	if err != nil {
		// The post failed; tell the sender and keep the connection open so
		// the client may retry.
		log.Error().Err(err).Str("conn", c.id).Int("trip_id", c.tripID).Msg("failed to persist message")
		c.registry.sendTo(c, errorFrame("message could not be saved"))
		return true
	}
	msg.SenderUsername = c.username

	c.registry.Broadcast(c.room, MessageFrame(*msg), c)
	return true
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
