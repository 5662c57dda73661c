// Package ws implements the real-time chat core: a session registry that
// multiplexes per-trip rooms over websocket connections, and the broadcast
// protocol that fans messages out to room participants.
package ws

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Registry tracks live connections indexed by room and by user. It is the only
// shared mutable state in the chat core; one lock guards both indexes so that
// Connect, Disconnect and Broadcast are atomic with respect to each other.
//
// A Registry is created once at process start and handed to every connection
// handler; it has no package-level instance.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	users map[int]map[*Client]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]map[*Client]struct{}),
		users: make(map[int]map[*Client]struct{}),
	}
}

// Connect registers the client under its room and its user's connection set.
// Callers must have authorized the user for the room first. The room is
// created lazily on first join.
func (r *Registry) Connect(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.closed {
		return
	}
	if r.rooms[c.room] == nil {
		r.rooms[c.room] = make(map[*Client]struct{})
	}
	r.rooms[c.room][c] = struct{}{}
	c.joined[c.room] = struct{}{}

	if r.users[c.userID] == nil {
		r.users[c.userID] = make(map[*Client]struct{})
	}
	r.users[c.userID][c] = struct{}{}

	log.Debug().Str("conn", c.id).Str("room", c.room).Int("user_id", c.userID).
		Int("participants", len(r.rooms[c.room])).Msg("client joined room")
}

// Disconnect removes the client from every room it joined and from its user's
// connection set, dropping empty room entries. Idempotent: disconnecting a
// client that was never connected, or twice, is a no-op.
func (r *Registry) Disconnect(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(c)
}

func (r *Registry) removeLocked(c *Client) {
	if c.closed {
		return
	}
	c.closed = true

	for room := range c.joined {
		if set, ok := r.rooms[room]; ok {
			delete(set, c)
			if len(set) == 0 {
				delete(r.rooms, room)
			}
		}
		delete(c.joined, room)
	}
	if set, ok := r.users[c.userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(r.users, c.userID)
		}
	}
	close(c.send)

	log.Debug().Str("conn", c.id).Str("room", c.room).Int("user_id", c.userID).
		Msg("client disconnected")
}

// Broadcast queues payload to every connection in the room except exclude and
// returns the number of successful deliveries. A connection whose send queue
// is full is treated as dead: it is pruned with disconnect semantics while
// delivery to the rest proceeds.
func (r *Registry) Broadcast(room string, payload []byte, exclude *Client) int {
	r.mu.RLock()
	var delivered int
	var stale []*Client
	for c := range r.rooms[room] {
		if c == exclude {
			continue
		}
		if c.trySend(payload) {
			delivered++
		} else {
			stale = append(stale, c)
		}
	}
	r.mu.RUnlock()

	for _, c := range stale {
		log.Warn().Str("conn", c.id).Str("room", room).Int("user_id", c.userID).
			Msg("send queue full, dropping connection")
		r.Disconnect(c)
	}
	return delivered
}

// BroadcastRoom fans out to the whole room with no exclusion. Used by the
// REST post path, where the sender does not hold a socket.
func (r *Registry) BroadcastRoom(room string, payload []byte) int {
	return r.Broadcast(room, payload, nil)
}

// SendToUser delivers payload to every connection registered for the user,
// across all rooms, best effort.
func (r *Registry) SendToUser(userID int, payload []byte) {
	r.mu.RLock()
	var stale []*Client
	for c := range r.users[userID] {
		if !c.trySend(payload) {
			stale = append(stale, c)
		}
	}
	r.mu.RUnlock()

	for _, c := range stale {
		r.Disconnect(c)
	}
}

// sendTo queues a payload to a single client. Safe against a concurrent
// disconnect closing the send channel.
func (r *Registry) sendTo(c *Client, payload []byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c.closed {
		return false
	}
	return c.trySend(payload)
}

// RoomSize returns the current connection count in a room, 0 if it does not exist.
func (r *Registry) RoomSize(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room])
}
