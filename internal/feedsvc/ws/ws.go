package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/avvvet/ternarii-services/internal/comm"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

// Client is one spectator connection. gorilla/websocket allows a single
// concurrent writer, so every write goes through Send.
type Client struct {
	conn *websocket.Conn

	mu      sync.Mutex
	watched map[int64]struct{}
}

func (c *Client) Send(m comm.WSMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(m)
}

func (c *Client) watching(gameID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.watched[gameID]
	return ok
}

type Ws struct {
	connMap sync.Map // to keep track of socket connection with socketId
}

func NewWs() *Ws {
	return &Ws{}
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	client, ok := s.GetConnection(socketId)
	if !ok {
		log.Warnf("message for unknown socket %s", socketId)
		return
	}

	switch message.Type {
	case comm.MsgWatch, comm.MsgUnwatch:
		var req comm.WatchRequest
		if err := json.Unmarshal(message.Data, &req); err != nil || req.GameID <= 0 {
			s.sendError(client, "game_id is required")
			return
		}
		ack := comm.MsgWatched
		if message.Type == comm.MsgWatch {
			s.Watch(socketId, req.GameID)
		} else {
			s.Unwatch(socketId, req.GameID)
			ack = comm.MsgUnwatched
		}
		data, _ := json.Marshal(req)
		if err := client.Send(comm.WSMessage{Type: ack, Data: data}); err != nil {
			log.Errorf("Failed to acknowledge %s on socket %s: %v", message.Type, socketId, err)
		}
	default:
		log.Warnf("unknown event received: %s", message.Type)
		s.sendError(client, "unknown message type: "+message.Type)
	}
}

func (s *Ws) sendError(c *Client, msg string) {
	if err := c.Send(comm.WSMessage{Type: comm.MsgError, Error: msg}); err != nil {
		log.Errorf("Failed to send error message to client: %v", err)
	}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) *Client {
	c := &Client{conn: conn, watched: make(map[int64]struct{})}
	s.connMap.Store(socketId, c)
	return c
}

func (s *Ws) GetConnection(socketId string) (*Client, bool) {
	c, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return c.(*Client), true
}

func (s *Ws) Watch(socketId string, gameID int64) bool {
	c, ok := s.GetConnection(socketId)
	if !ok {
		return false
	}
	c.mu.Lock()
	c.watched[gameID] = struct{}{}
	c.mu.Unlock()
	log.Debugf("socket %s watching game %d", socketId, gameID)
	return true
}

func (s *Ws) Unwatch(socketId string, gameID int64) {
	c, ok := s.GetConnection(socketId)
	if !ok {
		return
	}
	c.mu.Lock()
	delete(c.watched, gameID)
	c.mu.Unlock()
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
}

// GetGameSockets lists the sockets currently watching gameID.
func (s *Ws) GetGameSockets(gameID int64) []string {
	var sockets []string
	s.connMap.Range(func(key, value any) bool {
		if value.(*Client).watching(gameID) {
			sockets = append(sockets, key.(string))
		}
		return true // continue iterating
	})
	return sockets
}

// Broadcast pushes event to every socket watching its game and returns the
// number of sockets reached.
func (s *Ws) Broadcast(event comm.LedgerEvent) int {
	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Failed to marshal ledger event: %v", err)
		return 0
	}
	msg := comm.WSMessage{Type: comm.MsgLedgerEvent, Data: data}

	sent := 0
	for _, socketId := range s.GetGameSockets(event.GameID) {
		c, ok := s.GetConnection(socketId)
		if !ok {
			continue
		}
		if err := c.Send(msg); err != nil {
			log.Errorf("Failed to push ledger event to socket %s: %v", socketId, err)
			continue
		}
		sent++
	}
	return sent
}
