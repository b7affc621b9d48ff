package ws_session

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/boardswap/core/internal/model"
	"github.com/gorilla/websocket"
)

type MessageType string

const (
	ParticipantJoined MessageType = "participant_joined"
	ParticipantReady  MessageType = "participant_ready"
	SyncUpdate        MessageType = "sync_update"
	GameSelected      MessageType = "game_selected"
	SessionClosed     MessageType = "session_closed"
)

type Message struct {
	Type      MessageType            `json:"type"`
	SessionID string                 `json:"session_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID model.SessionID
}

type Hub struct {
	mu sync.RWMutex

	// Sets of clients per session.
	sessions map[model.SessionID]map[*Client]bool

	logger *slog.Logger
}

func New(logger *slog.Logger) *Hub {
	return &Hub{
		sessions: make(map[model.SessionID]map[*Client]bool),
		logger:   logger,
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[client.SessionID]; !ok {
		h.sessions[client.SessionID] = make(map[*Client]bool)
	}
	h.sessions[client.SessionID][client] = true

	h.logger.Info("client registered", "session_id", client.SessionID)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if session, ok := h.sessions[client.SessionID]; ok {
		delete(session, client)
		if len(session) == 0 {
			delete(h.sessions, client.SessionID)
		}
	}
	h.logger.Info("client unregistered", "session_id", client.SessionID)
}

// BroadcastToSession fans the message out to every client of the
// session. Broadcasts arrive from concurrent handlers, and a slow
// consumer gets dropped here, so the write lock is required.
func (h *Hub) BroadcastToSession(sessionID model.SessionID, message Message) {
	messageBytes, _ := json.Marshal(message)

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	for client := range clients {
		select {
		case client.Send <- messageBytes:
		default:
			close(client.Send)
			delete(clients, client)
			h.logger.Info("slow client dropped", "session_id", sessionID)
		}
	}
	if len(clients) == 0 {
		delete(h.sessions, sessionID)
	}
}

func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.Conn.Close()
	}()

	for {
		_, _, err := client.Conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		err := client.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			break
		}
	}
}
