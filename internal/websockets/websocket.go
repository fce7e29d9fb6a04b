package websockets

import (
	"time"

	"gamestore/internal/events"
	"gamestore/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MESSAGE_TYPE_PING          = "ping"
	MESSAGE_TYPE_PONG          = "pong"
	MESSAGE_TYPE_BROADCAST     = "broadcast"
	MESSAGE_TYPE_WELCOME       = "welcome"
	MESSAGE_TYPE_AUTH_RESPONSE = "auth_response"
	MESSAGE_TYPE_AUTH_SUCCESS  = "auth_success"
	MESSAGE_TYPE_AUTH_FAILURE  = "auth_failure"
	PING_INTERVAL              = 30 * time.Second
	PONG_TIMEOUT               = 60 * time.Second
	WRITE_TIMEOUT              = 10 * time.Second
	MAX_MESSAGE_SIZE           = 64 * 1024
	SEND_CHANNEL_SIZE          = 64
	SYSTEM_CHANNEL             = "system"
)

type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Action    string         `json:"action,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// SessionParser turns a session token into the principal it was issued for.
type SessionParser interface {
	Parse(token string) (services.Principal, error)
}

type Client struct {
	ID         string
	Principal  services.Principal
	Connection *websocket.Conn
	Manager    *Manager
	Status     int
	send       chan Message
}

// Manager runs the community feed: every catalog and community event is pushed to
// each connected client. Guests receive the feed too; logging in only tags the client.
type Manager struct {
	hub      *Hub
	sessions SessionParser
	log      logger.Logger
	eventBus *events.EventBus
}

func New(eventBus *events.EventBus, sessions SessionParser) (*Manager, error) {
	log := logger.New("websockets")

	manager := &Manager{
		hub:      newHub(),
		sessions: sessions,
		log:      log,
		eventBus: eventBus,
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(manager)

	if eventBus != nil {
		for _, channel := range []events.Channel{events.CATALOG_CHANNEL, events.COMMUNITY_CHANNEL} {
			if err := eventBus.Subscribe(channel, manager.forwardEvent); err != nil {
				manager.Close()
				return nil, log.Err("failed to subscribe to feed events", err, "channel", channel)
			}
		}
	}

	return manager, nil
}

func (m *Manager) Close() {
	m.hub.stop()
}

func (m *Manager) ClientCount() int {
	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()
	return len(m.hub.clients)
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	client := m.newClient(c)

	welcome := Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_WELCOME,
		Channel:   SYSTEM_CHANNEL,
		Action:    "connected",
		Data:      map[string]any{"clientId": client.ID},
		Timestamp: time.Now(),
	}
	if err := c.WriteJSON(welcome); err != nil {
		log.Er("failed to send welcome", err)
		if err := c.Close(); err != nil {
			log.Er("failed to close connection", err)
		}
		return
	}

	m.hub.register <- client
	defer func() {
		log.Info("Client disconnected", "clientID", client.ID)
		m.hub.unregisterClient(client)
		if err := c.Close(); err != nil {
			log.Debug("connection already closed", "clientID", client.ID)
		}
	}()

	go client.readPump()
	client.writePump()
}

func (m *Manager) newClient(c *websocket.Conn) *Client {
	return &Client{
		ID:         uuid.New().String(),
		Connection: c,
		Manager:    m,
		Status:     STATUS_CONNECTED,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
	}
}

// BroadcastMessage hands a message to the hub without blocking the caller.
func (m *Manager) BroadcastMessage(message Message) {
	log := m.log.Function("BroadcastMessage")

	select {
	case m.hub.broadcast <- message:
	default:
		log.Warn("Broadcast channel is full, dropping message", "messageID", message.ID)
	}
}

func (m *Manager) forwardEvent(event events.Event) error {
	message := Message{
		ID:        event.ID,
		Type:      MESSAGE_TYPE_BROADCAST,
		Channel:   event.Channel.String(),
		Action:    string(event.Type),
		Data:      event.Data,
		Timestamp: event.Timestamp,
	}
	if event.UserID != nil {
		message.UserID = itoa(*event.UserID)
	}

	m.BroadcastMessage(message)
	return nil
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")
	defer func() {
		c.Manager.hub.unregisterClient(c)
		_ = c.Connection.Close()
	}()

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
		log.Er("failed to set read deadline", err, "clientID", c.ID)
	}
	c.Connection.SetPongHandler(func(string) error {
		if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
			log.Er("failed to set read deadline in pong handler", err, "clientID", c.ID)
		}
		return nil
	})

	for {
		var message Message
		if err := c.Connection.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				log.Er("Unexpected close error", err, "clientID", c.ID)
			}
			break
		}

		message.ID = uuid.New().String()
		message.Timestamp = time.Now()

		c.routeMessage(message)
	}
}

func (c *Client) routeMessage(message Message) {
	log := c.Manager.log.Function("routeMessage")

	switch message.Type {
	case MESSAGE_TYPE_AUTH_RESPONSE:
		c.handleAuthResponse(message)
	case MESSAGE_TYPE_PING:
		c.enqueue(Message{
			ID:        uuid.New().String(),
			Type:      MESSAGE_TYPE_PONG,
			Channel:   SYSTEM_CHANNEL,
			Timestamp: time.Now(),
		})
	default:
		log.Warn("Unknown message type", "clientID", c.ID, "type", message.Type)
	}
}

// enqueue drops the message rather than block when the client is not draining.
func (c *Client) enqueue(message Message) bool {
	c.Manager.hub.mutex.RLock()
	defer c.Manager.hub.mutex.RUnlock()
	return c.trySend(message)
}

// trySend requires the hub lock to be held.
func (c *Client) trySend(message Message) bool {
	if c.Status == STATUS_CLOSED {
		return false
	}

	select {
	case c.send <- message:
		return true
	default:
		c.Manager.log.Function("trySend").Warn("Client send channel full, dropping message",
			"clientID", c.ID, "messageID", message.ID)
		return false
	}
}

func (c *Client) writePump() {
	log := c.Manager.log.Function("writePump")

	ticker := time.NewTicker(PING_INTERVAL)
	defer func() {
		ticker.Stop()
		_ = c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline", err, "clientID", c.ID)
			}
			if !ok {
				_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Connection.WriteJSON(message); err != nil {
				log.Er("WebSocket write error", err, "clientID", c.ID)
				return
			}

		case <-ticker.C:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline for ping", err, "clientID", c.ID)
			}
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
