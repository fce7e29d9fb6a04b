package websockets

import (
	"strconv"
	"sync"
)

const (
	STATUS_CONNECTED = iota
	STATUS_AUTHENTICATED
	STATUS_CLOSED
)

type Hub struct {
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	clients    map[string]*Client
	mutex      sync.RWMutex
}

func newHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, SEND_CHANNEL_SIZE),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string]*Client),
	}
}

func (h *Hub) run(m *Manager) {
	for {
		select {
		case client := <-h.register:
			m.registerClient(client)

		case client := <-h.unregister:
			m.removeClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message, m)

		case <-h.done:
			return
		}
	}
}

func (h *Hub) stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// unregisterClient is safe to call from both pumps; the second call is a no-op.
func (h *Hub) unregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (m *Manager) registerClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	m.hub.clients[client.ID] = client

	m.log.Function("registerClient").Info("Client registered", "clientID", client.ID)
}

func (m *Manager) removeClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	if _, ok := m.hub.clients[client.ID]; !ok {
		return
	}

	delete(m.hub.clients, client.ID)
	client.Status = STATUS_CLOSED
	close(client.send)

	m.log.Function("removeClient").Info("Client unregistered", "clientID", client.ID)
}

func (h *Hub) broadcastMessage(message Message, m *Manager) {
	log := m.log.Function("broadcastMessage")

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if len(h.clients) == 0 {
		log.Debug("No active clients to broadcast to", "messageID", message.ID)
		return
	}

	sentCount := 0
	for _, client := range h.clients {
		if client.trySend(message) {
			sentCount++
		}
	}

	log.Info(
		"Broadcast complete",
		"messageID",
		message.ID,
		"sentTo",
		sentCount,
		"totalClients",
		len(h.clients),
	)
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
