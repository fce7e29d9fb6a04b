package websockets

import (
	"time"

	"github.com/google/uuid"
)

// handleAuthResponse tags the client with the principal behind its session token. A bad
// token leaves the client connected as a guest.
func (c *Client) handleAuthResponse(message Message) {
	log := c.Manager.log.Function("handleAuthResponse")

	if c.Manager.sessions == nil {
		c.sendAuthFailure("Authentication unavailable")
		return
	}

	token, ok := message.Data["token"].(string)
	if !ok || token == "" {
		log.Warn("Invalid token in auth response", "clientID", c.ID)
		c.sendAuthFailure("Invalid token format")
		return
	}

	principal, err := c.Manager.sessions.Parse(token)
	if err != nil {
		log.Info("WebSocket token validation failed", "clientID", c.ID)
		c.sendAuthFailure("Authentication failed")
		return
	}

	c.Manager.hub.mutex.Lock()
	c.Principal = principal
	c.Status = STATUS_AUTHENTICATED
	c.Manager.hub.mutex.Unlock()

	log.Info("Client authenticated", "clientID", c.ID, "username", principal.Username)

	c.enqueue(Message{
		ID:      uuid.New().String(),
		Type:    MESSAGE_TYPE_AUTH_SUCCESS,
		Channel: SYSTEM_CHANNEL,
		Action:  "authenticated",
		UserID:  itoa(principal.ID),
		Data: map[string]any{
			"username": principal.Username,
			"kind":     string(principal.Kind),
		},
		Timestamp: time.Now(),
	})
}

func (c *Client) sendAuthFailure(reason string) {
	c.enqueue(Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_AUTH_FAILURE,
		Channel:   SYSTEM_CHANNEL,
		Action:    "authentication_failed",
		Data:      map[string]any{"reason": reason},
		Timestamp: time.Now(),
	})
}
