package pitch

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a connected founder or investor.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan interface{} // outbound payloads for this client
	Done   chan struct{}    // closed when the client goes away
}

// ConnectionManager tracks live WebSocket connections by user UUID.
type ConnectionManager struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[string]*Client),
	}
}

// AddClient registers a connection, displacing any previous one for the
// same user.
func (cm *ConnectionManager) AddClient(userID string, conn *websocket.Conn) *Client {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if existing, ok := cm.clients[userID]; ok {
		close(existing.Done)
		existing.Conn.Close()
	}

	client := &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan interface{}, 32),
		Done:   make(chan struct{}),
	}

	cm.clients[userID] = client
	return client
}

func (cm *ConnectionManager) RemoveClient(userID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if client, ok := cm.clients[userID]; ok {
		close(client.Done)
		delete(cm.clients, userID)
	}
}

func (cm *ConnectionManager) IsOnline(userID string) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	_, exists := cm.clients[userID]
	return exists
}

func (cm *ConnectionManager) GetOnlineUsers() []string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	users := make([]string, 0, len(cm.clients))
	for userID := range cm.clients {
		users = append(users, userID)
	}
	return users
}

// DeliverToUser pushes a payload to a connected user. Returns an error if
// the user is offline or their queue is saturated.
func (cm *ConnectionManager) DeliverToUser(userID string, payload interface{}) error {
	cm.mu.RLock()
	client, ok := cm.clients[userID]
	cm.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user %s is not online", userID)
	}

	select {
	case client.Send <- payload:
		return nil
	case <-client.Done:
		return fmt.Errorf("user %s disconnected", userID)
	default:
		return fmt.Errorf("user %s message queue full", userID)
	}
}
