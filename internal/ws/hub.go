package ws

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one WebSocket connection watching a scene's panel.
type Client struct {
	UserID  string
	SceneID string
	Send    chan []byte
	Conn    *websocket.Conn
}

// Hub fans panel updates out to every client watching the same scene.
type Hub struct {
	Clients    map[string]map[*Client]bool // sceneID -> clients
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan BroadcastMessage
	mu         sync.RWMutex
}

type BroadcastMessage struct {
	SceneID string
	Data    []byte
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan BroadcastMessage, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Clients[client.SceneID] == nil {
				h.Clients[client.SceneID] = make(map[*Client]bool)
			}
			h.Clients[client.SceneID][client] = true
			h.mu.Unlock()
			log.Printf("[WS] Client %s joined scene %s", client.UserID, client.SceneID)
		case client := <-h.Unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
		case msg := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.Clients[msg.SceneID] {
				select {
				case client.Send <- msg.Data:
				default:
					log.Printf("[WS] Dropping slow client %s in scene %s", client.UserID, msg.SceneID)
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove drops client and closes its send channel. Callers hold h.mu.
func (h *Hub) remove(client *Client) {
	clients, ok := h.Clients[client.SceneID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.Clients, client.SceneID)
	}
}

// Publish queues data for every client of sceneID without blocking the caller.
func (h *Hub) Publish(sceneID string, data []byte) {
	select {
	case h.Broadcast <- BroadcastMessage{SceneID: sceneID, Data: data}:
	default:
		log.Printf("[WS] Broadcast queue full, dropping update for scene %s", sceneID)
	}
}

// GetActiveSceneUsersCount returns the number of clients watching sceneID.
func (h *Hub) GetActiveSceneUsersCount(sceneID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients[sceneID])
}
