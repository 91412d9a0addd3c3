package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub tracks connected clients per user and pushes notification payloads to
// them. Unlike a chat hub there is no client→server traffic; the feed is
// one-way.
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	deliver    chan *Push

	mu sync.RWMutex

	logger zerolog.Logger
}

// Push is a notification payload addressed to a single user
type Push struct {
	UserID int64 `json:"-"`

	NotificationID int64     `json:"notificationId"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	GuildID        *int64    `json:"guildId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan *Push),
		logger:     logger,
	}
}

// Run processes registrations and deliveries. Start it once in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case push := <-h.deliver:
			h.deliverPush(push)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Notification client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)
			if len(clients) == 0 {
				delete(h.clients, client.userID)
			}

			h.logger.Info().
				Int64("userID", client.userID).
				Msg("Notification client unregistered")
		}
	}
}

func (h *Hub) deliverPush(push *Push) {
	h.mu.RLock()
	clients, ok := h.clients[push.UserID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	data, err := json.Marshal(push)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().Err(err).Int64("userID", push.UserID).Msg("Failed to marshal push")
		return
	}

	var stale []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Send buffer full: the client is slow or gone
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	// Drop stale clients inline. Sending on h.unregister here would block
	// forever: Run is the only receiver and it is executing this method.
	for _, client := range stale {
		h.unregisterClient(client)
	}
}

// Send queues a push for delivery to all of the user's connections. Safe to
// call when the user has no open connection.
func (h *Hub) Send(push *Push) {
	h.deliver <- push
}

// ConnectionCount returns the number of open connections for a user
func (h *Hub) ConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
