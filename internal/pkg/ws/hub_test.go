package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addClient inserts a connection-less client straight into the hub's table,
// bypassing registerClient which logs the remote address.
func addClient(h *Hub, userID int64, buffer int) *Client {
	client := &Client{
		hub:    h,
		send:   make(chan []byte, buffer),
		userID: userID,
		logger: zerolog.Nop(),
	}

	h.mu.Lock()
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*Client]bool)
	}
	h.clients[userID][client] = true
	h.mu.Unlock()

	return client
}

func TestHub_DeliversToSubscribedUser(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	client := addClient(hub, 1, 8)

	hub.Send(&Push{UserID: 1, NotificationID: 42, Type: "NEW_COMMENT", Message: "hello"})

	select {
	case data := <-client.send:
		var push Push
		require.NoError(t, json.Unmarshal(data, &push))
		assert.Equal(t, int64(42), push.NotificationID)
		assert.Equal(t, "NEW_COMMENT", push.Type)
	case <-time.After(time.Second):
		t.Fatal("push never reached the client")
	}
}

func TestHub_SendWithoutSubscribersIsSafe(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	done := make(chan struct{})
	go func() {
		hub.Send(&Push{UserID: 99, NotificationID: 1, Type: "JOIN_REQUEST"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Send blocked with no subscribers")
	}
}

func TestHub_StaleClientDoesNotWedgeDelivery(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	// A client whose send buffer can never accept a message
	stale := addClient(hub, 1, 0)
	healthy := addClient(hub, 2, 8)

	// Shedding the stale client must not stall the hub goroutine
	hub.Send(&Push{UserID: 1, NotificationID: 1, Type: "JOIN_REQUEST"})

	// A later push for another user still has to go through
	done := make(chan struct{})
	go func() {
		hub.Send(&Push{UserID: 2, NotificationID: 2, Type: "JOIN_APPROVED"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped accepting pushes after shedding a stale client")
	}

	select {
	case data := <-healthy.send:
		var push Push
		require.NoError(t, json.Unmarshal(data, &push))
		assert.Equal(t, int64(2), push.NotificationID)
	case <-time.After(time.Second):
		t.Fatal("healthy client never received its push")
	}

	// The stale client was dropped and its channel closed
	assert.Equal(t, 0, hub.ConnectionCount(1))
	_, open := <-stale.send
	assert.False(t, open)
}
