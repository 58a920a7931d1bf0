package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.GetClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", h.GetClientCount(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestBroadcastToUserDropsBlockedClients(t *testing.T) {
	h := NewHub()
	go h.Run()

	// Unbuffered send channels with no reader, so every delivery attempt
	// hits the non-blocking default branch and drops the client.
	const clients = 64
	for i := 0; i < clients; i++ {
		h.register <- &Client{hub: h, send: make(chan []byte), userID: 7}
	}
	waitForClients(t, h, clients)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.BroadcastToUser(7, Message{Type: "notification", Data: "tuition due"})
		}()
	}
	wg.Wait()

	if got := h.GetClientCount(); got != 0 {
		t.Fatalf("client count after broadcasts = %d, want 0", got)
	}
}

func TestBroadcastToUserSkipsOtherUsers(t *testing.T) {
	h := NewHub()
	go h.Run()

	mine := &Client{hub: h, send: make(chan []byte, 1), userID: 1}
	other := &Client{hub: h, send: make(chan []byte, 1), userID: 2}
	h.register <- mine
	h.register <- other
	waitForClients(t, h, 2)

	h.BroadcastToUser(1, Message{Type: "notification"})

	select {
	case <-mine.send:
	default:
		t.Fatal("expected a message for user 1")
	}
	select {
	case msg := <-other.send:
		t.Fatalf("user 2 received unexpected message %s", msg)
	default:
	}
}

func TestServeWSDeliversToUser(t *testing.T) {
	h := NewHub()
	go h.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeWS(w, r, 42)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitForClients(t, h, 1)

	h.BroadcastToUser(42, Message{Type: "notification", Data: "fee reminder"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(payload), `"type":"notification"`) {
		t.Fatalf("payload = %s, want a notification message", payload)
	}

	conn.Close()
	waitForClients(t, h, 0)
}
