package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"giftwrap/internal/config"
	"giftwrap/internal/room"
	"giftwrap/internal/store"
)

type message struct {
	Action string                 `json:"action"`
	Data   map[string]interface{} `json:"data"`
}

func setup(t *testing.T) (*room.Manager, *Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.AIDepth = 1
	rm := room.NewManager(store.NewMemoryStore(), cfg, nil)
	hub := NewHub(rm)
	rm.SetHub(hub)

	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Wait()
		srv.Close()
	})
	return rm, hub, srv
}

func dial(t *testing.T, srv *httptest.Server, code string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?room_code=" + code
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitSubscribers(t *testing.T, hub *Hub, code string, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers(code) != n {
		if time.Now().After(deadline) {
			t.Fatalf("subscribers = %d, want %d", hub.Subscribers(code), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func read(t *testing.T, conn *websocket.Conn) message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestHandleWSRejectsBadRequests(t *testing.T) {
	_, _, srv := setup(t)

	resp, err := http.Get(srv.URL + "/ws")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing code: status %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/ws?room_code=NOPE")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown room: status %d", resp.StatusCode)
	}
}

func TestHumanMoveTriggersBot(t *testing.T) {
	rm, hub, srv := setup(t)
	rx, alice := rm.CreateRoom(room.CreateOptions{PlayerName: "Alice", VsBot: true})

	conn := dial(t, srv, rx.Code)
	waitSubscribers(t, hub, rx.Code, 1)

	err := conn.WriteJSON(map[string]interface{}{
		"action": "human_move",
		"data":   map[string]interface{}{"player_id": alice.ID, "row": 2, "col": 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	if msg := read(t, conn); msg.Action != "move" {
		t.Fatalf("first message = %q, want move", msg.Action)
	}
	msg := read(t, conn)
	if msg.Action != "bot_move" {
		t.Fatalf("second message = %q, want bot_move", msg.Action)
	}
	if _, ok := msg.Data["move"]; !ok {
		t.Errorf("bot_move payload missing move: %v", msg.Data)
	}
}

func TestInvalidMoveIsRejected(t *testing.T) {
	rm, hub, srv := setup(t)
	rx, alice := rm.CreateRoom(room.CreateOptions{PlayerName: "Alice", VsBot: true})

	conn := dial(t, srv, rx.Code)
	waitSubscribers(t, hub, rx.Code, 1)

	err := conn.WriteJSON(map[string]interface{}{
		"action": "human_move",
		"data":   map[string]interface{}{"player_id": alice.ID, "row": 0, "col": 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	msg := read(t, conn)
	if msg.Action != "move_rejected" {
		t.Fatalf("message = %q, want move_rejected", msg.Action)
	}
	if !strings.Contains(msg.Data["error"].(string), "invalid move") {
		t.Errorf("error = %v", msg.Data["error"])
	}
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	rm, hub, srv := setup(t)
	rx, _ := rm.CreateRoom(room.CreateOptions{})

	a := dial(t, srv, rx.Code)
	b := dial(t, srv, rx.Code)
	waitSubscribers(t, hub, rx.Code, 2)

	hub.Broadcast(rx.Code, "state-updated", gin.H{"hello": "world"})
	for _, conn := range []*websocket.Conn{a, b} {
		msg := read(t, conn)
		if msg.Action != "state-updated" || msg.Data["hello"] != "world" {
			t.Errorf("got %+v", msg)
		}
	}

	hub.Broadcast("OTHER", "state-updated", nil)
	var nilHub *Hub
	nilHub.Broadcast(rx.Code, "ignored", nil)
}

func TestCloseDropsSubscribers(t *testing.T) {
	rm, hub, srv := setup(t)
	rx, _ := rm.CreateRoom(room.CreateOptions{})

	conn := dial(t, srv, rx.Code)
	waitSubscribers(t, hub, rx.Code, 1)

	hub.Close()
	if n := hub.Subscribers(rx.Code); n != 0 {
		t.Errorf("subscribers after Close = %d", n)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection still open after Close")
	}

	late := dial(t, srv, rx.Code)
	_ = late.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := late.ReadMessage(); err == nil {
		t.Error("closed hub accepted a new subscriber")
	}
	if n := hub.Subscribers(rx.Code); n != 0 {
		t.Errorf("subscribers = %d, want 0", n)
	}
}
