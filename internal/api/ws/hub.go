package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Hub fans room events out to websocket subscribers and accepts moves sent
// over the same connection.
type Hub struct {
	mu          sync.Mutex
	rooms       map[string]map[*websocket.Conn]struct{}
	roomManager RoomManager
	botWG       sync.WaitGroup
	closed      bool
}

func NewHub(roomManager RoomManager) *Hub {
	return &Hub{
		rooms:       make(map[string]map[*websocket.Conn]struct{}),
		roomManager: roomManager,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type inbound struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type humanMove struct {
	PlayerID string `json:"player_id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

func (h *Hub) HandleWS(c *gin.Context) {
	roomCode := c.Query("room_code")
	if roomCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing room_code"})
		return
	}
	if _, ok := h.roomManager.Get(roomCode); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("room", roomCode).Msg("ws-upgrade-failed")
		return
	}
	log.Debug().Str("room", roomCode).Msg("ws-connected")

	if !h.subscribe(roomCode, conn) {
		_ = conn.Close()
		return
	}
	defer h.unsubscribe(roomCode, conn)

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("room", roomCode).Msg("ws-read-failed")
			}
			return
		}

		switch msg.Action {
		case "human_move":
			h.handleHumanMove(roomCode, msg.Data)
		case "bot_move":
			h.playBot(roomCode)
		default:
			log.Warn().Str("room", roomCode).Str("action", msg.Action).Msg("ws-unknown-action")
		}
	}
}

func (h *Hub) subscribe(roomCode string, conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	if _, ok := h.rooms[roomCode]; !ok {
		h.rooms[roomCode] = make(map[*websocket.Conn]struct{})
	}
	h.rooms[roomCode][conn] = struct{}{}
	return true
}

func (h *Hub) unsubscribe(roomCode string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[roomCode], conn)
	if len(h.rooms[roomCode]) == 0 {
		delete(h.rooms, roomCode)
	}
	_ = conn.Close()
}

// Subscribers returns how many connections listen on roomCode.
func (h *Hub) Subscribers(roomCode string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomCode])
}

// Broadcast writes {action, data} to every subscriber of roomCode. Writes are
// serialized because a websocket connection allows one writer at a time.
func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	if h == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[roomCode]
	if !ok {
		return
	}

	message := map[string]interface{}{
		"action": action,
		"data":   data,
	}
	for conn := range clients {
		if err := conn.WriteJSON(message); err != nil {
			log.Warn().Err(err).Str("room", roomCode).Str("action", action).Msg("ws-write-failed")
			_ = conn.Close()
			delete(clients, conn)
		}
	}
}

func (h *Hub) handleHumanMove(roomCode string, data json.RawMessage) {
	var move humanMove
	if err := json.Unmarshal(data, &move); err != nil {
		log.Warn().Err(err).Str("room", roomCode).Msg("ws-invalid-move-payload")
		return
	}

	room, ok := h.roomManager.Get(roomCode)
	if !ok {
		return
	}

	if err := h.roomManager.ApplyMove(room, move.PlayerID, move.Row, move.Col); err != nil {
		h.Broadcast(roomCode, "move_rejected", gin.H{
			"player_id": move.PlayerID,
			"row":       move.Row,
			"col":       move.Col,
			"error":     err.Error(),
		})
		return
	}

	if room.VsBot {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.closed {
			return
		}
		h.botWG.Add(1)
		go func() {
			defer h.botWG.Done()
			h.playBot(roomCode)
		}()
	}
}

func (h *Hub) playBot(roomCode string) {
	room, ok := h.roomManager.Get(roomCode)
	if !ok {
		return
	}
	if _, err := h.roomManager.BotMove(context.Background(), room); err != nil {
		log.Debug().Err(err).Str("room", roomCode).Msg("ws-bot-move-skipped")
	}
}

// Wait blocks until bot moves started by the hub have finished.
func (h *Hub) Wait() {
	h.botWG.Wait()
}

// Close drops every subscriber and refuses new ones and new bot moves.
// Read loops end once their connection is closed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for code, clients := range h.rooms {
		for conn := range clients {
			_ = conn.Close()
		}
		delete(h.rooms, code)
	}
}
