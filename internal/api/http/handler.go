package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"giftwrap/internal/config"
	"giftwrap/internal/game"
	"giftwrap/internal/room"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound), errors.Is(err, room.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNoLegalMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrInvalidMove),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, room.ErrRoomFull),
		errors.Is(err, room.ErrWaitingPlayer),
		errors.Is(err, room.ErrNotBotTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// @Summary Create new room
// @Description Create a room seating the caller as X, optionally against the bot
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.CreateRoomRequest true "Room options"
// @Success 200 {object} map[string]interface{}
// @Router /create-room [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if req.Depth < 0 || req.Depth > config.MaxAIDepth {
			c.JSON(http.StatusBadRequest, gin.H{"error": "depth out of range"})
			return
		}
		blocked := rm.Config().BlockedCells
		if req.Blocked != nil {
			blocked = *req.Blocked
		}
		rx, player := rm.CreateRoom(room.CreateOptions{
			PlayerName: req.PlayerName,
			VsBot:      req.VsBot,
			Blocked:    blocked,
			Depth:      req.Depth,
		})
		c.JSON(http.StatusOK, gin.H{
			"roomCode": rx.Code,
			"player":   player,
			"room":     rm.View(rx),
		})
	}
}

// @Summary Join a room
// @Description Take the O seat of a two-player room
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.JoinRoomRequest true "Room code and name"
// @Success 200 {object} map[string]interface{}
// @Router /join-room [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomCode required"})
			return
		}
		rx, player, err := rm.JoinRoom(req.RoomCode, req.PlayerName)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"player": player, "room": rm.View(rx)})
	}
}

// @Summary Get room state
// @Tags Room
// @Produce json
// @Param roomCode query string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /room [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rx, ok := rm.Get(c.Query("roomCode"))
		if !ok {
			fail(c, room.ErrRoomNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": rm.View(rx)})
	}
}

// @Summary Get legal moves
// @Description Returns every empty cell next to a gift. Empty once the game is over.
// @Tags Game
// @Produce json
// @Param roomCode query string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /possible-moves [get]
func PossibleMovesHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rx, ok := rm.Get(c.Query("roomCode"))
		if !ok {
			fail(c, room.ErrRoomNotFound)
			return
		}
		moves := rm.PossibleMoves(rx)
		if moves == nil {
			moves = []game.Move{}
		}
		c.JSON(http.StatusOK, gin.H{"moves": moves})
	}
}

// @Summary Player makes a move
// @Description Place a gift at (row, col) for the player's side
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.MoveRequest true "Move data"
// @Success 200 {object} map[string]interface{}
// @Router /move [post]
func MoveHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		rx, ok := rm.Get(req.RoomCode)
		if !ok {
			fail(c, room.ErrRoomNotFound)
			return
		}
		if err := rm.ApplyMove(rx, req.PlayerID, *req.Row, *req.Col); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "room": rm.View(rx)})
	}
}

// @Summary Let bot make its move
// @Description The computer seat searches with alpha-beta minimax and plays
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.MoveBotRequest true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /move-bot [post]
func MoveBotHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveBotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomCode required"})
			return
		}
		rx, ok := rm.Get(req.RoomCode)
		if !ok {
			fail(c, room.ErrRoomNotFound)
			return
		}
		mv, err := rm.BotMove(c.Request.Context(), rx)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"move": mv, "room": rm.View(rx)})
	}
}

// @Summary Restart the game
// @Description Fresh board in the same room, same seats
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.ResetRequest true "Room code"
// @Success 200 {object} map[string]interface{}
// @Router /reset [post]
func ResetHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomCode required"})
			return
		}
		rx, ok := rm.Get(req.RoomCode)
		if !ok {
			fail(c, room.ErrRoomNotFound)
			return
		}
		blocked := rm.View(rx).State.Blocked
		if req.Blocked != nil {
			blocked = *req.Blocked
		}
		c.JSON(http.StatusOK, gin.H{"room": rm.Reset(rx, blocked)})
	}
}
