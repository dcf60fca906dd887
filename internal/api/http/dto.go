package http

// CreateRoomRequest represents the payload for /create-room.
type CreateRoomRequest struct {
	PlayerName string `json:"playerName"`
	VsBot      bool   `json:"vsBot"`
	Blocked    *bool  `json:"blocked"`
	Depth      int    `json:"depth"`
}

// JoinRoomRequest represents the payload for joining an existing room.
type JoinRoomRequest struct {
	RoomCode   string `json:"roomCode" binding:"required"`
	PlayerName string `json:"playerName"`
}

// MoveRequest represents a human move.
type MoveRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
	PlayerID string `json:"playerId" binding:"required"`
	Row      *int   `json:"row" binding:"required"`
	Col      *int   `json:"col" binding:"required"`
}

// MoveBotRequest asks the computer seat to play.
type MoveBotRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
}

// ResetRequest starts a new game in the same room.
type ResetRequest struct {
	RoomCode string `json:"roomCode" binding:"required"`
	Blocked  *bool  `json:"blocked"`
}
