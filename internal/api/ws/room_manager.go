package ws

import (
	"context"

	"giftwrap/internal/shared"
)

type RoomManager interface {
	Get(roomCode string) (*shared.Room, bool)
	ApplyMove(room *shared.Room, playerID string, row, col int) error
	BotMove(ctx context.Context, room *shared.Room) (shared.Move, error)
}
