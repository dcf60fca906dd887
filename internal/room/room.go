package room

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"giftwrap/internal/game"
	"giftwrap/internal/shared"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrRoomFull       = errors.New("room is full")
	ErrNotBotTurn     = errors.New("not bot's turn")
	ErrWaitingPlayer  = errors.New("waiting for second player")
)

type Store interface {
	GetRoom(code string) (*shared.Room, bool)
	SaveRoom(r *shared.Room)
	Prune(drop func(*shared.Room) bool) []string
	Len() int
}

// CreateOptions configures a new room. Zero Depth uses the manager default.
type CreateOptions struct {
	PlayerName string
	VsBot      bool
	Blocked    bool
	Depth      int
}

// NewRoom seats the creator as SideA. In bot rooms SideB goes to the computer
// right away; otherwise it waits for JoinRoom.
func NewRoom(code string, opts CreateOptions) (*shared.Room, shared.Player) {
	if opts.PlayerName == "" {
		opts.PlayerName = "Player 1"
	}
	if opts.Depth <= 0 {
		opts.Depth = game.DefaultDepth
	}

	creator := shared.Player{
		ID:   uuid.NewString(),
		Name: opts.PlayerName,
		Side: game.SideA,
	}
	r := &shared.Room{
		Code:      code,
		Session:   game.NewSession(opts.Blocked),
		Players:   []shared.Player{creator},
		VsBot:     opts.VsBot,
		Depth:     opts.Depth,
		Status:    shared.StatusLobby,
		CreatedAt: time.Now(),
	}
	r.UpdatedAt = r.CreatedAt
	if opts.VsBot {
		r.Players = append(r.Players, shared.Player{
			ID:    "bot-" + uuid.NewString(),
			Name:  "Santa",
			Side:  game.SideB,
			IsBot: true,
		})
		r.Status = shared.StatusPlaying
	}
	return r, creator
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
