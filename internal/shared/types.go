package shared

import (
	"sync"
	"time"

	"giftwrap/internal/game"
)

const (
	StatusLobby    = "lobby"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

// Room holds one game session and its seats. Callers hold mu while touching
// Session or Players.
type Room struct {
	mu sync.Mutex

	Code      string
	Session   *game.Session
	Players   []Player
	VsBot     bool
	Depth     int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Room) Lock()   { r.mu.Lock() }
func (r *Room) Unlock() { r.mu.Unlock() }

// TryLock takes the lock only if nobody holds it.
func (r *Room) TryLock() bool { return r.mu.TryLock() }

// Touch records activity. The caller holds the lock.
func (r *Room) Touch() { r.UpdatedAt = time.Now() }

// PlayerForSide returns the seat playing side, if taken.
func (r *Room) PlayerForSide(side game.Side) (*Player, bool) {
	for i := range r.Players {
		if r.Players[i].Side == side {
			return &r.Players[i], true
		}
	}
	return nil, false
}

func (r *Room) PlayerByID(id string) (*Player, bool) {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i], true
		}
	}
	return nil, false
}

// View snapshots the room. The caller holds the lock.
func (r *Room) View() RoomView {
	return RoomView{
		Code:      r.Code,
		Players:   append([]Player(nil), r.Players...),
		VsBot:     r.VsBot,
		Depth:     r.Depth,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		State:     r.Session.Snapshot(),
	}
}

type RoomView struct {
	Code      string     `json:"code"`
	Players   []Player   `json:"players"`
	VsBot     bool       `json:"vsBot"`
	Depth     int        `json:"depth"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	State     game.State `json:"state"`
}

type Player struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Side  game.Side `json:"side"`
	IsBot bool      `json:"isBot"`
}

type Move struct {
	Row      int       `json:"row"`
	Col      int       `json:"col"`
	Side     game.Side `json:"side"`
	PlayerID string    `json:"playerId"`
	Score    int       `json:"score,omitempty"`
	Nodes    int64     `json:"nodes,omitempty"`
}
