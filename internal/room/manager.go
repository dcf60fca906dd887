package room

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"giftwrap/internal/config"
	"giftwrap/internal/game"
	"giftwrap/internal/shared"
)

type Manager struct {
	store Store
	cfg   config.Config

	mu  sync.Mutex
	hub Broadcaster
}

func NewManager(s Store, cfg config.Config, hub Broadcaster) *Manager {
	return &Manager{store: s, cfg: cfg, hub: hub}
}

func (m *Manager) SetHub(hub Broadcaster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hub = hub
}

func (m *Manager) broadcast(code, action string, data interface{}) {
	m.mu.Lock()
	hub := m.hub
	m.mu.Unlock()
	if hub != nil {
		hub.Broadcast(code, action, data)
	}
}

func (m *Manager) Config() config.Config { return m.cfg }

func (m *Manager) CreateRoom(opts CreateOptions) (*shared.Room, shared.Player) {
	if opts.Depth <= 0 {
		opts.Depth = m.cfg.AIDepth
	}

	m.mu.Lock()
	code := randCode(6)
	for {
		if _, taken := m.store.GetRoom(code); !taken {
			break
		}
		code = randCode(6)
	}
	r, creator := NewRoom(code, opts)
	m.store.SaveRoom(r)
	m.mu.Unlock()

	log.Info().
		Str("room", r.Code).
		Bool("vsBot", r.VsBot).
		Bool("blocked", opts.Blocked).
		Int("depth", r.Depth).
		Msg("room-created")
	return r, creator
}

// JoinRoom seats a second human as SideB.
func (m *Manager) JoinRoom(code, name string) (*shared.Room, shared.Player, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, shared.Player{}, ErrRoomNotFound
	}
	if name == "" {
		name = "Player 2"
	}

	r.Lock()
	if r.VsBot || len(r.Players) >= 2 {
		r.Unlock()
		return nil, shared.Player{}, ErrRoomFull
	}
	p := shared.Player{ID: uuid.NewString(), Name: name, Side: game.SideB}
	r.Players = append(r.Players, p)
	r.Status = shared.StatusPlaying
	r.Touch()
	view := r.View()
	r.Unlock()

	m.store.SaveRoom(r)
	log.Info().Str("room", code).Str("player", p.ID).Msg("player-joined")
	m.broadcast(code, "state-updated", gin.H{"room": view})
	return r, p, nil
}

func (m *Manager) Get(code string) (*shared.Room, bool) {
	return m.store.GetRoom(code)
}

func (m *Manager) View(r *shared.Room) shared.RoomView {
	r.Lock()
	defer r.Unlock()
	return r.View()
}

func (m *Manager) PossibleMoves(r *shared.Room) []game.Move {
	r.Lock()
	defer r.Unlock()
	if r.Session.Terminal() {
		return nil
	}
	return game.LegalMoves(r.Session.Board())
}

// ApplyMove plays a human move for playerID.
func (m *Manager) ApplyMove(r *shared.Room, playerID string, row, col int) error {
	r.Lock()
	p, ok := r.PlayerByID(playerID)
	if !ok {
		r.Unlock()
		return ErrPlayerNotFound
	}
	if p.IsBot {
		r.Unlock()
		return fmt.Errorf("%w: bot seats move through BotMove", game.ErrNotYourTurn)
	}
	if r.Status == shared.StatusLobby {
		r.Unlock()
		return ErrWaitingPlayer
	}
	if err := r.Session.AttemptMove(row, col, p.Side); err != nil {
		r.Unlock()
		log.Warn().Err(err).Str("room", r.Code).Str("player", playerID).Int("row", row).Int("col", col).Msg("move-rejected")
		return err
	}
	mv := shared.Move{Row: row, Col: col, Side: p.Side, PlayerID: playerID}
	view := m.afterMove(r)
	r.Unlock()

	m.store.SaveRoom(r)
	m.announce(r.Code, "move", mv, view)
	return nil
}

// BotMove lets the computer seat search and play its move. The room stays
// locked for the whole search.
func (m *Manager) BotMove(ctx context.Context, r *shared.Room) (shared.Move, error) {
	r.Lock()
	if r.Session.Terminal() {
		r.Unlock()
		return shared.Move{}, game.ErrGameOver
	}
	bot, ok := r.PlayerForSide(r.Session.Turn())
	if !ok || !bot.IsBot {
		r.Unlock()
		return shared.Move{}, ErrNotBotTurn
	}

	e := game.NewEngine(r.Depth, bot.Side)
	e.Parallel = m.cfg.AIParallel
	e.Workers = m.cfg.AIWorkers
	res, err := r.Session.RequestAIMove(ctx, e)
	if err != nil {
		r.Unlock()
		return shared.Move{}, err
	}
	if err := r.Session.AttemptMove(res.Move.Row, res.Move.Col, bot.Side); err != nil {
		r.Unlock()
		return shared.Move{}, err
	}
	mv := shared.Move{
		Row:      res.Move.Row,
		Col:      res.Move.Col,
		Side:     bot.Side,
		PlayerID: bot.ID,
		Score:    res.Score,
		Nodes:    res.Nodes,
	}
	view := m.afterMove(r)
	r.Unlock()

	log.Info().
		Str("room", r.Code).
		Stringer("move", res.Move).
		Int("score", res.Score).
		Int64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("bot-moved")
	m.store.SaveRoom(r)
	m.announce(r.Code, "bot_move", mv, view)
	return mv, nil
}

// Reset starts a fresh session in the same room with the same seats.
func (m *Manager) Reset(r *shared.Room, blocked bool) shared.RoomView {
	r.Lock()
	r.Session = game.NewSession(blocked)
	if len(r.Players) == 2 {
		r.Status = shared.StatusPlaying
	} else {
		r.Status = shared.StatusLobby
	}
	r.Touch()
	view := r.View()
	r.Unlock()

	m.store.SaveRoom(r)
	log.Info().Str("room", r.Code).Bool("blocked", blocked).Msg("room-reset")
	m.broadcast(r.Code, "state-updated", gin.H{"room": view})
	return view
}

// afterMove updates the room status. The caller holds the lock.
func (m *Manager) afterMove(r *shared.Room) shared.RoomView {
	if r.Session.Terminal() {
		r.Status = shared.StatusFinished
	}
	r.Touch()
	return r.View()
}

// Sweep drops rooms idle for longer than ttl and tells their subscribers.
// Rooms locked by a running move or search are in use and are skipped.
func (m *Manager) Sweep(now time.Time, ttl time.Duration) int {
	removed := m.store.Prune(func(r *shared.Room) bool {
		if !r.TryLock() {
			return false
		}
		defer r.Unlock()
		return now.Sub(r.UpdatedAt) > ttl
	})
	for _, code := range removed {
		m.broadcast(code, "room_closed", gin.H{"roomCode": code})
	}
	if len(removed) > 0 {
		log.Info().
			Int("rooms", len(removed)).
			Int("remaining", m.store.Len()).
			Dur("ttl", ttl).
			Msg("rooms-swept")
	}
	return len(removed)
}

// RunJanitor sweeps every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval, ttl time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			m.Sweep(now, ttl)
		}
	}
}

func (m *Manager) announce(code, action string, mv shared.Move, view shared.RoomView) {
	m.broadcast(code, action, gin.H{"move": mv, "room": view})
	if view.State.Terminal {
		a, b := view.State.ScoreA, view.State.ScoreB
		log.Info().Str("room", code).Stringer("winner", view.State.Winner).Int("scoreA", a).Int("scoreB", b).Msg("game-over")
		m.broadcast(code, "game_over", gin.H{
			"winner": view.State.Winner,
			"scoreA": a,
			"scoreB": b,
			"board":  view.State.Board,
		})
	}
}
