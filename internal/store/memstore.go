package store

import (
	"sync"

	"giftwrap/internal/shared"
)

// MemoryStore keeps rooms in process memory. Rooms are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*shared.Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*shared.Room{},
	}
}

func (m *MemoryStore) GetRoom(code string) (*shared.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

func (m *MemoryStore) SaveRoom(r *shared.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.Code] = r
}

// Prune removes every room for which drop returns true and reports the
// removed codes. drop may lock the room; it must not call back into the store.
func (m *MemoryStore) Prune(drop func(*shared.Room) bool) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed []string
	for code, r := range m.rooms {
		if drop(r) {
			delete(m.rooms, code)
			removed = append(removed, code)
		}
	}
	return removed
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}
