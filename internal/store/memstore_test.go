package store

import (
	"fmt"
	"sync"
	"testing"

	"giftwrap/internal/game"
	"giftwrap/internal/shared"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.GetRoom("NOPE"); ok {
		t.Fatal("empty store returned a room")
	}

	r := &shared.Room{Code: "ABC123", Session: game.NewSession(false)}
	s.SaveRoom(r)
	got, ok := s.GetRoom("ABC123")
	if !ok || got != r {
		t.Fatalf("GetRoom = %v, %v", got, ok)
	}
	s.SaveRoom(r)
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code := fmt.Sprintf("R%02d", i)
			s.SaveRoom(&shared.Room{Code: code})
			if _, ok := s.GetRoom(code); !ok {
				t.Errorf("room %s missing", code)
			}
		}(i)
	}
	wg.Wait()
	if s.Len() != 32 {
		t.Errorf("Len = %d, want 32", s.Len())
	}
}

func TestMemoryStorePrune(t *testing.T) {
	s := NewMemoryStore()
	for _, code := range []string{"KEEP01", "DROP01", "DROP02"} {
		s.SaveRoom(&shared.Room{Code: code, Status: shared.StatusPlaying})
	}

	removed := s.Prune(func(r *shared.Room) bool {
		r.Lock()
		defer r.Unlock()
		return r.Code != "KEEP01"
	})
	if len(removed) != 2 {
		t.Errorf("removed %v, want two rooms", removed)
	}
	if _, ok := s.GetRoom("KEEP01"); !ok || s.Len() != 1 {
		t.Errorf("Len = %d after prune", s.Len())
	}
}
