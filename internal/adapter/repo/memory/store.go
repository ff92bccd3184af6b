package memory

import (
	"sync"
	"time"

	"crownhold/internal/app/ports"
	"crownhold/internal/domain/combat"
	"crownhold/internal/domain/royal"
)

// Store is the in-memory shared store backing tests and single-node runs.
type Store struct {
	mu        sync.RWMutex
	monarch   *royal.Monarch
	history   []royal.MonarchRecord
	sieges    map[string]ports.SiegeRecord
	windows   map[string]time.Time // team -> window open until
	snapshots map[string]combat.Stats
}

func NewStore() *Store {
	return &Store{
		sieges:    make(map[string]ports.SiegeRecord),
		windows:   make(map[string]time.Time),
		snapshots: make(map[string]combat.Stats),
	}
}

func (s *Store) SeedMonarch(m royal.Monarch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monarch = &m
}

func (s *Store) SeedSnapshot(stats combat.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[stats.Name] = stats
}

func (s *Store) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}
