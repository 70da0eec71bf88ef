// internal/store/memory.go
//
// In-memory session store for running games.
// Characteristics:
//   - Stores *game.Game objects keyed by ID together with the owning player.
//   - Concurrency-safe: the map is guarded by an RWMutex and every game has
//     its own mutex, so operations on one game are serialized while
//     different games proceed in parallel.
//   - State is lost when the process restarts.
//   - Idle games can be evicted with Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/senha/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("not found")

// Store defines the session interface used by the HTTP layer.
type Store interface {
	// Save adds or replaces a game owned by owner.
	Save(ctx context.Context, g *game.Game, owner string) error

	// Owner returns the player that created game id.
	Owner(ctx context.Context, id string) (string, error)

	// Update runs fn with exclusive access to game id.
	Update(ctx context.Context, id string, fn func(g *game.Game)) (game.View, error)

	// Snapshot returns a copy of game id that may be read without locking.
	Snapshot(ctx context.Context, id string) (game.Game, error)

	// Sweep drops games untouched for longer than maxIdle and returns how many.
	Sweep(ctx context.Context, maxIdle time.Duration) int
}

// entry is one stored game.
type entry struct {
	mu      sync.Mutex // guards g and touched
	g       *game.Game
	owner   string
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex      // guards games map
	games map[string]*entry // keyed by Game.ID
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{games: make(map[string]*entry), now: now}
}

func (m *memory) Save(ctx context.Context, g *game.Game, owner string) error {
	if g == nil || g.ID == "" {
		return errors.New("game without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = &entry{g: g, owner: owner, touched: m.now()}
	return nil
}

func (m *memory) get(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.games[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Owner(ctx context.Context, id string) (string, error) {
	e, err := m.get(id)
	if err != nil {
		return "", err
	}
	return e.owner, nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game)) (game.View, error) {
	e, err := m.get(id)
	if err != nil {
		return game.View{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.g)
	e.touched = m.now()
	return e.g.View(), nil
}

func (m *memory) Snapshot(ctx context.Context, id string) (game.Game, error) {
	e, err := m.get(id)
	if err != nil {
		return game.Game{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.g.Snapshot(), nil
}

func (m *memory) Sweep(ctx context.Context, maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		e.mu.Lock()
		stale := e.touched.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(m.games, id)
			n++
		}
	}
	return n
}
