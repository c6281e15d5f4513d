package rounddb

import (
	"context"
	"sort"
	"sync"

	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MemoryRepository keeps saved rounds in process. It backs the service when
// no database is configured; history is lost on restart.
type MemoryRepository struct {
	mu     sync.RWMutex
	rounds map[uuid.UUID]SavedRound
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rounds: make(map[uuid.UUID]SavedRound)}
}

// SaveRound creates or replaces a saved round. The db handle is ignored.
func (m *MemoryRepository) SaveRound(_ context.Context, _ bun.IDB, round rounddomain.Round) error {
	row := FromDomain(round)
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.rounds[row.ID]; ok {
		row.CreatedAt = prev.CreatedAt
	} else {
		row.CreatedAt = row.CompletedAt
	}
	m.rounds[row.ID] = *row
	return nil
}

// GetRound retrieves a saved round by id.
func (m *MemoryRepository) GetRound(_ context.Context, _ bun.IDB, id uuid.UUID) (*rounddomain.Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	row, ok := m.rounds[id]
	if !ok {
		return nil, ErrNotFound
	}
	round := row.ToDomain()
	return &round, nil
}

// ListRounds returns a player's rounds, newest first.
func (m *MemoryRepository) ListRounds(_ context.Context, _ bun.IDB, playerID string) ([]rounddomain.Round, error) {
	m.mu.RLock()
	rows := make([]SavedRound, 0)
	for _, row := range m.rounds {
		if row.PlayerID == playerID {
			rows = append(rows, row)
		}
	}
	m.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CompletedAt.After(rows[j].CompletedAt)
	})
	rounds := make([]rounddomain.Round, 0, len(rows))
	for i := range rows {
		rounds = append(rounds, rows[i].ToDomain())
	}
	return rounds, nil
}

// DeleteRound removes a saved round.
func (m *MemoryRepository) DeleteRound(_ context.Context, _ bun.IDB, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rounds[id]; !ok {
		return ErrNotFound
	}
	delete(m.rounds, id)
	return nil
}
