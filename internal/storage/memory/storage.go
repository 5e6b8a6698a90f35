package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Games are cloned on the way in and out so callers never share state.
type Storage struct {
	mu    sync.RWMutex
	games map[model.GameID]*model.Game
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games: make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]*model.Game, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g.Clone())
	}
	slices.SortFunc(games, compareGames)
	return games, nil
}

func compareGames(a, b *model.Game) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	if a.ID < b.ID {
		return -1
	}
	if a.ID > b.ID {
		return 1
	}
	return 0
}
