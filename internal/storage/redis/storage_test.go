package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/fourinarow/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GameTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func newGame(id string, created time.Time) *model.Game {
	return &model.Game{
		ID:        model.GameID(id),
		Phase:     model.GamePhasePlaying,
		Turn:      model.MarkO,
		X:         model.Seat{Kind: model.PlayerKindMinimax, Depth: 2},
		O:         model.Seat{Kind: model.PlayerKindMinimax, Depth: 4},
		Adjacency: model.AdjacencySamePlayer,
		Result:    model.Result{Outcome: model.OutcomeInProgress},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func (s *StorageSuite) TestSaveAndGetGame() {
	game := newGame("game-1", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	game.Board.Place(model.Position{Col: 4, Row: 3}, model.MarkX)
	game.Board.Place(model.Position{Col: 3, Row: 3}, model.MarkO)
	game.Moves = []model.Move{
		{Player: model.MarkX, Kind: model.MoveKindStart, Position: model.Position{Col: 4, Row: 3}},
		{Player: model.MarkO, Kind: model.MoveKindStart, Position: model.Position{Col: 3, Row: 3}},
		{
			Player:   model.MarkX,
			Kind:     model.MoveKindMove,
			Position: model.Position{Col: 5, Row: 4},
			Engine:   true,
			Depth:    2,
			Elapsed:  15 * time.Millisecond,
			Nodes:    812,
		},
	}

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.Board.Snapshot(), retrieved.Board.Snapshot())
	s.Equal(game.Moves, retrieved.Moves)
	s.Equal(model.MarkO, retrieved.Turn)
	s.Equal(game.X, retrieved.X)
	s.True(game.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestSaveGameAppliesTTL() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, newGame("game-1", time.Now())))

	s.Equal(time.Hour, s.mini.TTL(gameKey("game-1")))
}

func (s *StorageSuite) TestGameExpires() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, newGame("game-1", time.Now())))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, newGame("game-1", time.Now())))

	err := s.storage.DeleteGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestListGamesOrderedByCreation() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.SaveGame(s.ctx, newGame("late", base.Add(2*time.Minute))))
	s.Require().NoError(s.storage.SaveGame(s.ctx, newGame("early", base)))
	s.Require().NoError(s.storage.SaveGame(s.ctx, newGame("middle", base.Add(time.Minute))))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(model.GameID("early"), games[0].ID)
	s.Equal(model.GameID("middle"), games[1].ID)
	s.Equal(model.GameID("late"), games[2].ID)
}

func (s *StorageSuite) TestListGamesPrunesExpiredEntries() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, newGame("game-1", time.Now())))
	s.mini.FastForward(2 * time.Hour)
	s.Require().NoError(s.storage.SaveGame(s.ctx, newGame("game-2", time.Now())))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 1)
	s.Equal(model.GameID("game-2"), games[0].ID)

	members, err := s.mini.ZMembers(gamesIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{"game-2"}, members)
}

func (s *StorageSuite) TestNewRejectsBadURL() {
	cfg := DefaultConfig()
	cfg.URL = "not-a-url"

	_, err := New(cfg)
	s.Error(err)
}

func (s *StorageSuite) TestNewConnects() {
	cfg := DefaultConfig()
	cfg.URL = "redis://" + s.mini.Addr()

	store, err := New(cfg)
	s.Require().NoError(err)
	s.NoError(store.Close())
}
