package bot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/fourinarow/internal/dependencies/mocks"
	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/movelog"
	"github.com/mcoot/fourinarow/internal/services/board"
	"github.com/mcoot/fourinarow/internal/services/bot"
	"github.com/mcoot/fourinarow/internal/services/game"
	"github.com/mcoot/fourinarow/internal/services/search"
	"github.com/mcoot/fourinarow/internal/storage/memory"
	"github.com/mcoot/fourinarow/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store      *memory.Storage
	mockRandom *mocks.MockRandom

	gameController *game.Controller
	botService     *bot.Service

	ctx context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.mockRandom = mocks.NewMockRandom()
	clk := mocks.NewTickingClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), 10*time.Millisecond)
	logger := testutil.NopLogger()
	s.ctx = context.Background()

	boardService := board.New(logger)
	s.gameController = game.NewController(s.store, boardService, movelog.NopWriter{}, clk, s.mockRandom, logger)

	strategies := map[model.PlayerKind]bot.Strategy{
		model.PlayerKindMinimax: bot.NewMinimaxStrategy(search.New(logger)),
		model.PlayerKindRandom:  bot.NewRandomStrategy(boardService, s.mockRandom),
	}
	s.botService = bot.NewService(s.gameController, strategies, bot.DefaultDepths(), clk, logger)
}

func (s *ServiceSuite) createGame(x, o model.Seat) *model.Game {
	s.mockRandom.QueueString("GAME01")
	g, err := s.gameController.CreateGame(s.ctx, game.CreateOptions{X: x, O: o})
	s.Require().NoError(err)
	return g
}

func minimax(depth int) model.Seat {
	return model.Seat{Kind: model.PlayerKindMinimax, Depth: depth}
}

var human = model.Seat{Kind: model.PlayerKindHuman}

// PlayTurn tests

func (s *ServiceSuite) TestPlayTurnStartPhase() {
	g := s.createGame(minimax(1), minimax(1))

	g, action, err := s.botService.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(bot.BotAction{Type: bot.ActionStart, Player: model.MarkX, Position: model.Position{Col: 4, Row: 3}}, action)

	g, action, err = s.botService.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(model.Position{Col: 3, Row: 3}, action.Position)
	s.Equal(model.GamePhasePlaying, g.Phase)
}

func (s *ServiceSuite) TestPlayTurnRecordsSearchStats() {
	g := s.createGame(minimax(1), minimax(3))
	_, _, err := s.botService.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)
	_, _, err = s.botService.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)

	g, action, err := s.botService.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)

	// Every depth-1 candidate ties, so the first in scan order is kept
	s.Equal(bot.ActionMove, action.Type)
	s.Equal(model.Position{Col: 3, Row: 2}, action.Position)
	s.Equal(1, action.Depth)
	s.Equal(7*28, action.Nodes)

	last, ok := g.LastMove()
	s.Require().True(ok)
	s.True(last.Engine)
	s.Equal(1, last.Depth)
	s.Equal(7*28, last.Nodes)
	s.Equal(10*time.Millisecond, last.Elapsed)
	s.Equal(model.MarkO, g.Turn)
}

func (s *ServiceSuite) TestPlayTurnForHumanSeatUsesDefaultDepth() {
	g := s.createGame(human, human)
	_, err := s.gameController.PlaceStart(s.ctx, g.ID, model.MarkX, model.DefaultStart(model.MarkX))
	s.Require().NoError(err)
	_, err = s.gameController.PlaceStart(s.ctx, g.ID, model.MarkO, model.DefaultStart(model.MarkO))
	s.Require().NoError(err)

	_, action, err := s.botService.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(bot.DefaultDepths().X, action.Depth)
	s.Positive(action.Nodes)
}

func (s *ServiceSuite) TestPlayTurnRandomSeat() {
	g := s.createGame(model.Seat{Kind: model.PlayerKindRandom}, human)

	s.mockRandom.QueueIntn(0)
	_, action, err := s.botService.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(model.Position{Col: 0, Row: 0}, action.Position)

	_, err = s.gameController.PlaceStart(s.ctx, g.ID, model.MarkO, model.Position{Col: 3, Row: 3})
	s.Require().NoError(err)

	// X's legal cells: (0,1), (1,0), (1,1)
	s.mockRandom.QueueIntn(2)
	g, action, err = s.botService.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(model.Position{Col: 1, Row: 1}, action.Position)
	s.Zero(action.Depth)
	s.Equal(model.MarkX, g.Board.Get(model.Position{Col: 1, Row: 1}))
}

func (s *ServiceSuite) TestPlayTurnWithoutLegalCell() {
	g := &model.Game{
		ID:        "STUCK",
		Phase:     model.GamePhasePlaying,
		Turn:      model.MarkO,
		X:         minimax(2),
		O:         minimax(2),
		Adjacency: model.AdjacencySamePlayer,
		Result:    model.Result{Outcome: model.OutcomeInProgress},
	}
	g.Board.Place(model.Position{Col: 2, Row: 2}, model.MarkX)
	s.Require().NoError(s.store.SaveGame(s.ctx, g))

	_, action, err := s.botService.PlayTurn(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrNoMoveAvailable)
	s.Equal(bot.BotAction{Type: bot.ActionNoMove, Player: model.MarkO}, action)

	stored, err := s.gameController.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Empty(stored.Moves)
	s.Equal(model.MarkO, stored.Turn)

	actions, err := s.botService.ProcessBotActions(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal([]bot.BotAction{{Type: bot.ActionNoMove, Player: model.MarkO}}, actions)
}

func (s *ServiceSuite) TestPlayTurnOnClosedGame() {
	g := s.createGame(minimax(1), minimax(1))
	_, err := s.gameController.Abandon(s.ctx, g.ID)
	s.Require().NoError(err)

	_, _, err = s.botService.PlayTurn(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrGameAbandoned)
}

// ProcessBotActions tests

func (s *ServiceSuite) TestProcessBotActionsPlaysWholeGame() {
	g := s.createGame(minimax(0), minimax(0))

	actions, err := s.botService.ProcessBotActions(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Require().GreaterOrEqual(len(actions), 3)

	s.Equal(bot.BotAction{Type: bot.ActionStart, Player: model.MarkX, Position: model.Position{Col: 4, Row: 3}}, actions[0])
	s.Equal(bot.BotAction{Type: bot.ActionStart, Player: model.MarkO, Position: model.Position{Col: 3, Row: 3}}, actions[1])

	placements := 0
	for _, a := range actions {
		if a.Type == bot.ActionStart || a.Type == bot.ActionMove {
			placements++
		}
	}

	stored, err := s.gameController.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Len(stored.Moves, placements)

	switch actions[len(actions)-1].Type {
	case bot.ActionGameComplete:
		s.Equal(model.GamePhaseFinished, stored.Phase)
		s.True(stored.Result.IsTerminal())
	case bot.ActionNoMove:
		s.Equal(model.GamePhasePlaying, stored.Phase)
	default:
		s.Fail("unexpected final action", actions[len(actions)-1].Type)
	}
}

func (s *ServiceSuite) TestProcessBotActionsStopsForHuman() {
	g := s.createGame(human, minimax(2))
	_, err := s.gameController.PlaceStart(s.ctx, g.ID, model.MarkX, model.DefaultStart(model.MarkX))
	s.Require().NoError(err)

	actions, err := s.botService.ProcessBotActions(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal([]bot.BotAction{
		{Type: bot.ActionStart, Player: model.MarkO, Position: model.Position{Col: 3, Row: 3}},
	}, actions)

	stored, _ := s.gameController.GetGame(s.ctx, g.ID)
	s.Equal(model.MarkX, stored.Turn)
}

func (s *ServiceSuite) TestProcessBotActionsOnClosedGame() {
	g := s.createGame(minimax(1), minimax(1))
	_, err := s.gameController.Abandon(s.ctx, g.ID)
	s.Require().NoError(err)

	actions, err := s.botService.ProcessBotActions(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Empty(actions)
}

func (s *ServiceSuite) TestDepthsFor() {
	d := bot.Depths{X: 2, O: 4}
	s.Equal(2, d.For(model.MarkX))
	s.Equal(4, d.For(model.MarkO))
}
