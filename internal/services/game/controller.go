package game

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/fourinarow/internal/dependencies/clock"
	"github.com/mcoot/fourinarow/internal/dependencies/random"
	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/movelog"
	"github.com/mcoot/fourinarow/internal/services/board"
	"github.com/mcoot/fourinarow/internal/storage"
)

const (
	// GameIDAlphabet is the character set for generated game IDs
	GameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// GameIDLength is the length of generated game IDs
	GameIDLength = 12
)

// CreateOptions describes the seats and rules of a new game
type CreateOptions struct {
	X         model.Seat
	O         model.Seat
	Adjacency model.AdjacencyRule
}

// EngineStats is the search instrumentation recorded with an engine move
type EngineStats struct {
	Depth   int
	Elapsed time.Duration
	Nodes   int
}

// Controller manages the game state machine and turn flow
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	moveLog      movelog.Writer
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	moveLog movelog.Writer,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		boardService: boardService,
		moveLog:      moveLog,
		clock:        clock,
		random:       random,
		logger:       logger.With(slog.String("component", "game-controller")),
	}
}

// CreateGame initializes a new game in the start phase with X to place first
func (c *Controller) CreateGame(ctx context.Context, opts CreateOptions) (*model.Game, error) {
	for _, seat := range []model.Seat{opts.X, opts.O} {
		if _, err := model.ParsePlayerKind(string(seat.Kind)); err != nil {
			return nil, err
		}
		if seat.Depth < 0 {
			return nil, fmt.Errorf("%w: %d", model.ErrInvalidDepth, seat.Depth)
		}
	}
	rule, err := model.ParseAdjacencyRule(string(opts.Adjacency))
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:        model.GameID(c.random.String(GameIDLength, GameIDAlphabet)),
		Phase:     model.GamePhaseStart,
		Moves:     []model.Move{},
		Turn:      model.MarkX,
		X:         normaliseSeat(opts.X),
		O:         normaliseSeat(opts.O),
		Adjacency: rule,
		Result:    model.Result{Outcome: model.OutcomeInProgress},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("x_player", string(game.X.Kind)),
		slog.String("o_player", string(game.O.Kind)),
		slog.String("adjacency", string(game.Adjacency)),
	)

	return game, nil
}

func normaliseSeat(seat model.Seat) model.Seat {
	if seat.Kind == "" {
		seat.Kind = model.PlayerKindHuman
	}
	if seat.Kind != model.PlayerKindMinimax {
		seat.Depth = 0
	}
	return seat
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// ListGames returns all stored games
func (c *Controller) ListGames(ctx context.Context) ([]*model.Game, error) {
	return c.storage.ListGames(ctx)
}

// PlaceStart applies a player's initial placement. X places first, then O;
// O's placement moves the game into the playing phase.
func (c *Controller) PlaceStart(ctx context.Context, gameID model.GameID, player model.Mark, pos model.Position) (*model.Game, error) {
	game, err := c.loadForMove(ctx, gameID, player, model.GamePhaseStart)
	if err != nil {
		return nil, err
	}

	if err := c.boardService.PlaceInitial(&game.Board, pos, player); err != nil {
		return nil, err
	}

	game.Moves = append(game.Moves, model.Move{
		Player:   player,
		Kind:     model.MoveKindStart,
		Position: pos,
	})
	game.Turn = player.Opponent()
	if player == model.MarkO {
		game.Phase = model.GamePhasePlaying
	}

	return c.commit(ctx, game)
}

// PlaceMove applies a successor placement chosen outside the engine
func (c *Controller) PlaceMove(ctx context.Context, gameID model.GameID, player model.Mark, pos model.Position) (*model.Game, error) {
	return c.placeSuccessor(ctx, gameID, model.Move{
		Player:   player,
		Kind:     model.MoveKindMove,
		Position: pos,
	})
}

// PlaceEngineMove applies a successor placement chosen by a strategy,
// recording its search statistics
func (c *Controller) PlaceEngineMove(ctx context.Context, gameID model.GameID, player model.Mark, pos model.Position, stats EngineStats) (*model.Game, error) {
	return c.placeSuccessor(ctx, gameID, model.Move{
		Player:   player,
		Kind:     model.MoveKindMove,
		Position: pos,
		Engine:   true,
		Depth:    stats.Depth,
		Elapsed:  stats.Elapsed,
		Nodes:    stats.Nodes,
	})
}

func (c *Controller) placeSuccessor(ctx context.Context, gameID model.GameID, move model.Move) (*model.Game, error) {
	game, err := c.loadForMove(ctx, gameID, move.Player, model.GamePhasePlaying)
	if err != nil {
		return nil, err
	}

	if err := c.boardService.PlaceSuccessor(&game.Board, move.Position, move.Player, game.Adjacency); err != nil {
		return nil, err
	}

	game.Moves = append(game.Moves, move)
	game.Turn = move.Player.Opponent()

	result := game.Board.Result()
	if result.IsTerminal() {
		finish(game, result)
	}

	game, err = c.commit(ctx, game)
	if err != nil {
		return nil, err
	}
	if game.Phase == model.GamePhaseFinished {
		c.logger.Info("game finished",
			slog.String("game_id", string(game.ID)),
			slog.String("result", game.Result.String()),
			slog.Int("moves", len(game.Moves)),
		)
		c.writeMoveLog(ctx, game)
	}
	return game, nil
}

func finish(game *model.Game, result model.Result) {
	game.Phase = model.GamePhaseFinished
	game.Result = result
	game.Turn = model.MarkEmpty
}

// writeMoveLog runs only once the finished game is stored. A failed write is
// logged and does not fail the move.
func (c *Controller) writeMoveLog(ctx context.Context, game *model.Game) {
	if err := c.moveLog.Write(ctx, game); err != nil {
		c.logger.Warn("failed to write move log",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// Abandon cancels a game that has not finished
func (c *Controller) Abandon(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := checkOpen(game); err != nil {
		return nil, err
	}

	game.Phase = model.GamePhaseAbandoned
	game.Turn = model.MarkEmpty

	c.logger.Info("game abandoned", slog.String("game_id", string(game.ID)))
	return c.commit(ctx, game)
}

// MoveLog renders a game's history in move log format
func (c *Controller) MoveLog(ctx context.Context, gameID model.GameID) ([]byte, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := movelog.Encode(&buf, game.Moves); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// loadForMove fetches a game and checks that player may move in phase
func (c *Controller) loadForMove(ctx context.Context, gameID model.GameID, player model.Mark, phase model.GamePhase) (*model.Game, error) {
	if !player.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidMark, player.String())
	}

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := checkOpen(game); err != nil {
		return nil, err
	}
	if game.Phase != phase {
		return nil, fmt.Errorf("%w: game is in %s phase", model.ErrWrongPhase, game.Phase)
	}
	if game.Turn != player {
		return nil, model.ErrNotPlayerTurn
	}
	return game, nil
}

func checkOpen(game *model.Game) error {
	switch game.Phase {
	case model.GamePhaseFinished:
		return model.ErrGameFinished
	case model.GamePhaseAbandoned:
		return model.ErrGameAbandoned
	default:
		return nil
	}
}

func (c *Controller) commit(ctx context.Context, game *model.Game) (*model.Game, error) {
	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return game, nil
}
