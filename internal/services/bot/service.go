package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/fourinarow/internal/dependencies/clock"
	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/services/game"
)

// MaxBotIterations is a safety limit for the ProcessBotActions loop
const MaxBotIterations = 100

// BotActionType represents the type of action a bot took
type BotActionType string

const (
	ActionStart        BotActionType = "start"
	ActionMove         BotActionType = "move"
	ActionNoMove       BotActionType = "no_move"
	ActionGameComplete BotActionType = "game_complete"
)

// BotAction represents a single action taken during ProcessBotActions
type BotAction struct {
	Type     BotActionType  `json:"type"`
	Player   model.Mark     `json:"player,omitempty"`
	Position model.Position `json:"position"`
	Depth    int            `json:"depth,omitempty"`
	Nodes    int            `json:"nodes,omitempty"`
	Score    int            `json:"score,omitempty"`
}

// Depths are the search depths used when a non-minimax seat asks the
// engine to move for it
type Depths struct {
	X int
	O int
}

// DefaultDepths returns the conventional depths: X searches 2 plies, O 4
func DefaultDepths() Depths {
	return Depths{X: 2, O: 4}
}

// For returns the depth for a player
func (d Depths) For(player model.Mark) int {
	if player == model.MarkO {
		return d.O
	}
	return d.X
}

// Service plays turns on behalf of bot seats
type Service struct {
	gameController *game.Controller
	strategies     map[model.PlayerKind]Strategy
	depths         Depths
	clock          clock.Clock
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(
	gameController *game.Controller,
	strategies map[model.PlayerKind]Strategy,
	depths Depths,
	clk clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		depths:         depths,
		clock:          clk,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// PlayTurn makes the player to move play one placement chosen by its seat's
// strategy. Human seats are played by the minimax strategy. When no legal
// cell exists the returned error wraps model.ErrNoMoveAvailable and the game
// is left unchanged.
func (s *Service) PlayTurn(ctx context.Context, gameID model.GameID) (*model.Game, BotAction, error) {
	g, err := s.gameController.GetGame(ctx, gameID)
	if err != nil {
		return nil, BotAction{}, err
	}
	switch g.Phase {
	case model.GamePhaseFinished:
		return nil, BotAction{}, model.ErrGameFinished
	case model.GamePhaseAbandoned:
		return nil, BotAction{}, model.ErrGameAbandoned
	}

	player := g.Turn
	seat := g.Seat(player)
	strategy := s.strategyFor(seat)

	if g.Phase == model.GamePhaseStart {
		pos := strategy.ChooseStart(g)
		updated, err := s.gameController.PlaceStart(ctx, gameID, player, pos)
		if err != nil {
			return nil, BotAction{}, err
		}
		return updated, BotAction{Type: ActionStart, Player: player, Position: pos}, nil
	}

	depth := s.depthFor(player, seat)
	started := s.clock.Now()
	decision := strategy.ChooseMove(g, depth)
	elapsed := clock.Since(s.clock, started)

	if !decision.Found {
		s.logger.Info("no valid move",
			slog.String("game_id", string(gameID)),
			slog.String("player", player.String()),
		)
		return g, BotAction{Type: ActionNoMove, Player: player}, fmt.Errorf("%w for %s", model.ErrNoMoveAvailable, player)
	}

	updated, err := s.gameController.PlaceEngineMove(ctx, gameID, player, decision.Position, game.EngineStats{
		Depth:   depth,
		Elapsed: elapsed,
		Nodes:   decision.Nodes,
	})
	if err != nil {
		return nil, BotAction{}, err
	}

	s.logger.Debug("engine move",
		slog.String("game_id", string(gameID)),
		slog.String("player", player.String()),
		slog.String("position", decision.Position.String()),
		slog.Int("depth", depth),
		slog.Int("nodes", decision.Nodes),
		slog.Duration("elapsed", elapsed),
	)

	return updated, BotAction{
		Type:     ActionMove,
		Player:   player,
		Position: decision.Position,
		Depth:    depth,
		Nodes:    decision.Nodes,
		Score:    decision.Score,
	}, nil
}

// ProcessBotActions plays turns while a bot seat is to move. It stops when a
// human is to move, the game ends, or the bot has no legal cell.
func (s *Service) ProcessBotActions(ctx context.Context, gameID model.GameID) ([]BotAction, error) {
	var actions []BotAction

	for range MaxBotIterations {
		g, err := s.gameController.GetGame(ctx, gameID)
		if err != nil {
			return actions, err
		}

		if g.IsOver() {
			if g.Phase == model.GamePhaseFinished && len(actions) > 0 {
				actions = append(actions, BotAction{Type: ActionGameComplete})
			}
			break
		}

		if !g.Seat(g.Turn).IsBot() {
			break // Human's turn
		}

		_, action, err := s.PlayTurn(ctx, gameID)
		if errors.Is(err, model.ErrNoMoveAvailable) {
			actions = append(actions, action)
			break
		}
		if err != nil {
			return actions, err
		}
		actions = append(actions, action)
	}

	return actions, nil
}

// strategyFor returns the strategy for a seat, falling back to minimax for
// seats without a registered strategy
func (s *Service) strategyFor(seat model.Seat) Strategy {
	if st, ok := s.strategies[seat.Kind]; ok {
		return st
	}
	return s.strategies[model.PlayerKindMinimax]
}

func (s *Service) depthFor(player model.Mark, seat model.Seat) int {
	switch seat.Kind {
	case model.PlayerKindMinimax:
		return seat.Depth
	case model.PlayerKindRandom:
		return 0
	default:
		return s.depths.For(player)
	}
}
