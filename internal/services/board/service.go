package board

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/fourinarow/internal/model"
)

// Service validates and applies externally requested placements
type Service struct {
	logger *slog.Logger
}

// New creates a new BoardService
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "board-service")),
	}
}

// ValidateInitialPlacement checks a start placement: in bounds and empty
func (s *Service) ValidateInitialPlacement(board *model.Board, pos model.Position) error {
	if !pos.InBounds() {
		return invalid(model.ErrOutOfBounds, pos)
	}
	if !board.IsEmpty(pos) {
		return invalid(model.ErrCellOccupied, pos)
	}
	return nil
}

// ValidateSuccessorPlacement checks a successor placement: in bounds, empty
// and adjacent to an occupied cell under rule
func (s *Service) ValidateSuccessorPlacement(board *model.Board, pos model.Position, player model.Mark, rule model.AdjacencyRule) error {
	if err := s.ValidateInitialPlacement(board, pos); err != nil {
		return err
	}
	if !board.HasAdjacent(pos, player, rule) {
		return invalid(model.ErrNotAdjacent, pos)
	}
	return nil
}

// PlaceInitial validates and applies a start placement
func (s *Service) PlaceInitial(board *model.Board, pos model.Position, player model.Mark) error {
	if err := s.ValidateInitialPlacement(board, pos); err != nil {
		s.reject(err, pos, player)
		return err
	}
	board.Place(pos, player)
	return nil
}

// PlaceSuccessor validates and applies a successor placement
func (s *Service) PlaceSuccessor(board *model.Board, pos model.Position, player model.Mark, rule model.AdjacencyRule) error {
	if err := s.ValidateSuccessorPlacement(board, pos, player, rule); err != nil {
		s.reject(err, pos, player)
		return err
	}
	board.Place(pos, player)
	return nil
}

// LegalSuccessors lists the legal successor cells for player in scan order
// (columns outer, rows inner)
func (s *Service) LegalSuccessors(board *model.Board, player model.Mark, rule model.AdjacencyRule) []model.Position {
	var cells []model.Position
	for col := 0; col < model.Cols; col++ {
		for row := 0; row < model.Rows; row++ {
			pos := model.Position{Col: col, Row: row}
			if board.IsLegalSuccessorPlacement(pos, player, rule) {
				cells = append(cells, pos)
			}
		}
	}
	return cells
}

func (s *Service) reject(err error, pos model.Position, player model.Mark) {
	s.logger.Debug("placement rejected",
		slog.String("player", player.String()),
		slog.String("position", pos.String()),
		slog.String("error", err.Error()),
	)
}

func invalid(reason error, pos model.Position) error {
	return fmt.Errorf("%w: %w at %s", model.ErrInvalidPlacement, reason, pos)
}
