package bot

import (
	"github.com/mcoot/fourinarow/internal/dependencies/random"
	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/services/board"
	"github.com/mcoot/fourinarow/internal/services/search"
)

// RandomStrategy picks uniformly among the legal cells
type RandomStrategy struct {
	boardService *board.Service
	random       random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(boardService *board.Service, rnd random.Random) *RandomStrategy {
	return &RandomStrategy{boardService: boardService, random: rnd}
}

// ChooseStart picks a random empty cell
func (s *RandomStrategy) ChooseStart(game *model.Game) model.Position {
	var empty []model.Position
	for col := 0; col < model.Cols; col++ {
		for row := 0; row < model.Rows; row++ {
			pos := model.Position{Col: col, Row: row}
			if game.Board.IsEmpty(pos) {
				empty = append(empty, pos)
			}
		}
	}
	if len(empty) == 0 {
		return model.Position{}
	}
	return empty[s.random.Intn(len(empty))]
}

// ChooseMove picks a random legal successor cell; depth is ignored
func (s *RandomStrategy) ChooseMove(game *model.Game, depth int) search.Decision {
	cells := s.boardService.LegalSuccessors(&game.Board, game.Turn, game.Adjacency)
	if len(cells) == 0 {
		return search.Decision{}
	}
	return search.Decision{
		Position: cells[s.random.Intn(len(cells))],
		Found:    true,
	}
}
