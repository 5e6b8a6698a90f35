package bot

import (
	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/services/search"
)

// MinimaxStrategy plays the search engine's best move
type MinimaxStrategy struct {
	engine *search.Engine
}

// NewMinimaxStrategy creates a new MinimaxStrategy
func NewMinimaxStrategy(engine *search.Engine) *MinimaxStrategy {
	return &MinimaxStrategy{engine: engine}
}

// ChooseStart takes the conventional opening cell, or the first empty cell
// if it is taken
func (s *MinimaxStrategy) ChooseStart(game *model.Game) model.Position {
	pos := model.DefaultStart(game.Turn)
	if game.Board.IsEmpty(pos) {
		return pos
	}
	pos, _ = firstEmpty(&game.Board)
	return pos
}

// ChooseMove searches a copy of the game's board under the game's rule
func (s *MinimaxStrategy) ChooseMove(game *model.Game, depth int) search.Decision {
	board := game.Board
	return s.engine.Search(&board, game.Turn, depth, game.Adjacency)
}
