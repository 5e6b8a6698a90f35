package bot

import (
	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/services/search"
)

// Strategy defines how a bot chooses its placements
type Strategy interface {
	// ChooseStart selects an initial placement for the player to move
	ChooseStart(game *model.Game) model.Position
	// ChooseMove selects a successor placement for the player to move.
	// Decision.Found is false when the player has no legal cell.
	ChooseMove(game *model.Game, depth int) search.Decision
}

// firstEmpty returns the first empty cell in scan order
func firstEmpty(board *model.Board) (model.Position, bool) {
	for col := 0; col < model.Cols; col++ {
		for row := 0; row < model.Rows; row++ {
			pos := model.Position{Col: col, Row: row}
			if board.IsEmpty(pos) {
				return pos, true
			}
		}
	}
	return model.Position{}, false
}
