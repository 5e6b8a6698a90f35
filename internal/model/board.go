package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Grid dimensions and the run length needed to win
const (
	Rows      = 5
	Cols      = 6
	WinLength = 4
)

// Position identifies a cell on the board
type Position struct {
	Col int `json:"col"` // 0-indexed from left
	Row int `json:"row"` // 0-indexed from top
}

// InBounds returns true if the position is on the grid
func (p Position) InBounds() bool {
	return p.Col >= 0 && p.Col < Cols && p.Row >= 0 && p.Row < Rows
}

// String formats the position as (col, row)
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Col, p.Row)
}

// neighbourOffsets is the 8-connected neighbourhood as (dCol, dRow)
var neighbourOffsets = [8][2]int{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// AdjacencyRule decides which neighbours make a successor placement legal
type AdjacencyRule string

const (
	// AdjacencySamePlayer requires a neighbour holding the mover's own mark
	AdjacencySamePlayer AdjacencyRule = "same-player"
	// AdjacencyAnyPlayer accepts a neighbour holding either mark
	AdjacencyAnyPlayer AdjacencyRule = "any-player"
)

// DefaultAdjacencyRule is used when a game does not choose one
const DefaultAdjacencyRule = AdjacencySamePlayer

// ParseAdjacencyRule parses a rule name; the empty string selects the default
func ParseAdjacencyRule(s string) (AdjacencyRule, error) {
	switch AdjacencyRule(s) {
	case "":
		return DefaultAdjacencyRule, nil
	case AdjacencySamePlayer, AdjacencyAnyPlayer:
		return AdjacencyRule(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAdjacencyRule, s)
	}
}

// Board is the fixed 5x6 grid. The zero value is an empty board.
type Board struct {
	cells [Rows][Cols]Mark // cells[row][col]
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{}
}

// Get returns the mark at the given position, or MarkEmpty if out of bounds
func (b *Board) Get(pos Position) Mark {
	if !pos.InBounds() {
		return MarkEmpty
	}
	return b.cells[pos.Row][pos.Col]
}

// IsEmpty returns true if the cell is on the grid and unoccupied
func (b *Board) IsEmpty(pos Position) bool {
	return pos.InBounds() && b.cells[pos.Row][pos.Col] == MarkEmpty
}

// Place writes a player's mark. Callers validate the placement first.
func (b *Board) Place(pos Position, player Mark) {
	b.cells[pos.Row][pos.Col] = player
}

// Clear empties a cell. Only speculative search placements are cleared.
func (b *Board) Clear(pos Position) {
	b.cells[pos.Row][pos.Col] = MarkEmpty
}

// IsLegalInitialPlacement returns true if the cell is in bounds and empty.
// Initial placements ignore adjacency.
func (b *Board) IsLegalInitialPlacement(pos Position) bool {
	return b.IsEmpty(pos)
}

// IsLegalSuccessorPlacement returns true if the cell is empty and one of its
// 8 neighbours is occupied according to rule
func (b *Board) IsLegalSuccessorPlacement(pos Position, player Mark, rule AdjacencyRule) bool {
	if !b.IsEmpty(pos) {
		return false
	}
	return b.HasAdjacent(pos, player, rule)
}

// HasAdjacent reports whether any bounds-checked neighbour of pos satisfies rule
func (b *Board) HasAdjacent(pos Position, player Mark, rule AdjacencyRule) bool {
	for _, off := range neighbourOffsets {
		n := Position{Col: pos.Col + off[0], Row: pos.Row + off[1]}
		if !n.InBounds() {
			continue
		}
		m := b.cells[n.Row][n.Col]
		if rule == AdjacencyAnyPlayer {
			if m != MarkEmpty {
				return true
			}
		} else if m == player {
			return true
		}
	}
	return false
}

// HasWon scans the whole grid for a run of WinLength marks of player.
// Runs are checked rightwards, downwards, down-right and down-left from every
// cell the player holds.
func (b *Board) HasWon(player Mark) bool {
	if !player.IsPlayer() {
		return false
	}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b.cells[row][col] != player {
				continue
			}
			if col <= Cols-WinLength && b.run(player, row, col, 0, 1) {
				return true
			}
			if row <= Rows-WinLength && b.run(player, row, col, 1, 0) {
				return true
			}
			if row <= Rows-WinLength && col <= Cols-WinLength && b.run(player, row, col, 1, 1) {
				return true
			}
			if row <= Rows-WinLength && col >= WinLength-1 && b.run(player, row, col, 1, -1) {
				return true
			}
		}
	}
	return false
}

func (b *Board) run(player Mark, row, col, dRow, dCol int) bool {
	for k := 0; k < WinLength; k++ {
		if b.cells[row+k*dRow][col+k*dCol] != player {
			return false
		}
	}
	return true
}

// IsFull returns true if no empty cell remains
func (b *Board) IsFull() bool {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b.cells[row][col] == MarkEmpty {
				return false
			}
		}
	}
	return true
}

// EmptyCount returns the number of empty cells
func (b *Board) EmptyCount() int {
	count := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b.cells[row][col] == MarkEmpty {
				count++
			}
		}
	}
	return count
}

// Count returns the number of cells holding the given mark
func (b *Board) Count(m Mark) int {
	count := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if b.cells[row][col] == m {
				count++
			}
		}
	}
	return count
}

// Result derives the game outcome from the grid. X is checked before O,
// and either win takes precedence over a full board.
func (b *Board) Result() Result {
	switch {
	case b.HasWon(MarkX):
		return Result{Outcome: OutcomeWin, Winner: MarkX}
	case b.HasWon(MarkO):
		return Result{Outcome: OutcomeWin, Winner: MarkO}
	case b.IsFull():
		return Result{Outcome: OutcomeDraw}
	default:
		return Result{Outcome: OutcomeInProgress}
	}
}

// Snapshot returns a copy of the grid indexed [row][col]
func (b *Board) Snapshot() [Rows][Cols]Mark {
	return b.cells
}

// String encodes the board as rows of X, O and '.' separated by '/'
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		for col := 0; col < Cols; col++ {
			sb.WriteString(b.cells[row][col].String())
		}
	}
	return sb.String()
}

// ParseBoard decodes the format produced by String. Rows may also be
// separated by newlines.
func ParseBoard(s string) (*Board, error) {
	s = strings.TrimSpace(s)
	rows := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '\n'
	})
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidBoard, Rows, len(rows))
	}

	b := NewBoard()
	for row, line := range rows {
		line = strings.TrimSpace(line)
		if len(line) != Cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, row, len(line), Cols)
		}
		for col := 0; col < Cols; col++ {
			m, err := ParseMark(line[col : col+1])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d col %d: %w", ErrInvalidBoard, row, col, err)
			}
			b.cells[row][col] = m
		}
	}
	return b, nil
}

// MarshalJSON encodes the board as a list of row strings
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([]string, Rows)
	for row := 0; row < Rows; row++ {
		var sb strings.Builder
		for col := 0; col < Cols; col++ {
			sb.WriteString(b.cells[row][col].String())
		}
		rows[row] = sb.String()
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes a list of row strings
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := ParseBoard(strings.Join(rows, "/"))
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}
