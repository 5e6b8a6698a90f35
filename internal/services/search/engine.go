package search

import (
	"log/slog"
	"math"

	"github.com/mcoot/fourinarow/internal/model"
)

// Leaf scores, relative to the perspective player
const (
	WinScore  = 1000
	LossScore = -1000
	DrawScore = 0
)

// Counter accumulates nodes visited during one top-level search
type Counter struct {
	nodes int
}

// Visit records one node
func (c *Counter) Visit() {
	c.nodes++
}

// Nodes returns the number of nodes visited so far
func (c *Counter) Nodes() int {
	return c.nodes
}

// Decision is the outcome of a top-level search. Found is false when the
// player has no legal successor cell; Position and Score are then unset.
type Decision struct {
	Position model.Position `json:"position"`
	Found    bool           `json:"found"`
	Score    int            `json:"score"`
	Nodes    int            `json:"nodes"`
}

// Option configures an Engine
type Option func(*Engine)

// WithAdjacency sets the successor rule used to pick root candidates
func WithAdjacency(rule model.AdjacencyRule) Option {
	return func(e *Engine) {
		e.adjacency = rule
	}
}

// Engine picks moves with depth-limited minimax and alpha-beta pruning.
// It mutates the board it is given while searching and always hands it back
// unchanged, so a board must not be searched from two goroutines at once.
type Engine struct {
	adjacency model.AdjacencyRule
	logger    *slog.Logger
}

// New creates a new search Engine
func New(logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		adjacency: model.DefaultAdjacencyRule,
		logger:    logger.With(slog.String("component", "search-engine")),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Adjacency returns the engine's default successor rule
func (e *Engine) Adjacency() model.AdjacencyRule {
	return e.adjacency
}

// FindBestMove searches for player's best successor cell using the engine's
// adjacency rule
func (e *Engine) FindBestMove(board *model.Board, player model.Mark, depth int) Decision {
	return e.Search(board, player, depth, e.adjacency)
}

// Search scans cells column by column (rows inner) and scores each legal
// successor for player with Minimax at the full depth. X keeps the highest
// score, O the lowest; ties keep the first cell scanned.
func (e *Engine) Search(board *model.Board, player model.Mark, depth int, rule model.AdjacencyRule) Decision {
	counter := &Counter{}
	decision := Decision{Score: math.MinInt}
	if player == model.MarkO {
		decision.Score = math.MaxInt
	}

	for col := 0; col < model.Cols; col++ {
		for row := 0; row < model.Rows; row++ {
			pos := model.Position{Col: col, Row: row}
			if !board.IsLegalSuccessorPlacement(pos, player, rule) {
				continue
			}

			score := speculate(board, pos, player, func() int {
				return e.Minimax(board, depth, player.Opponent(), math.MinInt, math.MaxInt, player, counter)
			})

			if player == model.MarkX && score > decision.Score ||
				player == model.MarkO && score < decision.Score {
				decision.Position = pos
				decision.Score = score
				decision.Found = true
			}
		}
	}

	if !decision.Found {
		decision.Score = 0
	}
	decision.Nodes = counter.Nodes()

	e.logger.Debug("search complete",
		slog.String("player", player.String()),
		slog.Int("depth", depth),
		slog.String("adjacency", string(rule)),
		slog.Bool("found", decision.Found),
		slog.String("position", decision.Position.String()),
		slog.Int("score", decision.Score),
		slog.Int("nodes", decision.Nodes),
	)

	return decision
}

// Minimax returns the alpha-beta value of board with layer to move. X layers
// maximise and O layers minimise; leaves are scored for perspective.
// Every empty cell is a child, adjacency does not apply below the root.
func (e *Engine) Minimax(board *model.Board, depth int, layer model.Mark, alpha, beta int, perspective model.Mark, counter *Counter) int {
	counter.Visit()

	if depth <= 0 || board.HasWon(model.MarkX) || board.HasWon(model.MarkO) || board.IsFull() {
		return Evaluate(board, perspective)
	}

	maximising := layer == model.MarkX
	best := math.MaxInt
	if maximising {
		best = math.MinInt
	}

	for col := 0; col < model.Cols; col++ {
		for row := 0; row < model.Rows; row++ {
			pos := model.Position{Col: col, Row: row}
			if !board.IsEmpty(pos) {
				continue
			}

			value := speculate(board, pos, layer, func() int {
				return e.Minimax(board, depth-1, layer.Opponent(), alpha, beta, perspective, counter)
			})

			if maximising {
				best = max(best, value)
				alpha = max(alpha, value)
			} else {
				best = min(best, value)
				beta = min(beta, value)
			}
			if beta <= alpha {
				return best
			}
		}
	}

	return best
}

// Evaluate scores a position for perspective: a win, a loss, or neutral
func Evaluate(board *model.Board, perspective model.Mark) int {
	switch {
	case board.HasWon(perspective):
		return WinScore
	case board.HasWon(perspective.Opponent()):
		return LossScore
	default:
		return DrawScore
	}
}

// speculate places mark at pos for the duration of fn
func speculate(board *model.Board, pos model.Position, mark model.Mark, fn func() int) int {
	board.Place(pos, mark)
	defer board.Clear(pos)
	return fn()
}
