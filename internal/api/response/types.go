package response

import (
	"time"

	"github.com/mcoot/fourinarow/internal/model"
	"github.com/mcoot/fourinarow/internal/services/bot"
	"github.com/mcoot/fourinarow/internal/services/search"
)

// Seat describes who plays one side
type Seat struct {
	Kind  string `json:"kind"`
	Depth int    `json:"depth,omitempty"`
}

func SeatFromModel(s model.Seat) Seat {
	return Seat{Kind: string(s.Kind), Depth: s.Depth}
}

// Move is one entry of a game's history. Engine moves carry their search
// statistics; Time is in seconds.
type Move struct {
	Player string   `json:"player"`
	Kind   string   `json:"kind"`
	Col    int      `json:"col"`
	Row    int      `json:"row"`
	Engine bool     `json:"engine,omitempty"`
	Depth  *int     `json:"depth,omitempty"`
	Time   *float64 `json:"time,omitempty"`
	Nodes  *int     `json:"nodes,omitempty"`
}

// MoveFromModel converts model.Move
func MoveFromModel(m model.Move) Move {
	mv := Move{
		Player: m.Player.String(),
		Kind:   string(m.Kind),
		Col:    m.Position.Col,
		Row:    m.Position.Row,
		Engine: m.Engine,
	}
	if m.Engine {
		depth, nodes, secs := m.Depth, m.Nodes, m.Elapsed.Seconds()
		mv.Depth = &depth
		mv.Nodes = &nodes
		mv.Time = &secs
	}
	return mv
}

// Result is the outcome of a game
type Result struct {
	Outcome string `json:"outcome"`
	Winner  string `json:"winner,omitempty"`
}

func ResultFromModel(r model.Result) Result {
	res := Result{Outcome: string(r.Outcome)}
	if r.Winner.IsPlayer() {
		res.Winner = r.Winner.String()
	}
	return res
}

// Game is the full state of a game
type Game struct {
	ID        string      `json:"id"`
	Phase     string      `json:"phase"`
	Board     model.Board `json:"board"`
	Turn      string      `json:"turn,omitempty"`
	X         Seat        `json:"x"`
	O         Seat        `json:"o"`
	Adjacency string      `json:"adjacency"`
	Result    Result      `json:"result"`
	Moves     []Move      `json:"moves"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// GameFromModel converts model.Game
func GameFromModel(g *model.Game) Game {
	moves := make([]Move, len(g.Moves))
	for i, m := range g.Moves {
		moves[i] = MoveFromModel(m)
	}

	var turn string
	if g.Turn.IsPlayer() {
		turn = g.Turn.String()
	}

	return Game{
		ID:        string(g.ID),
		Phase:     string(g.Phase),
		Board:     g.Board,
		Turn:      turn,
		X:         SeatFromModel(g.X),
		O:         SeatFromModel(g.O),
		Adjacency: string(g.Adjacency),
		Result:    ResultFromModel(g.Result),
		Moves:     moves,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// GameSummary is a list entry for a game
type GameSummary struct {
	ID        string    `json:"id"`
	Phase     string    `json:"phase"`
	X         Seat      `json:"x"`
	O         Seat      `json:"o"`
	Result    Result    `json:"result"`
	Moves     int       `json:"moves"`
	CreatedAt time.Time `json:"created_at"`
}

func GameSummaryFromModel(g *model.Game) GameSummary {
	return GameSummary{
		ID:        string(g.ID),
		Phase:     string(g.Phase),
		X:         SeatFromModel(g.X),
		O:         SeatFromModel(g.O),
		Result:    ResultFromModel(g.Result),
		Moves:     len(g.Moves),
		CreatedAt: g.CreatedAt,
	}
}

// GameList is the response for listing games
type GameList struct {
	Games []GameSummary `json:"games"`
}

// BotAction is one turn played by the engine after a request
type BotAction struct {
	Type   string `json:"type"`
	Player string `json:"player,omitempty"`
	Col    *int   `json:"col,omitempty"`
	Row    *int   `json:"row,omitempty"`
	Depth  int    `json:"depth,omitempty"`
	Nodes  int    `json:"nodes,omitempty"`
	Score  int    `json:"score,omitempty"`
}

func BotActionFromModel(a bot.BotAction) BotAction {
	out := BotAction{
		Type:  string(a.Type),
		Depth: a.Depth,
		Nodes: a.Nodes,
		Score: a.Score,
	}
	if a.Player.IsPlayer() {
		out.Player = a.Player.String()
	}
	if a.Type == bot.ActionStart || a.Type == bot.ActionMove {
		col, row := a.Position.Col, a.Position.Row
		out.Col = &col
		out.Row = &row
	}
	return out
}

// GameUpdate is returned by endpoints that change a game
type GameUpdate struct {
	Game       Game        `json:"game"`
	BotActions []BotAction `json:"bot_actions"`
}

// NewGameUpdate builds a GameUpdate from the game and any bot turns
func NewGameUpdate(g *model.Game, actions []bot.BotAction) GameUpdate {
	out := make([]BotAction, len(actions))
	for i, a := range actions {
		out[i] = BotActionFromModel(a)
	}
	return GameUpdate{Game: GameFromModel(g), BotActions: out}
}

// Analysis is the engine's choice for an arbitrary board. Col and Row are
// omitted when no move was found.
type Analysis struct {
	Found bool    `json:"found"`
	Col   *int    `json:"col,omitempty"`
	Row   *int    `json:"row,omitempty"`
	Score int     `json:"score"`
	Nodes int     `json:"nodes"`
	Depth int     `json:"depth"`
	Time  float64 `json:"time"`
}

// AnalysisFromDecision converts a search decision
func AnalysisFromDecision(d search.Decision, depth int, elapsed time.Duration) Analysis {
	a := Analysis{
		Found: d.Found,
		Score: d.Score,
		Nodes: d.Nodes,
		Depth: depth,
		Time:  elapsed.Seconds(),
	}
	if d.Found {
		col, row := d.Position.Col, d.Position.Row
		a.Col = &col
		a.Row = &row
	}
	return a
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
