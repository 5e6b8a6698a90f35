package request

import "github.com/mcoot/fourinarow/internal/model"

// CreateGameRequest is the request body for creating a game. Player kinds
// default to human and depths only apply to minimax seats; a missing depth
// takes the server's default for that side.
type CreateGameRequest struct {
	XPlayer   string `json:"x_player,omitempty"`
	OPlayer   string `json:"o_player,omitempty"`
	XDepth    *int   `json:"x_depth,omitempty"`
	ODepth    *int   `json:"o_depth,omitempty"`
	Adjacency string `json:"adjacency,omitempty"`
}

// PlaceRequest is the request body for initial and successor placements
type PlaceRequest struct {
	Player string `json:"player"`
	Col    int    `json:"col"`
	Row    int    `json:"row"`
}

// Position returns the requested cell
func (r PlaceRequest) Position() model.Position {
	return model.Position{Col: r.Col, Row: r.Row}
}

// AnalyzeRequest asks the engine for a move on an arbitrary board.
// Board is five strings of six cells each, top row first.
type AnalyzeRequest struct {
	Board     model.Board `json:"board"`
	Player    string      `json:"player"`
	Depth     *int        `json:"depth,omitempty"`
	Adjacency string      `json:"adjacency,omitempty"`
}
