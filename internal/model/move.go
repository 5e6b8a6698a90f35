package model

import "time"

// MoveKind distinguishes initial placements from successor placements
type MoveKind string

const (
	MoveKindStart MoveKind = "Start"
	MoveKindMove  MoveKind = "Move"
)

// Move is one placement in a game's history
type Move struct {
	Player   Mark     `json:"player"`
	Kind     MoveKind `json:"kind"`
	Position Position `json:"position"`

	// Set only for successor moves chosen by a search strategy
	Engine  bool          `json:"engine,omitempty"`
	Depth   int           `json:"depth,omitempty"`
	Elapsed time.Duration `json:"elapsed,omitempty"`
	Nodes   int           `json:"nodes,omitempty"`
}
