package model

import "errors"

// Common errors used across the application
var (
	// Placement errors. Rejected placements wrap ErrInvalidPlacement together
	// with one of the specific reasons below.
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrOutOfBounds      = errors.New("position is out of bounds")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrNotAdjacent      = errors.New("cell has no adjacent mark")

	// Parsing errors
	ErrInvalidMark          = errors.New("invalid mark")
	ErrInvalidBoard         = errors.New("invalid board")
	ErrInvalidAdjacencyRule = errors.New("invalid adjacency rule")
	ErrInvalidPlayerKind    = errors.New("invalid player kind")
	ErrInvalidDepth         = errors.New("invalid search depth")

	// Game errors
	ErrGameNotFound    = errors.New("game not found")
	ErrGameFinished    = errors.New("game is already finished")
	ErrGameAbandoned   = errors.New("game has been abandoned")
	ErrNotPlayerTurn   = errors.New("not this player's turn")
	ErrWrongPhase      = errors.New("move kind not allowed in this phase")
	ErrNoMoveAvailable = errors.New("no valid move available")
)
