package model

import (
	"fmt"
	"slices"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// GamePhase represents the current phase of a game
type GamePhase string

const (
	GamePhaseStart     GamePhase = "start"     // Initial placements, X then O
	GamePhasePlaying   GamePhase = "playing"   // Alternating successor placements
	GamePhaseFinished  GamePhase = "finished"  // Win or draw reached
	GamePhaseAbandoned GamePhase = "abandoned" // Game was cancelled
)

// PlayerKind selects who decides a seat's moves
type PlayerKind string

const (
	PlayerKindHuman   PlayerKind = "human"
	PlayerKindMinimax PlayerKind = "minimax"
	PlayerKindRandom  PlayerKind = "random"
)

// ParsePlayerKind parses a player kind; the empty string means human
func ParsePlayerKind(s string) (PlayerKind, error) {
	switch PlayerKind(s) {
	case "":
		return PlayerKindHuman, nil
	case PlayerKindHuman, PlayerKindMinimax, PlayerKindRandom:
		return PlayerKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPlayerKind, s)
	}
}

// PlayerKindDisplayName returns a human-readable label for a player kind
func PlayerKindDisplayName(kind PlayerKind) string {
	switch kind {
	case PlayerKindHuman:
		return "Human"
	case PlayerKindMinimax:
		return "Minimax"
	case PlayerKindRandom:
		return "Random"
	default:
		return string(kind)
	}
}

// DefaultStart returns the conventional initial placement for a player:
// X at (4,3) and O at (3,3)
func DefaultStart(player Mark) Position {
	if player == MarkO {
		return Position{Col: 3, Row: 3}
	}
	return Position{Col: 4, Row: 3}
}

// Seat describes who plays one side of a game
type Seat struct {
	Kind  PlayerKind `json:"kind"`
	Depth int        `json:"depth,omitempty"` // Search depth for minimax seats
}

// IsBot returns true if moves for this seat are chosen by a strategy
func (s Seat) IsBot() bool {
	return s.Kind == PlayerKindMinimax || s.Kind == PlayerKindRandom
}

// Game is a single game of four-in-a-row
type Game struct {
	ID        GameID        `json:"id"`
	Phase     GamePhase     `json:"phase"`
	Board     Board         `json:"board"`
	Moves     []Move        `json:"moves"`
	Turn      Mark          `json:"turn"` // Player to move, empty once the game is over
	X         Seat          `json:"x"`
	O         Seat          `json:"o"`
	Adjacency AdjacencyRule `json:"adjacency"`
	Result    Result        `json:"result"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Seat returns the seat for a player
func (g *Game) Seat(player Mark) Seat {
	if player == MarkO {
		return g.O
	}
	return g.X
}

// IsOver returns true once the game has finished or been abandoned
func (g *Game) IsOver() bool {
	return g.Phase == GamePhaseFinished || g.Phase == GamePhaseAbandoned
}

// LastMove returns the most recent move, if any
func (g *Game) LastMove() (Move, bool) {
	if len(g.Moves) == 0 {
		return Move{}, false
	}
	return g.Moves[len(g.Moves)-1], true
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	clone := *g
	clone.Moves = slices.Clone(g.Moves)
	return &clone
}
