package model

// Outcome is the state of a game as derived from its board
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWin        Outcome = "win"
	OutcomeDraw       Outcome = "draw"
)

// Result is a derived game outcome. Winner is only set for OutcomeWin.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Winner  Mark    `json:"winner,omitempty"`
}

// IsTerminal returns true for a win or a draw
func (r Result) IsTerminal() bool {
	return r.Outcome == OutcomeWin || r.Outcome == OutcomeDraw
}

// String returns a human-readable description
func (r Result) String() string {
	switch r.Outcome {
	case OutcomeWin:
		return r.Winner.String() + " Wins!"
	case OutcomeDraw:
		return "Tie"
	default:
		return "In progress"
	}
}
