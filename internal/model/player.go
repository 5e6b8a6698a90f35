package model

import "fmt"

// Mark is the content of a board cell. The two non-empty marks double as
// the identities of the two players.
type Mark uint8

const (
	MarkEmpty Mark = iota
	MarkX
	MarkO
)

// Players lists both players in the order they move
var Players = [2]Mark{MarkX, MarkO}

// Opponent returns the other player. MarkEmpty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

// IsPlayer returns true for X and O
func (m Mark) IsPlayer() bool {
	return m == MarkX || m == MarkO
}

// String returns "X", "O" or "." for an empty cell
func (m Mark) String() string {
	switch m {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return "."
	}
}

// MarshalText encodes the mark as its single-character form
func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes "X", "O" or "." (also "" and " " for empty)
func (m *Mark) UnmarshalText(text []byte) error {
	parsed, err := ParseMark(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMark parses a mark, accepting lower case player names
func ParseMark(s string) (Mark, error) {
	switch s {
	case "X", "x":
		return MarkX, nil
	case "O", "o":
		return MarkO, nil
	case ".", " ", "", "_":
		return MarkEmpty, nil
	default:
		return MarkEmpty, fmt.Errorf("%w: %q", ErrInvalidMark, s)
	}
}

// ParsePlayer parses a mark and rejects the empty mark
func ParsePlayer(s string) (Mark, error) {
	m, err := ParseMark(s)
	if err != nil {
		return MarkEmpty, err
	}
	if !m.IsPlayer() {
		return MarkEmpty, fmt.Errorf("%w: %q", ErrInvalidMark, s)
	}
	return m, nil
}
