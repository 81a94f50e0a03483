package board

import (
	"fmt"

	"github.com/daystram/chessim/position"
)

// Move relocates the piece on From to To. Captured is only filled in by
// ApplyRecorded and is what Unapply puts back on To.
type Move struct {
	From, To position.Pos

	Captured Cell
}

// NewMoveFromUCI parses coordinate notation such as "d2d3".
func NewMoveFromUCI(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("%w: %q", position.ErrInvalidNotation, s)
	}
	from, err := position.NewPosFromNotation(s[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := position.NewPosFromNotation(s[2:])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}

func (m Move) String() string {
	return m.UCI()
}

func (m Move) UCI() string {
	return m.From.Notation() + m.To.Notation()
}

// IsNull reports whether the move is the zero move (a8 to a8).
func (m Move) IsNull() bool {
	return m.From == m.To
}

// Reverse returns the move going from To back to From.
func (m Move) Reverse() Move {
	return Move{From: m.To, To: m.From}
}

func (m Move) Equals(n Move) bool {
	return m.From == n.From && m.To == n.To
}
