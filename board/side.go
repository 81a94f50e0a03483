package board

import "github.com/daystram/chessim/position"

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// Sign is +1 for White and -1 for Black. Material scores are multiplied by it.
func (s Side) Sign() int {
	switch s {
	case SideWhite:
		return 1
	case SideBlack:
		return -1
	default:
		return 0
	}
}

// Forward returns the rank delta of a pawn step. White advances towards rank 0.
func (s Side) Forward() position.Pos {
	return position.Pos(-s.Sign())
}
