package board

type State uint8

const (
	// StateUnknown is when game state is unknown.
	StateUnknown State = iota

	// StateRunning is when game is on progress.
	StateRunning

	// StateKingLostWhite is when White has no King left on the board.
	StateKingLostWhite

	// StateKingLostBlack is when Black has no King left on the board.
	StateKingLostBlack

	// StateNoMoves is when the side to move has no pseudo-legal move.
	StateNoMoves
)

// State reports whether play can continue with s to move. Kings may be
// captured like any other piece since check is not modelled.
func (b *Board) State(s Side) State {
	switch {
	case b.Count(SideWhite, PieceKing) == 0:
		return StateKingLostWhite
	case b.Count(SideBlack, PieceKing) == 0:
		return StateKingLostBlack
	case len(b.Moves(s)) == 0:
		return StateNoMoves
	default:
		return StateRunning
	}
}

func (s State) IsRunning() bool {
	return s == StateRunning
}

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "StateUnknown"
	case StateRunning:
		return "StateRunning"
	case StateKingLostWhite:
		return "StateKingLostWhite"
	case StateKingLostBlack:
		return "StateKingLostBlack"
	case StateNoMoves:
		return "StateNoMoves"
	default:
		return ""
	}
}
