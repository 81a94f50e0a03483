package board

type Piece uint8

const (
	PieceUnknown Piece = iota
	PiecePawn
	PieceBishop
	PieceKnight
	PieceRook
	PieceQueen
	PieceKing
)

// Pieces lists every piece kind.
var Pieces = []Piece{PiecePawn, PieceBishop, PieceKnight, PieceRook, PieceQueen, PieceKing}

func (p Piece) String() string {
	return p.Name()
}

func (p Piece) Name() string {
	switch p {
	case PiecePawn:
		return "Pawn"
	case PieceBishop:
		return "Bishop"
	case PieceKnight:
		return "Knight"
	case PieceRook:
		return "Rook"
	case PieceQueen:
		return "Queen"
	case PieceKing:
		return "King"
	default:
		return ""
	}
}

// Value returns the material value of the piece. The King's value carries no
// special meaning since check is not modelled.
func (p Piece) Value() int {
	return materialPieceValue[p]
}

func (p Piece) SymbolFEN(s Side) string {
	var sym rune
	switch p {
	case PiecePawn:
		sym = 'P'
	case PieceBishop:
		sym = 'B'
	case PieceKnight:
		sym = 'N'
	case PieceRook:
		sym = 'R'
	case PieceQueen:
		sym = 'Q'
	case PieceKing:
		sym = 'K'
	default:
		return ""
	}
	if s == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

func (p Piece) SymbolUnicode(s Side, invert bool) string {
	if invert {
		s = s.Opposite()
	}
	switch s {
	case SideWhite:
		switch p {
		case PiecePawn:
			return "♙"
		case PieceBishop:
			return "♗"
		case PieceKnight:
			return "♘"
		case PieceRook:
			return "♖"
		case PieceQueen:
			return "♕"
		case PieceKing:
			return "♔"
		default:
			return ""
		}
	case SideBlack:
		switch p {
		case PiecePawn:
			return "♟"
		case PieceBishop:
			return "♝"
		case PieceKnight:
			return "♞"
		case PieceRook:
			return "♜"
		case PieceQueen:
			return "♛"
		case PieceKing:
			return "♚"
		default:
			return ""
		}
	default:
		return ""
	}
}

// pieceFromFEN returns the piece and side for a FEN symbol.
func pieceFromFEN(sym rune) (Piece, Side, bool) {
	s := SideWhite
	if sym >= 'a' && sym <= 'z' {
		s = SideBlack
		sym &^= 0x20
	}
	switch sym {
	case 'P':
		return PiecePawn, s, true
	case 'B':
		return PieceBishop, s, true
	case 'N':
		return PieceKnight, s, true
	case 'R':
		return PieceRook, s, true
	case 'Q':
		return PieceQueen, s, true
	case 'K':
		return PieceKing, s, true
	default:
		return PieceUnknown, SideUnknown, false
	}
}

// Cell is a single square's content. The zero Cell is empty.
type Cell struct {
	Piece Piece
	Side  Side
}

func (c Cell) IsEmpty() bool {
	return c.Piece == PieceUnknown
}

func (c Cell) String() string {
	if c.IsEmpty() {
		return "."
	}
	return c.Piece.SymbolFEN(c.Side)
}
