package board

import (
	"github.com/daystram/chessim/position"
)

// DestinationsFrom returns the destinations of whatever stands on from.
// An empty square has none.
func (b *Board) DestinationsFrom(from position.Pos) []position.Pos {
	c := b.Cell(from)
	if c.IsEmpty() {
		return nil
	}
	return b.Destinations(from, c.Piece, c.Side)
}

// Destinations generates the pseudo-legal destinations of piece p of side s
// standing on from. Moves are not checked for leaving the King attacked.
func (b *Board) Destinations(from position.Pos, p Piece, s Side) []position.Pos {
	if !from.Valid() {
		return nil
	}
	switch p {
	case PiecePawn:
		return b.genPawn(from, s)
	case PieceBishop:
		return b.genSliding(from, s, directionsBishop)
	case PieceKnight:
		return b.genKnight(from, s)
	case PieceRook:
		return b.genSliding(from, s, directionsRook)
	case PieceQueen:
		return b.genSliding(from, s, directionsQueen)
	case PieceKing:
		return b.genKing(from, s)
	default:
		return nil
	}
}

// genSliding casts a ray along each direction. A ray ends on the first
// occupied square, which is included only when it holds an opponent piece.
func (b *Board) genSliding(from position.Pos, s Side, dirs []position.Direction) []position.Pos {
	var tos []position.Pos
	for _, d := range dirs {
		dist := position.EdgeDistance(d, from)
		for k := position.Pos(1); k <= dist; k++ {
			to, _ := from.Step(d, k)
			c := b.cells[to]
			if c.IsEmpty() {
				tos = append(tos, to)
				continue
			}
			if c.Side != s {
				tos = append(tos, to)
			}
			break
		}
	}
	return tos
}

func (b *Board) genKing(from position.Pos, s Side) []position.Pos {
	var tos []position.Pos
	for _, d := range position.Directions {
		to, ok := from.Step(d, 1)
		if ok && b.isFreeFor(to, s) {
			tos = append(tos, to)
		}
	}
	return tos
}

func (b *Board) genKnight(from position.Pos, s Side) []position.Pos {
	var tos []position.Pos
	for _, o := range offsetsKnight {
		to, ok := position.Offset(from, o[0], o[1])
		if ok && b.isFreeFor(to, s) {
			tos = append(tos, to)
		}
	}
	return tos
}

// genPawn yields the single square ahead of the pawn. The square may hold an
// opponent piece: pawns capture straight ahead and never diagonally.
func (b *Board) genPawn(from position.Pos, s Side) []position.Pos {
	to, ok := position.Offset(from, 0, s.Forward())
	if !ok || !b.isFreeFor(to, s) {
		return nil
	}
	return []position.Pos{to}
}

// isFreeFor reports whether side s may land on pos.
func (b *Board) isFreeFor(pos position.Pos, s Side) bool {
	c := b.cells[pos]
	return c.IsEmpty() || c.Side != s
}
