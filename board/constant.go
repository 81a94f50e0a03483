package board

import (
	"github.com/daystram/chessim/position"
)

const (
	Width      = position.MaxComponentScalar
	Height     = position.MaxComponentScalar
	TotalCells = Width * Height
)

var (
	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

	materialPieceValue = [6 + 1]int{
		PiecePawn:   50,
		PieceBishop: 250,
		PieceKnight: 250,
		PieceRook:   400,
		PieceQueen:  500,
		PieceKing:   1000,
	}

	directionsRook   = []position.Direction{position.DirectionN, position.DirectionE, position.DirectionS, position.DirectionW}
	directionsBishop = []position.Direction{position.DirectionNE, position.DirectionNW, position.DirectionSE, position.DirectionSW}
	directionsQueen  = position.Directions[:]

	offsetsKnight = [8][2]position.Pos{
		{1, -2}, {2, -1}, {2, 1}, {1, 2},
		{-1, 2}, {-2, 1}, {-2, -1}, {-1, -2},
	}
)
