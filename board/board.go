package board

import (
	"github.com/daystram/chessim/position"
)

// Board is the 8x8 grid, stored row-major from the top-left corner
// (rank 0 is Black's back rank).
type Board struct {
	cells    [TotalCells]Cell
	lastMove Move
}

// PieceAt is a piece together with the square it stands on.
type PieceAt struct {
	Piece Piece
	Side  Side
	Pos   position.Pos
}

type boardConfig struct {
	fen string
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

// NewBoard creates a board in the standard starting position unless another
// position is given. It also returns the side to move.
func NewBoard(opts ...BoardOption) (*Board, Side, error) {
	cfg := &boardConfig{
		fen: DefaultStartingPositionFEN,
	}
	for _, f := range opts {
		f(cfg)
	}
	cells, turn, err := parseFEN(cfg.fen)
	if err != nil {
		return nil, SideUnknown, err
	}
	return &Board{
		cells: cells,
	}, turn, nil
}

func (b *Board) Cell(pos position.Pos) Cell {
	if !pos.Valid() {
		return Cell{}
	}
	return b.cells[pos]
}

// Occupant returns the piece on pos, ok is false for an empty square.
func (b *Board) Occupant(pos position.Pos) (Piece, Side, bool) {
	c := b.Cell(pos)
	return c.Piece, c.Side, !c.IsEmpty()
}

// Snapshot returns a copy of the grid indexed by [rank][file].
func (b *Board) Snapshot() [Height][Width]Cell {
	var s [Height][Width]Cell
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		s[pos.Y()][pos.X()] = b.cells[pos]
	}
	return s
}

func (b *Board) LastMove() Move {
	return b.lastMove
}

// SetLastMove overwrites the recorded last move, e.g. after Unapply.
func (b *Board) SetLastMove(mv Move) {
	b.lastMove = Move{From: mv.From, To: mv.To}
}

// TakeLastMove returns the last applied move and resets it to the zero move.
func (b *Board) TakeLastMove() Move {
	mv := b.lastMove
	b.lastMove = Move{}
	return mv
}

// Apply moves a piece if mv.To is one of its destinations. The previous
// occupant of mv.To is discarded. Nothing changes when false is returned.
func (b *Board) Apply(mv Move) bool {
	return b.ApplyRecorded(&mv)
}

// ApplyRecorded behaves like Apply and stores the previous occupant of
// mv.To in mv.Captured so the move can be reverted with Unapply.
func (b *Board) ApplyRecorded(mv *Move) bool {
	if !b.IsLegal(*mv) {
		return false
	}
	mv.Captured = b.cells[mv.To]
	b.cells[mv.To] = b.cells[mv.From]
	b.cells[mv.From] = Cell{}
	b.lastMove = Move{From: mv.From, To: mv.To}
	return true
}

// Unapply reverts a move returned by ApplyRecorded, restoring any captured
// piece. It does not validate the reverse move, so pawn moves revert too.
func (b *Board) Unapply(mv Move) {
	b.cells[mv.From] = b.cells[mv.To]
	b.cells[mv.To] = mv.Captured
}

// Undo plays mv backwards through Apply. Captured pieces are not restored and
// moves whose reverse is not a destination (any pawn move) cannot be undone.
func (b *Board) Undo(mv Move) bool {
	return b.Apply(mv.Reverse())
}

// IsLegal reports whether mv.From is occupied and mv.To is one of its
// pseudo-legal destinations.
func (b *Board) IsLegal(mv Move) bool {
	if !mv.From.Valid() || !mv.To.Valid() {
		return false
	}
	for _, to := range b.DestinationsFrom(mv.From) {
		if to == mv.To {
			return true
		}
	}
	return false
}

// Pieces returns every piece of side s in row-major order.
func (b *Board) Pieces(s Side) []PieceAt {
	var ps []PieceAt
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		c := b.cells[pos]
		if c.IsEmpty() || c.Side != s {
			continue
		}
		ps = append(ps, PieceAt{Piece: c.Piece, Side: c.Side, Pos: pos})
	}
	return ps
}

// Moves returns every pseudo-legal move of side s.
func (b *Board) Moves(s Side) []Move {
	var mvs []Move
	for _, pa := range b.Pieces(s) {
		for _, to := range b.Destinations(pa.Pos, pa.Piece, pa.Side) {
			mvs = append(mvs, Move{From: pa.Pos, To: to})
		}
	}
	return mvs
}

// MaterialScore returns the total material on the board multiplied by the
// White minus Black piece count difference, signed for the perspective of s.
func (b *Board) MaterialScore(s Side) int {
	var total, white, black int
	for _, c := range b.cells {
		if c.IsEmpty() {
			continue
		}
		total += c.Piece.Value()
		switch c.Side {
		case SideWhite:
			white++
		case SideBlack:
			black++
		}
	}
	return total * (white - black) * s.Sign()
}

// Count returns the number of pieces of kind p owned by side s.
func (b *Board) Count(s Side, p Piece) int {
	var n int
	for _, c := range b.cells {
		if c.Piece == p && c.Side == s {
			n++
		}
	}
	return n
}

func (b *Board) Clone() *Board {
	return &Board{
		cells:    b.cells,
		lastMove: b.lastMove,
	}
}

// Equals compares the grids of both boards.
func (b *Board) Equals(o *Board) bool {
	return b.cells == o.cells
}
