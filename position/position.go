package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar Pos = 8

	// TotalCells is the number of squares on the board.
	TotalCells = MaxComponentScalar * MaxComponentScalar
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Pos is a square index laid out row-major from the top-left corner:
// index = rank*8 + file, where rank 0 is the top row (Black's back rank).
type Pos int8

func NewPos(file, rank Pos) Pos {
	return rank*MaxComponentScalar + file
}

func NewPosFromNotation(n string) (Pos, error) {
	x, y, err := notationToXY(n)
	if err != nil {
		return 0, err
	}
	return NewPos(x, y), nil
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) Notation() string {
	if !p.Valid() {
		return ""
	}
	return p.X().NotationComponentX() + p.Y().NotationComponentY()
}

// X returns the file of the square.
func (p Pos) X() Pos {
	return p % MaxComponentScalar
}

// Y returns the rank (row) of the square, counted from the top.
func (p Pos) Y() Pos {
	return p / MaxComponentScalar
}

func (p Pos) Valid() bool {
	return p >= 0 && p < TotalCells
}

// Step returns the square k steps away in direction d and whether it is on the board.
func (p Pos) Step(d Direction, k Pos) (Pos, bool) {
	dx, dy := d.Offset()
	return Offset(p, dx*k, dy*k)
}

// Offset returns the square shifted by (dx, dy) and whether it is on the board.
func Offset(p, dx, dy Pos) (Pos, bool) {
	x, y := p.X()+dx, p.Y()+dy
	if !InBounds(x, y) {
		return 0, false
	}
	return NewPos(x, y), true
}

func InBounds(x, y Pos) bool {
	return x >= 0 && x < MaxComponentScalar && y >= 0 && y < MaxComponentScalar
}

func notationToXY(n string) (Pos, Pos, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	pX, err := notationToX(n[0])
	if err != nil {
		return 0, 0, err
	}
	pY, err := notationToY(n[1])
	if err != nil {
		return 0, 0, err
	}
	return pX, pY, nil
}

func notationToX(x byte) (Pos, error) {
	pX := Pos(x) - 'a'
	if pX < 0 || MaxComponentScalar <= pX {
		return 0, ErrInvalidNotation
	}
	return pX, nil
}

// notationToY maps rank digits onto rows: '8' is row 0, '1' is row 7.
func notationToY(y byte) (Pos, error) {
	digit := Pos(y) - '0'
	if digit < 1 || MaxComponentScalar < digit {
		return 0, ErrInvalidNotation
	}
	return MaxComponentScalar - digit, nil
}

func (p Pos) NotationComponentX() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('a' + p))
}

func (p Pos) NotationComponentY() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('0' + MaxComponentScalar - p))
}
