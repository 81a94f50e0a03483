package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/daystram/chessim/position"
)

var (
	ErrInvalidFEN = errors.New("invalid fen")
)

// parseFEN reads the placement and side-to-move fields. Castling, en passant
// and clock fields are validated when present but otherwise ignored, since
// the board carries no such state.
func parseFEN(fen string) ([TotalCells]Cell, Side, error) {
	var cells [TotalCells]Cell
	segments := strings.Fields(fen)
	if len(segments) < 2 || len(segments) > 6 {
		return cells, SideUnknown, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return cells, SideUnknown, fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for y := position.Pos(0); y < Height; y++ {
		x := position.Pos(0)
		for _, sym := range rows[y] {
			if x >= Width {
				return cells, SideUnknown, fmt.Errorf("%w: row %d overflows", ErrInvalidFEN, y)
			}
			if sym >= '1' && sym <= '9' {
				skip := position.Pos(sym - '0')
				if x+skip > Width {
					return cells, SideUnknown, fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				x += skip
				continue
			}
			p, s, ok := pieceFromFEN(sym)
			if !ok {
				return cells, SideUnknown, fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(sym))
			}
			cells[position.NewPos(x, y)] = Cell{Piece: p, Side: s}
			x++
		}
		if x != Width {
			return cells, SideUnknown, fmt.Errorf("%w: missing cells", ErrInvalidFEN)
		}
	}

	var turn Side
	switch segments[1] {
	case "w":
		turn = SideWhite
	case "b":
		turn = SideBlack
	default:
		return cells, SideUnknown, fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if len(segments) > 2 {
		if cr := segments[2]; cr != "-" && (len(cr) > 4 || strings.Trim(cr, "KQkq") != "") {
			return cells, SideUnknown, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
	}
	if len(segments) > 3 && segments[3] != "-" {
		if _, err := position.NewPosFromNotation(segments[3]); err != nil {
			return cells, SideUnknown, fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
	}
	for i, name := range []string{"half move clock", "full move clock"} {
		if len(segments) > 4+i {
			if _, err := strconv.ParseUint(segments[4+i], 10, 64); err != nil {
				return cells, SideUnknown, fmt.Errorf("%w: invalid %s", ErrInvalidFEN, name)
			}
		}
	}

	return cells, turn, nil
}

// FEN encodes the board with turn as the side to move.
func (b *Board) FEN(turn Side) string {
	builder := strings.Builder{}
	var skip uint8
	for y := position.Pos(0); y < Height; y++ {
		for x := position.Pos(0); x < Width; x++ {
			for skip = 0; x < Width && b.cells[position.NewPos(x, y)].IsEmpty(); x++ {
				skip++
			}
			if skip != 0 {
				_, _ = builder.WriteRune(rune(skip + '0'))
			}
			if x < Width {
				c := b.cells[position.NewPos(x, y)]
				_, _ = builder.WriteString(c.Piece.SymbolFEN(c.Side))
			}
		}
		if y < Height-1 {
			_, _ = builder.WriteRune('/')
		}
	}

	if turn == SideBlack {
		_, _ = builder.WriteString(" b")
	} else {
		_, _ = builder.WriteString(" w")
	}
	_, _ = builder.WriteString(" - - 0 1")

	return builder.String()
}
