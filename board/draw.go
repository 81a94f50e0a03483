package board

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/chessim/position"
)

var (
	colorCellDark  = color.New(color.FgBlack, color.BgGreen)
	colorCellLight = color.New(color.FgBlack, color.BgHiWhite)
	colorLabel     = color.New(color.Bold)
)

// Dump renders the board as plain text, rank 8 on top.
func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := position.Pos(0); y < Height; y++ {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %s |", y.NotationComponentY()))
		for x := position.Pos(0); x < Width; x++ {
			c := b.cells[position.NewPos(x, y)]
			sym := c.Piece.SymbolFEN(c.Side)
			if c.IsEmpty() {
				sym = " "
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", x.NotationComponentX()))
	}
	return builder.String()
}

// Draw renders the board with colored squares and unicode pieces.
func (b *Board) Draw() string {
	builder := strings.Builder{}
	for y := position.Pos(0); y < Height; y++ {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", y.NotationComponentY()))
		for x := position.Pos(0); x < Width; x++ {
			c := b.cells[position.NewPos(x, y)]
			sym := c.Piece.SymbolUnicode(c.Side, false)
			if c.IsEmpty() {
				sym = " "
			}
			cell := colorCellLight
			if x%2^y%2 == 1 {
				cell = colorCellDark
			}
			_, _ = builder.WriteString(cell.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}
