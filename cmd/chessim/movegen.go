package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/daystram/chessim/board"
)

func movegen(fen string, draw bool) error {
	log.Println("============ movegen")
	b, turn, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Println("to move:", turn)
	fmt.Println(b.Dump())
	fmt.Println(b.Draw())
	fmt.Println(b.State(turn))
	dumpMoves(b, turn)

	if draw {
		for _, mv := range b.Moves(turn) {
			if !b.ApplyRecorded(&mv) {
				continue
			}
			fmt.Println(mv)
			fmt.Println(b.Draw())
			fmt.Println(b.FEN(turn.Opposite()))
			b.Unapply(mv)
		}
	}
	return nil
}

func dumpMoves(b *board.Board, turn board.Side) {
	mvs := b.Moves(turn)
	for i, mv := range mvs {
		p, s, _ := b.Occupant(mv.From)
		target := b.Cell(mv.To)
		fmt.Printf("option %*d: [%s] %s %s %s => %s (cap=%v)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), s, p, mv.From, mv.To, !target.IsEmpty())
	}
}
