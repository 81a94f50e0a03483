package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/daystram/chessim/board"
	"github.com/daystram/chessim/engine"
)

// search lets the engine play both sides from fen for up to steps moves each.
func search(ctx context.Context, fen string, steps int, depth uint8, seed int64, lossy bool) error {
	b, turn, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	cfg := &engine.EngineConfig{
		Depth:     depth,
		LossyUndo: lossy,
		Debug:     true,
		Logger:    log.Println,
	}
	if seed != 0 {
		cfg.Rand = rand.New(engine.NewPseudoRand(seed))
	}
	e := engine.NewEngine(cfg)
	fmt.Println(b.Draw())
	fmt.Println(b.FEN(turn))

	var history []board.Move
	for i := 0; i < 2*steps && b.State(turn).IsRunning(); i++ {
		next, err := e.OpponentsTurn(ctx, b, turn)
		if errors.Is(err, engine.ErrNoMove) {
			break
		}
		if err != nil {
			return err
		}
		mv := b.LastMove()
		history = append(history, mv)

		fmt.Printf("\n>>> %s: %s\n", turn, mv)
		fmt.Println(b.FEN(next))
		fmt.Println(b.Draw())
		turn = next
	}
	log.Println("=============== game ended:", b.State(turn))
	fmt.Println(b.FEN(turn))
	dumpHistory(history)

	return nil
}

func dumpHistory(mvs []board.Move) {
	for i, mv := range mvs {
		if i%2 == 0 {
			fmt.Printf("%d.", i/2+1)
		}
		fmt.Printf("%s ", mv)
	}
	fmt.Println()
}
